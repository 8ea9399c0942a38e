// Package catalog lists the models an inference provider currently serves.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/germanamz/iointel/pkg/engine"
	"github.com/germanamz/iointel/pkg/modeladapter"
)

// ErrShape is wrapped by ParseIDs when the document does not look like a
// model catalog.
var ErrShape = errors.New("catalog: unexpected response shape")

// Lister fetches the model catalog. List never fails; problems are logged
// and reported as an empty catalog.
type Lister struct {
	adapter modeladapter.ModelAdapter
	log     *slog.Logger
}

// New creates a Lister for cfg's catalog endpoint. A nil client uses
// http.DefaultClient and a nil logger discards output.
func New(cfg engine.Config, client *http.Client, log *slog.Logger) *Lister {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Lister{
		adapter: modeladapter.New(cfg.ModelsEndpoint(), modeladapter.Auth{Key: cfg.APIKey}, client),
		log:     log,
	}
}

// List returns the catalog's model ids in the order the provider sent them.
// Transport errors, non-2xx statuses, undecodable bodies and shape mismatches
// all yield an empty slice.
func (l *Lister) List(ctx context.Context) []string {
	var doc any
	if err := l.adapter.GetJSON(ctx, "", &doc); err != nil {
		l.log.ErrorContext(ctx, "could not fetch models", "url", l.adapter.BaseURL, "error", err)
		return []string{}
	}

	l.log.DebugContext(ctx, "raw catalog response", "body", doc)

	ids, err := ParseIDs(doc)
	if err != nil {
		l.log.ErrorContext(ctx, "could not fetch models", "url", l.adapter.BaseURL, "error", err)
		return []string{}
	}

	return ids
}

// ParseIDs projects a decoded catalog document of the form
// {"data": [{"id": "..."}, ...]} onto its ids. A document without a "data"
// key is an empty catalog, not an error.
func ParseIDs(doc any) ([]string, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrShape, kindOf(doc))
	}

	raw, ok := top["data"]
	if !ok {
		return []string{}, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: data is %s, want array", ErrShape, kindOf(raw))
	}

	ids := make([]string, 0, len(entries))
	for i, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: data[%d] is %s, want object", ErrShape, i, kindOf(e))
		}

		id, ok := obj["id"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: data[%d].id is %s, want string", ErrShape, i, kindOf(obj["id"]))
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
