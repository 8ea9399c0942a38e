// Package completion sends a single prompt to a chosen model and returns the
// generated text.
package completion

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/germanamz/iointel/pkg/chats/chat"
	"github.com/germanamz/iointel/pkg/chats/message"
	"github.com/germanamz/iointel/pkg/chats/role"
	"github.com/germanamz/iointel/pkg/engine"
)

var errNoText = errors.New("completion: response has no text")

// Backend performs one routed completion call. *engine.Router implements it.
type Backend interface {
	Complete(ctx context.Context, req engine.Request) (message.Message, error)
}

// Request pairs a prompt with the model it is sent to.
type Request struct {
	Prompt string
	Model  string
}

// Requester turns a Request into a single-message conversation and returns
// the first choice's text.
type Requester struct {
	cfg     engine.Config
	backend Backend
	log     *slog.Logger
}

// New creates a Requester. A nil logger discards output.
func New(cfg engine.Config, backend Backend, log *slog.Logger) *Requester {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Requester{cfg: cfg, backend: backend, log: log}
}

// Complete sends prompt to model. The prompt is not validated and the model
// is not checked against the catalog. On success the text is returned exactly
// as the provider reported it; any failure, including an empty reply, is
// logged and reported as ok == false.
func (r *Requester) Complete(ctx context.Context, prompt, model string) (string, bool) {
	return r.Do(ctx, Request{Prompt: prompt, Model: model})
}

// Do is Complete for a prepared Request.
func (r *Requester) Do(ctx context.Context, req Request) (string, bool) {
	routed := r.cfg.Namespace + "/" + req.Model

	msg, err := r.backend.Complete(ctx, engine.Request{
		Model:   routed,
		Chat:    chat.New(message.NewText("user", role.User, req.Prompt)),
		APIKey:  r.cfg.APIKey,
		BaseURL: r.cfg.BaseURL,
	})
	if err == nil && (!msg.HasText() || msg.TextContent() == "") {
		err = errNoText
	}
	if err != nil {
		r.log.ErrorContext(ctx, "error calling completion API", "model", routed, "error", err)
		return "", false
	}

	return msg.TextContent(), true
}
