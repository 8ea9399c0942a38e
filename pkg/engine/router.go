package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/germanamz/iointel/pkg/chats/chat"
	"github.com/germanamz/iointel/pkg/chats/message"
	"github.com/germanamz/iointel/pkg/modeladapter"
)

// Request is one provider-agnostic completion call. Model carries the
// namespace prefix ("openai/<model>") that selects the wire format.
type Request struct {
	Model   string
	Chat    *chat.Chat
	APIKey  string //nolint:gosec // request field, not a hardcoded secret
	BaseURL string
}

// RouterOpts configures a Router.
type RouterOpts struct {
	Client  *http.Client  // Passed to every provider; nil means http.DefaultClient.
	Timeout time.Duration // Per-completion deadline; zero means none.
	Logger  *slog.Logger  // Nil discards log output.
}

// Router dispatches completion requests to the provider registered for the
// request's namespace.
type Router struct {
	client  *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// NewRouter creates a Router.
func NewRouter(opts RouterOpts) *Router {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Router{
		client:  opts.Client,
		timeout: opts.Timeout,
		log:     log,
	}
}

// Complete routes req to its provider and returns the assistant reply.
func (r *Router) Complete(ctx context.Context, req Request) (message.Message, error) {
	if req.Chat == nil || req.Chat.Len() == 0 {
		return message.Message{}, fmt.Errorf("engine: empty conversation")
	}

	kind, model, err := SplitModel(req.Model)
	if err != nil {
		return message.Message{}, err
	}

	base, err := buildCompleter(ProviderConfig{
		Kind:    kind,
		BaseURL: req.BaseURL,
		APIKey:  req.APIKey,
		Model:   model,
		Client:  r.client,
	})
	if err != nil {
		return message.Message{}, err
	}

	c := Chain(base, Logger(r.log, req.Model), Timeout(r.timeout))

	msg, err := c.Complete(ctx, req.Chat)
	if err != nil {
		return message.Message{}, err
	}

	if ur, ok := base.(modeladapter.UsageReporter); ok {
		if last, ok := ur.UsageTracker().Last(); ok {
			r.log.DebugContext(ctx, "token usage", "model", req.Model, "usage", last)
		}
	}

	return msg, nil
}
