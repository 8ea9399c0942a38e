package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/germanamz/iointel/pkg/chats/chat"
	"github.com/germanamz/iointel/pkg/chats/message"
	"github.com/germanamz/iointel/pkg/modeladapter"
)

// CompleterFunc adapts a plain function to modeladapter.Completer.
type CompleterFunc func(ctx context.Context, c *chat.Chat) (message.Message, error)

// Complete calls the underlying function.
func (f CompleterFunc) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	return f(ctx, c)
}

// Middleware wraps a Completer, returning a new Completer with added behaviour.
type Middleware func(next modeladapter.Completer) modeladapter.Completer

// Chain applies middlewares so that the first one is the outermost.
func Chain(c modeladapter.Completer, mws ...Middleware) modeladapter.Completer {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// --- Timeout middleware ---

// Timeout bounds each completion with a deadline. A non-positive d disables it.
func Timeout(d time.Duration) Middleware {
	return func(next modeladapter.Completer) modeladapter.Completer {
		if d <= 0 {
			return next
		}
		return CompleterFunc(func(ctx context.Context, c *chat.Chat) (message.Message, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			return next.Complete(ctx, c)
		})
	}
}

// --- Logger middleware ---

// Logger logs completion start, duration and error.
func Logger(log *slog.Logger, model string) Middleware {
	return func(next modeladapter.Completer) modeladapter.Completer {
		return CompleterFunc(func(ctx context.Context, c *chat.Chat) (message.Message, error) {
			log.DebugContext(ctx, "completion started", "model", model, "messages", c.Len())

			start := time.Now()

			msg, err := next.Complete(ctx, c)

			duration := time.Since(start)

			if err != nil {
				log.DebugContext(ctx, "completion failed",
					"model", model,
					"duration", duration,
					"error", err,
				)
			} else {
				log.DebugContext(ctx, "completion finished",
					"model", model,
					"duration", duration,
				)
			}

			return msg, err
		})
	}
}
