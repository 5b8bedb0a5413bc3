package messaging

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/chamindaf/lion-svc/internal/pkg/stacktrace"
)

// callHandlerWithRecover shields the consumer loop from handler panics. A
// panic is reported as a handler error so the message is nacked.
func callHandlerWithRecover(ctx context.Context, handler HandlerFunc, msg Message) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "message handler panic recovered",
				"panic", rec,
				"topic", msg.Topic(),
				"stack", stacktrace.InternalPaths(debug.Stack()),
			)

			err = errHandlerPanic
		}
	}()

	return handler(ctx, msg)
}
