package instrument

import "context"

type correlationKey struct{}

// SetCorrelationID stores the request correlation ID on the context. It is
// set once by the correlation middleware and flows into logs and messages.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns the correlation ID, or "" when none was set.
func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)

	return id
}
