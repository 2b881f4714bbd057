package instrument

import "context"

// CorrelationHeader carries the correlation id on HTTP requests and broker
// messages.
const CorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns the id stored by SetCorrelationID, or "".
func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
