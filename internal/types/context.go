package types

import "context"

// Context Keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	callerKey    contextKey = "caller"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCaller stores the portal username on whose behalf a call is made.
// Executors attach it to their call logs.
func WithCaller(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, callerKey, username)
}

// GetCaller retrieves the portal username from the context.
func GetCaller(ctx context.Context) string {
	u, _ := ctx.Value(callerKey).(string)
	return u
}
