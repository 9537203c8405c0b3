package upstream

import "context"

type tokenContextKey struct{}

// ContextWithToken stores the caller's bearer token for forwarding to the
// backend.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext extracts the forwarded bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}
