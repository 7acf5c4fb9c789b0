package clientip

import "context"

type clientIPContextKey struct{}

// SetIPToContext stores the resolved client address in ctx.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext returns the address stored by SetIPToContext or an empty
// string.
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
