package ratelimit

import "net/http"

// KeyFunc extracts a unique identifier from an HTTP request for rate limiting.
type KeyFunc func(*http.Request) string

// Prefixed namespaces the key produced by fn so different limiters can share
// one store. An empty key stays empty and therefore bypasses rate limiting.
func Prefixed(prefix string, fn KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		key := fn(r)
		if key == "" {
			return ""
		}
		return prefix + key
	}
}
