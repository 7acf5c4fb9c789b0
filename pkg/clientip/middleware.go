package clientip

import "net/http"

// Middleware resolves the client address once per request with GetIP and
// stores it in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(SetIPToContext(r.Context(), GetIP(r))))
	})
}
