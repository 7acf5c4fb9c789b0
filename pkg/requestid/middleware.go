package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Middleware reuses a valid client supplied X-Request-ID or generates a new
// one, stores it in the request context and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
