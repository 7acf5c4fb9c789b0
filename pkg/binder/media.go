package binder

import (
	"net/http"
	"strings"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
	MIMEMultipartForm   = "multipart/form-data"
)

// MediaType returns the lower-cased media type of the request without
// parameters, or "" when the header is missing.
func MediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// IsForm reports whether the request carries form data.
func IsForm(r *http.Request) bool {
	switch MediaType(r) {
	case MIMEApplicationForm, MIMEMultipartForm:
		return true
	}
	return false
}
