package hubspot

import "errors"

var (
	ErrNotConfigured = errors.New("hubspot access token not configured")
	ErrRequestFailed = errors.New("hubspot request failed")
	ErrEmailRequired = errors.New("contact email is required")
)
