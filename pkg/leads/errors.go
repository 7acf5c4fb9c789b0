package leads

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid lead store config")
	ErrStoreRequest  = errors.New("lead store request failed")
	ErrNoRowReturned = errors.New("lead store returned no row")
	ErrLeadNotFound  = errors.New("lead not found")
)
