package contact

import "errors"

var (
	ErrInvalidConfig = errors.New("contact: invalid config")
	ErrLeadInsert    = errors.New("contact: failed to store lead")
	ErrPanic         = errors.New("contact: recovered from panic")
)
