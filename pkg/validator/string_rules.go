package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails when value is empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// Empty fails when value is anything but the empty string.
func Empty(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == ""
		},
		Error: ValidationError{Field: field, Message: "must be empty"},
	}
}

// MinLen counts characters, not bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// MaxLen counts characters, not bytes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}
