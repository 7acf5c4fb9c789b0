package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the error returned by Apply when at least one rule
// fails. Order follows the order of the rules.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Field+": "+err.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the distinct failing field names in order of appearance.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// When returns r if cond holds and a rule that always passes otherwise.
// Useful for optional fields that are only checked when present.
func (r Rule) When(cond bool) Rule {
	if cond {
		return r
	}
	return Rule{Check: func() bool { return true }, Error: r.Error}
}

// Apply runs every rule and collects the failures. A field that already
// failed is not checked again, so each field reports its first problem only.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if errs.Has(rule.Error.Field) {
			continue
		}
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
