package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail accepts a bare address (no display name) whose domain has at
// least one dot and no empty labels.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" || !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}
