package hubspot

import "strings"

// SplitName splits a full name into a first name (the first whitespace
// separated token) and a last name (the remaining tokens joined by single
// spaces). Either part may be empty.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
