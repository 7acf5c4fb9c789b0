package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse normalises an environment name. Short aliases ("prod", "stage",
// "dev") are accepted; anything unknown is treated as Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// IsDevelopment reports whether e is Development.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) String() string {
	return string(e)
}
