// Package environment names the deployment environments the service runs in
// and parses them from configuration.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // JSON logs, real e-mail delivery
//	}
package environment
