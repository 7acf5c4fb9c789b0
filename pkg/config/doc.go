// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with `env` and `envDefault` tags
// (github.com/caarlos0/env/v11). An optional .env file in the working
// directory is read once through github.com/joho/godotenv before the first
// parse. Parsed values are cached per type, so every package of the service
// can call Load for its own config struct without re-reading the environment.
//
//	var cfg contact.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// ResetCache clears the cache between tests that change the environment.
package config
