package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	parsed = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// Load parses environment variables into v using its `env` struct tags.
// The default .env file is read once before the first parse, if present.
// Each configuration type is parsed at most once; later calls receive a copy
// of the cached value.
//
//	type Limits struct {
//		Attempts int           `env:"RATE_LIMIT_ATTEMPTS" envDefault:"3"`
//		Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
//	}
//
//	var limits Limits
//	if err := config.Load(&limits); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	parsed.mu.Lock()
	defer parsed.mu.Unlock()

	if cached, ok := parsed.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	parsed.values[key] = fresh
	*v = fresh
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration so the next Load parses the
// environment again.
func ResetCache() {
	parsed.mu.Lock()
	parsed.values = make(map[reflect.Type]any)
	parsed.mu.Unlock()
}
