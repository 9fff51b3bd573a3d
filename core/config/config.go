package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map
)

// key gives each configuration type its own cache slot.
type key[T any] struct{}

// Load populates cfg from environment variables, parsing each type only once.
// A .env file in the working directory is loaded on first use; variables
// already present in the environment take precedence over it.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	if cached, ok := cache.Load(key[T]{}); ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("failed to parse %T from environment: %w", fresh, err)
	}

	actual, _ := cache.LoadOrStore(key[T]{}, fresh)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
