package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache stores one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	store = &cache{values: make(map[reflect.Type]any)}

	dotenvMu     sync.Mutex
	dotenvLoaded bool
)

// Load fills v from the environment. The default .env file in the working directory is
// read once (if present) before the first parse. Each configuration type is parsed once;
// later calls for the same type copy the cached value.
//
//	type Settings struct {
//		Culture string `env:"RULEKIT_CULTURE" envDefault:"en"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultDotenv()

	key := typeKey[T]()

	store.mu.Lock()
	defer store.mu.Unlock()
	if cached, ok := store.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := parse(v); err != nil {
		return err
	}
	store.values[key] = *v
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: loading %s: %v", typeKey[T](), err))
	}
}

// Reload parses v again, ignoring and replacing the cached value for its type.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	key := typeKey[T]()

	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.values, key)
	if err := parse(v); err != nil {
		return err
	}
	store.values[key] = *v
	return nil
}

// LoadEnv reads the given .env files into the process environment. Later files
// override earlier ones; variables already set in the environment are kept.
// Without paths it reads ./.env when present. It clears the cache so the next Load
// sees the new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		paths = []string{".env"}
	}

	merged := make(map[string]string)
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
		for k, val := range values {
			merged[k] = val
		}
	}

	for k, val := range merged {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	dotenvMu.Lock()
	dotenvLoaded = true
	dotenvMu.Unlock()

	ResetCache()
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	store.mu.Lock()
	defer store.mu.Unlock()
	clear(store.values)
}

func loadDefaultDotenv() {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()
	if dotenvLoaded {
		return
	}
	dotenvLoaded = true
	// a missing .env file is fine
	_ = godotenv.Load()
}

func parse[T any](v *T) error {
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidConfigType, typeKey[T]())
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
