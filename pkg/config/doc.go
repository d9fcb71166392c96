// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (for .env files) and github.com/caarlos0/env/v11
// (for struct tags). Each configuration type is parsed once and cached:
//
//	type Settings struct {
//		Culture   string `env:"RULEKIT_CULTURE" envDefault:"en"`
//		Separator string `env:"RULEKIT_PROPERTY_SEPARATOR" envDefault:"."`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		log.Fatal(err)
//	}
//
// LoadEnv reads extra .env files; the process environment always takes precedence over
// file values. Reload and ResetCache are meant for tests that change the environment.
//
// Errors can be matched with errors.Is against ErrParsingConfig, ErrInvalidConfigType,
// ErrNilPointer and ErrLoadingEnvFile.
package config
