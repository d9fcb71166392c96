package validator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/creasty/defaults"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

// CascadeMode controls whether evaluation continues after a failure.
type CascadeMode int

const (
	CascadeContinue CascadeMode = iota
	CascadeStopOnFirstFailure
)

func (m CascadeMode) String() string {
	switch m {
	case CascadeContinue:
		return "continue"
	case CascadeStopOnFirstFailure:
		return "stop"
	default:
		return fmt.Sprintf("cascade(%d)", int(m))
	}
}

// ParseCascadeMode parses "continue" or "stop" (also "stop_on_first_failure").
func ParseCascadeMode(s string) (CascadeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continue", "":
		return CascadeContinue, nil
	case "stop", "stoponfirstfailure", "stop_on_first_failure":
		return CascadeStopOnFirstFailure, nil
	default:
		return CascadeContinue, fmt.Errorf("%w: unknown cascade mode %q", ErrInvalidConfiguration, s)
	}
}

func (m *CascadeMode) UnmarshalText(text []byte) error {
	v, err := ParseCascadeMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Options configures a validator. Zero fields take their defaults.
type Options struct {
	// RuleLevelCascadeMode seeds the cascade mode of every rule.
	RuleLevelCascadeMode CascadeMode
	// ClassLevelCascadeMode stops the run after the first failing rule when set to stop.
	ClassLevelCascadeMode CascadeMode
	PropertySeparator     string `default:"."`
	DefaultSeverity       Severity
	Culture               string `default:"en"`
	LanguageManager       LanguageManager
	Logger                *slog.Logger
	// ErrorCodeResolver maps a validator name to the default error code.
	ErrorCodeResolver func(validatorName string) string
	// DisplayNameResolver maps a property path to its display name.
	DisplayNameResolver func(propertyName string) string
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o Options) withDefaults() Options {
	if err := defaults.Set(&o); err != nil {
		panic(configError("applying option defaults: %v", err))
	}
	if o.Logger == nil {
		o.Logger = discardLogger
	}
	if o.ErrorCodeResolver == nil {
		o.ErrorCodeResolver = func(name string) string { return name }
	}
	if o.DisplayNameResolver == nil {
		o.DisplayNameResolver = DisplayName
	}
	return o
}

// EnvConfig is the environment form of Options.
type EnvConfig struct {
	CascadeMode       CascadeMode `env:"RULEKIT_CASCADE_MODE" envDefault:"continue"`
	ClassCascadeMode  CascadeMode `env:"RULEKIT_CLASS_CASCADE_MODE" envDefault:"continue"`
	PropertySeparator string      `env:"RULEKIT_PROPERTY_SEPARATOR" envDefault:"."`
	DefaultSeverity   Severity    `env:"RULEKIT_DEFAULT_SEVERITY" envDefault:"error"`
	Culture           string      `env:"RULEKIT_CULTURE" envDefault:"en"`
}

// Options converts the environment configuration to Options.
func (c EnvConfig) Options() Options {
	return Options{
		RuleLevelCascadeMode:  c.CascadeMode,
		ClassLevelCascadeMode: c.ClassCascadeMode,
		PropertySeparator:     c.PropertySeparator,
		DefaultSeverity:       c.DefaultSeverity,
		Culture:               c.Culture,
	}.withDefaults()
}

// OptionsFromEnv reads Options from RULEKIT_* environment variables and the .env file.
func OptionsFromEnv() (Options, error) {
	var cfg EnvConfig
	if err := config.Load(&cfg); err != nil {
		return Options{}, errors.Join(ErrLoadingOptions, err)
	}
	return cfg.Options(), nil
}

var (
	defaultsMu     sync.Mutex
	globalOptions  Options
	defaultsFrozen atomic.Bool
)

// ConfigureDefaults sets the options every new validator starts from.
// It must run at startup: once a validator has been built it returns ErrDefaultsFrozen.
func ConfigureDefaults(o Options) error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if defaultsFrozen.Load() {
		return ErrDefaultsFrozen
	}
	globalOptions = o
	return nil
}

// Defaults returns the process-wide options with defaults applied.
func Defaults() Options {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	return globalOptions.withDefaults()
}

func freezeDefaults() Options {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultsFrozen.Store(true)
	return globalOptions
}

// Option configures a validator at construction.
type Option func(*Options)

// WithOptions replaces the options wholesale.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithCascadeMode sets the rule-level cascade mode.
func WithCascadeMode(m CascadeMode) Option {
	return func(o *Options) { o.RuleLevelCascadeMode = m }
}

func WithClassLevelCascadeMode(m CascadeMode) Option {
	return func(o *Options) { o.ClassLevelCascadeMode = m }
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func WithLanguageManager(m LanguageManager) Option {
	return func(o *Options) { o.LanguageManager = m }
}

// WithDefaultCulture sets the culture used when a run does not specify one.
func WithDefaultCulture(culture string) Option {
	return func(o *Options) { o.Culture = culture }
}

func WithPropertySeparator(sep string) Option {
	return func(o *Options) { o.PropertySeparator = sep }
}

func WithDefaultSeverity(s Severity) Option {
	return func(o *Options) { o.DefaultSeverity = s }
}

func WithErrorCodeResolver(fn func(validatorName string) string) Option {
	return func(o *Options) { o.ErrorCodeResolver = fn }
}

func WithDisplayNameResolver(fn func(propertyName string) string) Option {
	return func(o *Options) { o.DisplayNameResolver = fn }
}
