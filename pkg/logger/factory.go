package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs.
	FormatText Format = "text"
)

// UnmarshalText accepts "json" or "text" in any case.
func (f *Format) UnmarshalText(text []byte) error {
	switch v := Format(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case FormatJSON, FormatText:
		*f = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(text))
	}
}

// ErrInvalidFormat is returned when a log format is neither json nor text.
var ErrInvalidFormat = errors.New("invalid log format")

// Option configures logger creation.
type Option func(*settings)

func WithLevel(l slog.Level) Option {
	return func(c *settings) { c.level = l }
}

// WithFormat sets output format. It panics for unknown formats.
func WithFormat(f Format) Option {
	return func(c *settings) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("%w %q: must be %q or %q", ErrInvalidFormat, f, FormatJSON, FormatText))
		}
	}
}

func WithTextFormatter() Option {
	return func(c *settings) {
		c.format = FormatText
	}
}

func WithJSONFormatter() Option {
	return func(c *settings) {
		c.format = FormatJSON
	}
}

// WithOutput sets the output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *settings) {
		if w != nil {
			c.output = w
		}
	}
}

// WithHandlerOptions overrides the slog handler options. Nil is ignored.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *settings) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *settings) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that add attributes from the context
// of each record. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *settings) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name whenever it is set.
func WithContextValue(name string, key any) Option {
	return func(c *settings) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithDevelopment selects debug-level text output tagged with the service name.
func WithDevelopment(service string) Option {
	return withEnvironment("development", service, slog.LevelDebug, FormatText)
}

// WithProduction selects info-level JSON output tagged with the service name.
func WithProduction(service string) Option {
	return withEnvironment("production", service, slog.LevelInfo, FormatJSON)
}

// WithEnvironment picks WithProduction for "production"/"prod" and WithDevelopment otherwise.
func WithEnvironment(env, service string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(service)
	default:
		return WithDevelopment(service)
	}
}

func withEnvironment(env, service string, level slog.Level, format Format) Option {
	return func(c *settings) {
		if service == "" {
			return
		}
		c.level = level
		c.format = format
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", env),
		)
	}
}

// Config is the environment form of the logger options.
type Config struct {
	Level  slog.Level `env:"RULEKIT_LOG_LEVEL" envDefault:"info"`
	Format Format     `env:"RULEKIT_LOG_FORMAT" envDefault:"text"`
}

// Options converts the configuration to logger options.
func (c Config) Options() []Option {
	return []Option{WithLevel(c.Level), WithFormat(c.Format)}
}

// FromEnv builds a logger from RULEKIT_LOG_LEVEL and RULEKIT_LOG_FORMAT. Options given
// here are applied after the environment ones.
func FromEnv(opts ...Option) (*slog.Logger, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(append(cfg.Options(), opts...)...), nil
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type settings struct {
	level          slog.Level
	format         Format
	output         io.Writer
	attrs          []slog.Attr
	handlerOptions *slog.HandlerOptions
	extractors     []ContextExtractor
}

func defaultSettings() *settings {
	return &settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a slog.Logger from the options, decorated with the registered
// context extractors. The default is info-level JSON on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOptions
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}
