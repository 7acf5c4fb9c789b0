package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/northlight/website/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds operator overrides for the environment defaults.
// Empty or unknown values keep the defaults.
type Config struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Option configures logger creation.
type Option func(*options)

type options struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithEnvironment applies the defaults for env and tags every record with
// service and env. Production and staging log JSON at info level; anything
// else logs text at debug level.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(o *options) {
		switch env {
		case environment.Production, environment.Staging:
			o.level, o.format = slog.LevelInfo, FormatJSON
		default:
			env = environment.Development
			o.level, o.format = slog.LevelDebug, FormatText
		}
		if service != "" {
			o.attrs = append(o.attrs, slog.String("service", service))
		}
		o.attrs = append(o.attrs, slog.String("env", string(env)))
	}
}

// WithConfig overrides level and format from cfg. Apply it after
// WithEnvironment.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		var level slog.Level
		if cfg.Level != "" && level.UnmarshalText([]byte(cfg.Level)) == nil {
			o.level = level
		}
		switch f := Format(strings.ToLower(cfg.Format)); f {
		case FormatJSON, FormatText:
			o.format = f
		}
	}
}

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithOutput sets the output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithContextExtractors registers functions that inject dynamic attributes
// from context. Nil extractors are ignored.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		for _, ex := range extractors {
			if ex != nil {
				o.extractors = append(o.extractors, ex)
			}
		}
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New creates a slog.Logger whose handler runs the registered context
// extractors on every record. Without options it logs JSON at info level to
// stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}

	var handler slog.Handler
	if o.format == FormatText {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}

	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}
