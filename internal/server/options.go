package server

import (
	"io"
	"log"
	"time"

	theme "github.com/goliatone/go-theme"
)

// Options configures a Server.
type Options struct {
	Logger *log.Logger
	Clock  func() time.Time
	Theme  *theme.RendererConfig

	// RequestLog enables echo's request logger.
	RequestLog   bool
	MaxBodyBytes int64
}

type Option func(*Options)

func newOptions(fns ...Option) Options {
	opts := Options{
		Logger:       log.New(io.Discard, "", 0),
		Clock:        time.Now,
		MaxBodyBytes: 1 << 20,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	return opts
}

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func WithClock(clock func() time.Time) Option {
	return func(o *Options) { o.Clock = clock }
}

// WithTheme styles the rendered page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Options) { o.Theme = cfg }
}

func WithRequestLog(enabled bool) Option {
	return func(o *Options) { o.RequestLog = enabled }
}

func WithMaxBodyBytes(limit int64) Option {
	return func(o *Options) { o.MaxBodyBytes = limit }
}
