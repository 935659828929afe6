package controller

import (
	"io"
	"log"
	"time"
)

// Observer receives a copy of the page after every change.
type Observer func(Snapshot)

// Options configures a Controller.
type Options struct {
	Clock    func() time.Time
	Logger   *log.Logger
	Observer Observer
	Handlers map[EventType]Handler
	// SkipDefaultHandlers leaves the event table empty apart from Handlers.
	SkipDefaultHandlers bool
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Clock:  time.Now,
		Logger: log.New(io.Discard, "", 0),
	}
}

func newOptions(fns ...Option) Options {
	opts := defaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return opts
}

// WithClock sets the time source used for the year bound.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Clock = clock
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithObserver(observer Observer) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Observer = observer
	}
}

// WithHandler installs handler for eventType, replacing the default one.
func WithHandler(eventType EventType, handler Handler) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		if o.Handlers == nil {
			o.Handlers = make(map[EventType]Handler)
		}
		o.Handlers[eventType] = handler
	}
}

// WithoutDefaultHandlers starts the controller with an empty event table.
func WithoutDefaultHandlers() Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SkipDefaultHandlers = true
	}
}
