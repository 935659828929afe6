package client

import (
	"net/http"
	"time"
)

const (
	defaultPredictPath   = "/predict"
	defaultModelInfoPath = "/api/model-info"
	defaultOptionsPath   = "/api/options"
	defaultTimeout       = 15 * time.Second
	defaultMaxBodyBytes  = 1 << 20
)

// Options configures a Client.
type Options struct {
	HTTPClient    *http.Client
	Timeout       time.Duration
	PredictPath   string
	ModelInfoPath string
	OptionsPath   string
	MaxBodyBytes  int64
	Header        http.Header
}

// OptionFn mutates Options.
type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Timeout:       defaultTimeout,
		PredictPath:   defaultPredictPath,
		ModelInfoPath: defaultModelInfoPath,
		OptionsPath:   defaultOptionsPath,
		MaxBodyBytes:  defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	if opts.PredictPath == "" {
		opts.PredictPath = defaultPredictPath
	}
	if opts.ModelInfoPath == "" {
		opts.ModelInfoPath = defaultModelInfoPath
	}
	if opts.OptionsPath == "" {
		opts.OptionsPath = defaultOptionsPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Header != nil {
		opts.Header = opts.Header.Clone()
	}
	return opts
}

// WithHTTPClient replaces the underlying HTTP client. Its own timeout wins
// over WithTimeout.
func WithHTTPClient(hc *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HTTPClient = hc
	}
}

func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = timeout
	}
}

func WithPredictPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PredictPath = path
	}
}

func WithModelInfoPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ModelInfoPath = path
	}
}

func WithOptionsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OptionsPath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if o.Header == nil {
			o.Header = http.Header{}
		}
		o.Header.Add(key, value)
	}
}
