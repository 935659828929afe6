package catalog

import (
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// RoutePath is where the handler is mounted below a base path.
const RoutePath = "/api/options"

// Query parameters read by the handler.
const (
	SearchParam = "q"
	LimitParam  = "limit"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Options configures the handler.
type Options struct {
	Catalog *vehicle.Catalog
}

type OptionFn func(*Options)

func newOptions(fns ...OptionFn) Options {
	var opts Options
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Catalog == nil {
		opts.Catalog = vehicle.DefaultCatalog()
	}
	return opts
}

// WithCatalog serves lists from catalog instead of the built-in one.
func WithCatalog(catalog *vehicle.Catalog) OptionFn {
	return func(o *Options) { o.Catalog = catalog }
}

// clampLimit maps a requested limit onto [0, maxLimit]; zero means the
// default.
func clampLimit(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}
