package tui

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Theme captures optional message prefixes applied when painting.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{ErrorPrefix: "error: "}

// OptionSource supplies dropdown values, typically the prediction server.
type OptionSource interface {
	Options(ctx context.Context, kind vehicle.Kind) ([]vehicle.Option, error)
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOptionSource fetches dropdown values from source. The built-in catalog
// is used when the source fails or returns nothing.
func WithOptionSource(source OptionSource) Option {
	return func(s *Session) {
		s.source = source
	}
}

// WithCatalog replaces the fallback catalog.
func WithCatalog(catalog *vehicle.Catalog) Option {
	return func(s *Session) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithOutput directs painted pages to w.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func defaultSession() *Session {
	return &Session{
		out:     os.Stdout,
		catalog: vehicle.DefaultCatalog(),
		theme:   DefaultTheme,
		clock:   time.Now,
		logger:  log.New(io.Discard, "", 0),
		cache:   make(map[vehicle.Kind][]vehicle.Option),
	}
}
