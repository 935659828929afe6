// Package server exposes the prediction service and the form page over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-carprice/components/catalog"
	"github.com/goliatone/go-carprice/internal/apidoc"
	"github.com/goliatone/go-carprice/internal/predict"
	"github.com/goliatone/go-carprice/pkg/render/page"
)

type Server struct {
	opts    Options
	e       *echo.Echo
	service *predict.Service
	doc     *apidoc.Document
	pages   *page.Renderer
}

// New builds the server and registers every route. A nil doc loads the
// embedded API document.
func New(service *predict.Service, doc *apidoc.Document, fns ...Option) (*Server, error) {
	if service == nil {
		return nil, errors.New("server: missing prediction service")
	}
	opts := newOptions(fns...)

	if doc == nil {
		loaded, err := apidoc.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("server: load api document: %w", err)
		}
		doc = loaded
	}

	pages, err := page.NewRenderer(nil, opts.Theme)
	if err != nil {
		return nil, fmt.Errorf("server: page renderer: %w", err)
	}

	s := &Server{
		opts:    opts,
		e:       echo.New(),
		service: service,
		doc:     doc,
		pages:   pages,
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	if s.opts.RequestLog {
		s.e.Use(middleware.Logger())
	}
	s.e.Use(middleware.Recover())

	s.e.GET("/", s.ShowForm)
	s.e.POST("/", s.SubmitForm)
	s.e.POST(apidoc.PredictPath, s.Predict)
	s.e.GET("/api/model-info", s.ModelInfo)
	s.e.GET("/api/openapi.json", s.OpenAPI)
	s.e.StaticFS(s.assetPrefix(), page.Assets())

	options := catalog.New(catalog.WithCatalog(s.service.Catalog()))
	if _, err := options.RegisterRoutes(echoMux{e: s.e}, ""); err != nil {
		return fmt.Errorf("server: mount options: %w", err)
	}
	return nil
}

func (s *Server) assetPrefix() string {
	if s.opts.Theme != nil && s.opts.Theme.AssetURL != nil {
		if url := s.opts.Theme.AssetURL("stylesheet"); strings.HasPrefix(url, "/") {
			if i := strings.LastIndex(url, "/"); i > 0 {
				return url[:i]
			}
		}
	}
	return "/static"
}

// Handler returns the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.opts.Logger.Printf("server: listening on %s", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: start: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// echoMux adapts echo to the net/http style Mux used by components. Subtree
// patterns (trailing slash) match everything below them.
type echoMux struct {
	e *echo.Echo
}

func (m echoMux) Handle(pattern string, handler http.Handler) {
	if strings.HasSuffix(pattern, "/") {
		pattern += "*"
	}
	m.e.Any(pattern, echo.WrapHandler(handler))
}
