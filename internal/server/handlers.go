package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-carprice/internal/predict"
	"github.com/goliatone/go-carprice/pkg/controller"
	"github.com/goliatone/go-carprice/pkg/render/page"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// ActionReset is the form action value that clears the form.
const ActionReset = "reset"

// ShowForm renders the empty page after the capability check.
func (s *Server) ShowForm(c echo.Context) error {
	ctrl, err := s.pageController(c)
	if err != nil {
		return err
	}
	return s.renderPage(c, ctrl)
}

// SubmitForm replays a browser form post through a fresh controller and
// renders the resulting page.
func (s *Server) SubmitForm(c echo.Context) error {
	ctrl, err := s.pageController(c)
	if err != nil {
		return err
	}
	if c.FormValue("action") == ActionReset {
		if err := ctrl.Dispatch(c.Request().Context(), controller.Event{Type: controller.EventReset}); err != nil {
			return err
		}
		return s.renderPage(c, ctrl)
	}

	ctx := c.Request().Context()
	for _, name := range vehicle.Fields() {
		ev := controller.Event{Type: controller.EventChange, Field: name, Value: c.FormValue(name)}
		if name == vehicle.FieldMileage {
			ev.Type = controller.EventInput
		}
		if err := ctrl.Dispatch(ctx, ev); err != nil {
			return fmt.Errorf("server: field %s: %w", name, err)
		}
	}

	err = ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSubmit})
	switch {
	case err == nil,
		errors.Is(err, controller.ErrValidation),
		errors.Is(err, controller.ErrSubmitDisabled):
	default:
		s.opts.Logger.Printf("server: form submit: %v", err)
	}
	return s.renderPage(c, ctrl)
}

func (s *Server) pageController(c echo.Context) (*controller.Controller, error) {
	ctrl, err := controller.New(
		predict.LocalPredictor{Service: s.service},
		controller.WithClock(s.opts.Clock),
		controller.WithLogger(s.opts.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("server: controller: %w", err)
	}
	if err := ctrl.Dispatch(c.Request().Context(), controller.Event{Type: controller.EventLoad}); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (s *Server) renderPage(c echo.Context, ctrl *controller.Controller) error {
	var buf bytes.Buffer
	err := s.pages.Render(&buf, page.View{
		Snapshot:    ctrl.Snapshot(),
		Catalog:     s.service.Catalog(),
		Now:         s.opts.Clock(),
		ModelLoaded: s.service.Loaded(),
	})
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Predict answers the JSON prediction endpoint. Schema violations get 400
// with the failure shape; every other outcome is 200 with success set.
func (s *Server) Predict(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.opts.MaxBodyBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, vehicle.Failed("Invalid request body."))
	}
	if err := s.doc.ValidatePredictBody(body); err != nil {
		return c.JSON(http.StatusBadRequest, vehicle.Failed(err.Error()))
	}

	var req predict.PredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, vehicle.Failed(err.Error()))
	}
	return c.JSON(http.StatusOK, s.service.Predict(c.Request().Context(), req))
}

func (s *Server) ModelInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.ModelInfo())
}

func (s *Server) OpenAPI(c echo.Context) error {
	raw, err := s.doc.JSON()
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return c.JSONBlob(http.StatusOK, raw)
}
