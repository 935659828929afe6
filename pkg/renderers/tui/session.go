// Package tui drives the prediction form from a terminal: it prompts each
// field, routes the answers through a form controller and paints the page.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/goliatone/go-carprice/pkg/controller"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Session is one interactive run over a controller.
type Session struct {
	ctrl    *controller.Controller
	driver  PromptDriver
	source  OptionSource
	catalog *vehicle.Catalog
	out     io.Writer
	theme   Theme
	clock   func() time.Time
	logger  *log.Logger
	painter *Painter

	cache map[vehicle.Kind][]vehicle.Option
}

// NewSession wires a session to ctrl. The survey driver is used unless
// WithPromptDriver says otherwise.
func NewSession(ctrl *controller.Controller, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}
	s := defaultSession()
	s.ctrl = ctrl
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	s.painter = NewPainter(s.out, s.theme)
	return s, nil
}

var prompts = map[string]string{
	vehicle.FieldModel:          "Vehicle model",
	vehicle.FieldYear:           "Year of manufacture",
	vehicle.FieldTransmission:   "Transmission",
	vehicle.FieldBodyType:       "Body type",
	vehicle.FieldFuelType:       "Fuel type",
	vehicle.FieldEngineCapacity: "Engine capacity",
	vehicle.FieldMileage:        "Mileage (km)",
}

// Run checks the backend, then loops: prompt every field, submit, paint,
// and ask whether to predict again.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := s.ctrl.Dispatch(ctx, controller.Event{Type: controller.EventLoad}); err != nil {
		return err
	}
	if snap := s.ctrl.Snapshot(); snap.Locked {
		if err := s.painter.Paint(snap); err != nil {
			return err
		}
		return ErrUnavailable
	}

	for {
		if err := s.promptFields(ctx); err != nil {
			return err
		}

		err := s.ctrl.Dispatch(ctx, controller.Event{Type: controller.EventSubmit})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !errors.Is(err, controller.ErrValidation) {
				s.logger.Printf("tui: submit: %v", err)
			}
		}
		if err := s.painter.Paint(s.ctrl.Snapshot()); err != nil {
			return err
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Predict another vehicle?", Default: true})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		if err := s.ctrl.Dispatch(ctx, controller.Event{Type: controller.EventReset}); err != nil {
			return err
		}
	}
}

func (s *Session) promptFields(ctx context.Context) error {
	for _, name := range vehicle.Fields() {
		if name == vehicle.FieldMileage {
			if err := s.promptMileage(ctx); err != nil {
				return err
			}
			continue
		}

		options, err := s.optionsFor(ctx, name)
		if err != nil {
			return err
		}
		value, err := s.promptSelect(ctx, name, options)
		if err != nil {
			return err
		}
		if err := s.ctrl.Dispatch(ctx, controller.Event{Type: controller.EventChange, Field: name, Value: value}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptSelect(ctx context.Context, name string, options []vehicle.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoOptions, name)
	}
	labels := make([]string, len(options))
	current := s.ctrl.Form().Get(name)
	defaultIndex := 0
	for i, option := range options {
		labels[i] = option.Label
		if option.Value == current {
			defaultIndex = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      prompts[name],
		Options:      labels,
		DefaultIndex: defaultIndex,
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("tui: %s: selection %d out of range", name, idx)
	}
	return options[idx].Value, nil
}

// promptMileage routes the typed text through the input event, which
// sanitises it the way the page does on every keystroke.
func (s *Session) promptMileage(ctx context.Context) error {
	raw, err := s.driver.Input(ctx, InputConfig{
		Message: prompts[vehicle.FieldMileage],
		Default: s.ctrl.Form().Get(vehicle.FieldMileage),
		Help:    "Digits only, up to 500,000. Separators are removed.",
	})
	if err != nil {
		return err
	}
	return s.ctrl.Dispatch(ctx, controller.Event{Type: controller.EventInput, Field: vehicle.FieldMileage, Value: raw})
}

func (s *Session) optionsFor(ctx context.Context, field string) ([]vehicle.Option, error) {
	if field == vehicle.FieldYear {
		return vehicle.YearOptions(s.clock()), nil
	}
	kind, ok := vehicle.KindForField(field)
	if !ok {
		return nil, fmt.Errorf("tui: no options for field %q", field)
	}
	if cached, ok := s.cache[kind]; ok {
		return cached, nil
	}

	options, err := s.fetch(ctx, kind)
	if err != nil {
		s.logger.Printf("tui: fetch %s options: %v", kind, err)
		if err := s.driver.Info(ctx, fmt.Sprintf("%sUsing built-in %s list.", s.theme.InfoPrefix, kind)); err != nil {
			return nil, err
		}
	}
	if len(options) == 0 {
		options = s.catalog.Options(kind)
	}
	s.cache[kind] = options
	return options, nil
}

func (s *Session) fetch(ctx context.Context, kind vehicle.Kind) ([]vehicle.Option, error) {
	if s.source == nil {
		return nil, nil
	}
	return s.source.Options(ctx, kind)
}
