package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-carprice/pkg/validation"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Predictor is the backend the controller submits to. *client.Client
// satisfies it, as does the in-process prediction service adapter.
type Predictor interface {
	Predict(ctx context.Context, req vehicle.ValidatedRequest) (vehicle.PredictionResult, error)
	ModelInfo(ctx context.Context) (vehicle.ModelInfo, error)
}

// Controller owns the page for its whole lifetime. It is safe for concurrent
// use.
type Controller struct {
	predictor Predictor
	opts      Options
	events    *handlerTable

	mu         sync.Mutex
	page       page
	submitting atomic.Bool
}

// New builds a controller around predictor with the default event handlers
// plus any overrides.
func New(predictor Predictor, fns ...Option) (*Controller, error) {
	if predictor == nil {
		return nil, fmt.Errorf("controller: predictor is required")
	}
	opts := newOptions(fns...)

	c := &Controller{
		predictor: predictor,
		opts:      opts,
		events:    newHandlerTable(),
		page:      newPage(),
	}

	handlers := make(map[EventType]Handler)
	if !opts.SkipDefaultHandlers {
		for eventType, handler := range DefaultHandlers() {
			handlers[eventType] = handler
		}
	}
	for eventType, handler := range opts.Handlers {
		handlers[eventType] = handler
	}
	for eventType, handler := range handlers {
		if err := c.events.register(eventType, handler); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a handler for an event type that has none.
func (c *Controller) Register(eventType EventType, handler Handler) error {
	return c.events.register(eventType, handler)
}

// Handlers lists the event types with a registered handler, sorted.
func (c *Controller) Handlers() []EventType {
	return c.events.list()
}

// Dispatch routes ev to its handler.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	handler, ok := c.events.get(ev.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoHandler, ev.Type)
	}
	return handler(ctx, c, ev)
}

// Snapshot returns a copy of the current page.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.snapshot()
}

// Form returns a copy of the current field values.
func (c *Controller) Form() vehicle.FormInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.form.Clone()
}

// SetField writes a raw field value without any event side effects.
func (c *Controller) SetField(name, value string) {
	c.update(func(p *page) {
		p.form.Set(name, value)
	})
}

// Fill replaces the known fields with the values in input.
func (c *Controller) Fill(input vehicle.FormInput) {
	c.update(func(p *page) {
		for _, field := range vehicle.Fields() {
			p.form.Set(field, input.Get(field))
		}
	})
}

// Validate runs the local rules against input.
func (c *Controller) Validate(input vehicle.FormInput) bool {
	return validation.Validate(input, c.opts.Clock())
}

// Submit runs one read-validate-submit-render cycle. Invalid input renders
// the validation message and returns ErrValidation without touching the
// network. Backend failures are rendered into the page and also returned.
func (c *Controller) Submit(ctx context.Context) (vehicle.PredictionResult, error) {
	if c.Snapshot().Locked {
		return vehicle.PredictionResult{}, ErrSubmitDisabled
	}
	if !c.submitting.CompareAndSwap(false, true) {
		return vehicle.PredictionResult{}, ErrSubmitInProgress
	}
	defer c.submitting.Store(false)

	var input vehicle.FormInput
	c.update(func(p *page) {
		p.hideRegions()
		p.scroll = ScrollNone
		input = p.form.Clone()
	})

	req, err := validation.Parse(input, c.opts.Clock())
	if err != nil {
		c.RenderError(MessageInvalidInput)
		return vehicle.PredictionResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	c.update(func(p *page) { p.beginLoading() })
	defer c.update(func(p *page) {
		p.endLoading()
		if p.state == StateSubmitting {
			p.state = StateIdle
		}
	})

	result, err := c.predictor.Predict(ctx, req)
	if err != nil {
		c.opts.Logger.Printf("controller: predict failed: %v", err)
		c.RenderError(MessageNetworkError)
		return vehicle.PredictionResult{}, fmt.Errorf("controller: predict: %w", err)
	}

	if !result.Success {
		message := result.Error
		if message == "" {
			message = MessagePredictionFailed
		}
		c.opts.Logger.Printf("controller: prediction rejected: %s", message)
		c.RenderError(message)
		return result, nil
	}

	if result.Details == nil {
		c.opts.Logger.Printf("controller: %v", ErrMalformedResult)
		c.RenderError(MessageNetworkError)
		return result, ErrMalformedResult
	}

	c.RenderSuccess(result)
	return result, nil
}

// RenderSuccess paints a successful prediction: the price and the nine
// detail rows, with the results region shown and scrolled into view.
func (c *Controller) RenderSuccess(result vehicle.PredictionResult) {
	var details vehicle.Details
	if result.Details != nil {
		details = *result.Details
	}
	rows := vehicle.DetailRows(details)
	price := result.PredictedPrice

	c.update(func(p *page) {
		p.results.Price = price
		p.results.Rows = rows
		p.results.Visible = true
		p.scroll = ScrollResults
		p.state = StateResultsShown
	})
}

// RenderError shows message in the error region and scrolls to it.
func (c *Controller) RenderError(message string) {
	c.update(func(p *page) {
		p.err.Message = message
		p.err.Visible = true
		p.scroll = ScrollError
		p.state = StateErrorShown
	})
}

// HideError hides the error region.
func (c *Controller) HideError() {
	c.update(func(p *page) {
		p.err.Visible = false
		if p.state == StateErrorShown {
			p.state = StateIdle
		}
	})
}

// Reset clears every field, hides both regions and scrolls to the top.
func (c *Controller) Reset() {
	c.update(func(p *page) {
		p.form = vehicle.NewFormInput()
		p.hideRegions()
		p.scroll = ScrollTop
		if p.state != StateSubmitting {
			p.state = StateIdle
		}
	})
}

// CheckCapability asks the backend whether a model is loaded. When it is not,
// submit is disabled for the rest of the page lifetime. A failed call is
// logged and otherwise ignored.
func (c *Controller) CheckCapability(ctx context.Context) error {
	info, err := c.predictor.ModelInfo(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.opts.Logger.Printf("controller: capability check failed: %v", err)
		return nil
	}
	if info.ModelLoaded {
		return nil
	}
	c.update(func(p *page) {
		p.locked = true
		p.submit.Disabled = true
		p.submit.Title = MessageModelNotLoaded
	})
	return nil
}

func (c *Controller) update(fn func(*page)) {
	c.mu.Lock()
	fn(&c.page)
	snap := c.page.snapshot()
	c.mu.Unlock()

	if c.opts.Observer != nil {
		c.opts.Observer(snap)
	}
}
