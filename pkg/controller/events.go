package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-carprice/pkg/validation"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// EventType names a page event.
type EventType string

const (
	EventInput   EventType = "input"
	EventChange  EventType = "change"
	EventKeydown EventType = "keydown"
	EventSubmit  EventType = "submit"
	EventReset   EventType = "reset"
	EventLoad    EventType = "load"
)

// Keys recognised by the keydown handler.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Event is one user or lifecycle event.
type Event struct {
	Type  EventType
	Field string
	Value string
	Key   string
}

// Handler reacts to an event on behalf of the controller.
type Handler func(ctx context.Context, c *Controller, ev Event) error

type handlerTable struct {
	mu       sync.RWMutex
	handlers map[EventType]Handler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{handlers: make(map[EventType]Handler)}
}

func (t *handlerTable) register(eventType EventType, handler Handler) error {
	if eventType == "" {
		return fmt.Errorf("controller: event type is required")
	}
	if handler == nil {
		return fmt.Errorf("controller: handler for %q is required", eventType)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.handlers[eventType]; exists {
		return fmt.Errorf("controller: handler for %q already registered", eventType)
	}
	t.handlers[eventType] = handler
	return nil
}

func (t *handlerTable) get(eventType EventType) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	handler, ok := t.handlers[eventType]
	return handler, ok
}

func (t *handlerTable) list() []EventType {
	t.mu.RLock()
	defer t.mu.RUnlock()

	types := make([]EventType, 0, len(t.handlers))
	for eventType := range t.handlers {
		types = append(types, eventType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DefaultHandlers returns the standard event wiring.
func DefaultHandlers() map[EventType]Handler {
	return map[EventType]Handler{
		EventInput:   handleInput,
		EventChange:  handleChange,
		EventKeydown: handleKeydown,
		EventSubmit:  handleSubmit,
		EventReset:   handleReset,
		EventLoad:    handleLoad,
	}
}

// handleInput stores a typed value. Mileage is sanitised as it is typed.
func handleInput(_ context.Context, c *Controller, ev Event) error {
	if !vehicle.IsField(ev.Field) {
		return fmt.Errorf("controller: unknown field %q", ev.Field)
	}
	value := ev.Value
	if ev.Field == vehicle.FieldMileage {
		value = validation.SanitizeMileage(value)
	}
	c.SetField(ev.Field, value)
	return nil
}

// handleChange stores a selected value and clears any shown error.
func handleChange(_ context.Context, c *Controller, ev Event) error {
	if !vehicle.IsField(ev.Field) {
		return fmt.Errorf("controller: unknown field %q", ev.Field)
	}
	c.update(func(p *page) {
		p.form.Set(ev.Field, ev.Value)
		p.err.Visible = false
		if p.state == StateErrorShown {
			p.state = StateIdle
		}
	})
	return nil
}

func handleKeydown(ctx context.Context, c *Controller, ev Event) error {
	switch ev.Key {
	case KeyEnter:
		if !c.Form().Filled() {
			return nil
		}
		_, err := c.Submit(ctx)
		return err
	case KeyEscape:
		c.HideError()
	}
	return nil
}

func handleSubmit(ctx context.Context, c *Controller, _ Event) error {
	_, err := c.Submit(ctx)
	return err
}

func handleReset(_ context.Context, c *Controller, _ Event) error {
	c.Reset()
	return nil
}

func handleLoad(ctx context.Context, c *Controller, _ Event) error {
	return c.CheckCapability(ctx)
}
