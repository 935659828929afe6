package controller

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type stubPredictor struct {
	mu       sync.Mutex
	result   vehicle.PredictionResult
	err      error
	info     vehicle.ModelInfo
	infoErr  error
	calls    int
	requests []vehicle.ValidatedRequest
	block    chan struct{}
	started  chan struct{}
}

func (s *stubPredictor) Predict(ctx context.Context, req vehicle.ValidatedRequest) (vehicle.PredictionResult, error) {
	s.mu.Lock()
	s.calls++
	s.requests = append(s.requests, req)
	block, started := s.block, s.started
	s.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	return s.result, s.err
}

func (s *stubPredictor) ModelInfo(context.Context) (vehicle.ModelInfo, error) {
	return s.info, s.infoErr
}

func (s *stubPredictor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func successResult() vehicle.PredictionResult {
	return vehicle.Succeeded("$12,345", vehicle.Details{
		Model:          "Toyota Aqua",
		Year:           "2015",
		Transmission:   "Automatic",
		BodyType:       "Hatchback",
		FuelType:       "Hybrid",
		EngineCapacity: "1500cc",
		Mileage:        "85,000 km",
		VehicleAge:     "10 years",
		MileagePerYear: "8,500 km/year",
	})
}

func newController(t *testing.T, p Predictor, fns ...Option) *Controller {
	t.Helper()
	fns = append([]Option{WithClock(func() time.Time { return fixedNow })}, fns...)
	c, err := New(p, fns...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func fillValid(c *Controller) {
	c.Fill(vehicle.FormInput{
		vehicle.FieldModel:          "aqua",
		vehicle.FieldYear:           "2015",
		vehicle.FieldTransmission:   "automatic",
		vehicle.FieldBodyType:       "hatchback",
		vehicle.FieldFuelType:       "hybrid",
		vehicle.FieldEngineCapacity: "1500",
		vehicle.FieldMileage:        "85,000",
	})
}

func assertControlRestored(t *testing.T, snap Snapshot) {
	t.Helper()
	want := SubmitControl{Disabled: false, TextVisible: true, LoaderVisible: false}
	if diff := cmp.Diff(want, snap.Submit); diff != "" {
		t.Fatalf("submit control not restored (-want +got):\n%s", diff)
	}
}

func TestSubmit_SuccessRendersNineRowsInOrder(t *testing.T) {
	stub := &stubPredictor{result: successResult()}
	c := newController(t, stub)
	fillValid(c)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := c.Snapshot()
	if !snap.Results.Visible || snap.Error.Visible {
		t.Fatalf("expected results shown and error hidden, got %#v / %#v", snap.Results, snap.Error)
	}
	if snap.Results.Price != "$12,345" {
		t.Fatalf("expected price $12,345, got %q", snap.Results.Price)
	}
	wantRows := []vehicle.DetailRow{
		{Label: "Model", Value: "Toyota Aqua"},
		{Label: "Year", Value: "2015"},
		{Label: "Transmission", Value: "Automatic"},
		{Label: "Body Type", Value: "Hatchback"},
		{Label: "Fuel Type", Value: "Hybrid"},
		{Label: "Engine", Value: "1500cc"},
		{Label: "Mileage", Value: "85,000 km"},
		{Label: "Vehicle Age", Value: "10 years"},
		{Label: "Avg Yearly Usage", Value: "8,500 km/year"},
	}
	if diff := cmp.Diff(wantRows, snap.Results.Rows); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
	if snap.Scroll != ScrollResults || snap.State != StateResultsShown {
		t.Fatalf("expected results scroll/state, got %q/%q", snap.Scroll, snap.State)
	}
	assertControlRestored(t, snap)

	if len(stub.requests) != 1 || stub.requests[0].Mileage != 85000 || stub.requests[0].Year != 2015 {
		t.Fatalf("unexpected request: %#v", stub.requests)
	}
}

func TestSubmit_ServerFailureShowsServerMessage(t *testing.T) {
	stub := &stubPredictor{result: vehicle.Failed("Model unavailable")}
	c := newController(t, stub)
	fillValid(c)

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("expected logical failure without error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure result")
	}
	snap := c.Snapshot()
	if !snap.Error.Visible || snap.Error.Message != "Model unavailable" {
		t.Fatalf("unexpected error region: %#v", snap.Error)
	}
	if snap.Results.Visible {
		t.Fatalf("results should be hidden")
	}
	assertControlRestored(t, snap)
}

func TestSubmit_ServerFailureWithoutMessageUsesFallback(t *testing.T) {
	c := newController(t, &stubPredictor{result: vehicle.Failed("")})
	fillValid(c)

	_, _ = c.Submit(context.Background())
	if got := c.Snapshot().Error.Message; got != MessagePredictionFailed {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestSubmit_ServerMessageIsKeptVerbatim(t *testing.T) {
	messages := []string{
		"Unknown model <vitz> for body_type",
		"a<b>c",
		"  padded message  ",
		"<b>Model</b> unavailable<script>x()</script>",
	}
	for _, msg := range messages {
		c := newController(t, &stubPredictor{result: vehicle.Failed(msg)})
		fillValid(c)

		_, _ = c.Submit(context.Background())
		if got := c.Snapshot().Error.Message; got != msg {
			t.Fatalf("expected %q, got %q", msg, got)
		}
	}
}

func TestSubmit_SuccessValuesAreKeptVerbatim(t *testing.T) {
	details := vehicle.Details{Model: "Toyota <Aqua>", Mileage: " 85,000 km "}
	c := newController(t, &stubPredictor{result: vehicle.Succeeded("Rs. <1>", details)})
	fillValid(c)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := c.Snapshot()
	if snap.Results.Price != "Rs. <1>" {
		t.Fatalf("unexpected price %q", snap.Results.Price)
	}
	if snap.Results.Rows[0].Value != "Toyota <Aqua>" || snap.Results.Rows[6].Value != " 85,000 km " {
		t.Fatalf("unexpected rows: %#v", snap.Results.Rows)
	}
}

func TestSubmit_NetworkFailureShowsGenericMessageAndReenables(t *testing.T) {
	var logs bytes.Buffer
	stub := &stubPredictor{err: errors.New("dial tcp: connection refused")}
	c := newController(t, stub, WithLogger(log.New(&logs, "", 0)))
	fillValid(c)

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	snap := c.Snapshot()
	if !snap.Error.Visible || snap.Error.Message != MessageNetworkError {
		t.Fatalf("unexpected error region: %#v", snap.Error)
	}
	assertControlRestored(t, snap)
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}

func TestSubmit_SuccessWithoutDetailsIsMalformed(t *testing.T) {
	c := newController(t, &stubPredictor{result: vehicle.PredictionResult{Success: true, PredictedPrice: "$1"}})
	fillValid(c)

	_, err := c.Submit(context.Background())
	if !errors.Is(err, ErrMalformedResult) {
		t.Fatalf("expected ErrMalformedResult, got %v", err)
	}
	if got := c.Snapshot().Error.Message; got != MessageNetworkError {
		t.Fatalf("expected network message, got %q", got)
	}
}

func TestSubmit_InvalidInputNeverReachesPredictor(t *testing.T) {
	stub := &stubPredictor{result: successResult()}
	c := newController(t, stub)
	fillValid(c)
	c.SetField(vehicle.FieldYear, "1999")

	_, err := c.Submit(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if stub.callCount() != 0 {
		t.Fatalf("predictor should not be called")
	}
	snap := c.Snapshot()
	if !snap.Error.Visible || snap.Error.Message != MessageInvalidInput {
		t.Fatalf("unexpected error region: %#v", snap.Error)
	}
	if snap.Scroll != ScrollError {
		t.Fatalf("expected scroll to error, got %q", snap.Scroll)
	}
	assertControlRestored(t, snap)
}

func TestSubmit_HidesPreviousRegions(t *testing.T) {
	stub := &stubPredictor{result: successResult()}
	c := newController(t, stub)
	fillValid(c)
	c.RenderError("old")

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Snapshot().Error.Visible {
		t.Fatalf("error region should be hidden after a successful submission")
	}
}

func TestSubmit_ConcurrentSubmissionIsRejected(t *testing.T) {
	stub := &stubPredictor{
		result:  successResult(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	c := newController(t, stub)
	fillValid(c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-stub.started

	loading := c.Snapshot()
	if !loading.Submit.Disabled || loading.Submit.TextVisible || !loading.Submit.LoaderVisible {
		t.Fatalf("expected loading control, got %#v", loading.Submit)
	}
	if loading.State != StateSubmitting {
		t.Fatalf("expected submitting state, got %q", loading.State)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}

	close(stub.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	assertControlRestored(t, c.Snapshot())
	if stub.callCount() != 1 {
		t.Fatalf("expected exactly one backend call, got %d", stub.callCount())
	}
}

func TestLoad_ModelNotLoadedDisablesSubmit(t *testing.T) {
	stub := &stubPredictor{result: successResult(), info: vehicle.ModelInfo{ModelLoaded: false}}
	c := newController(t, stub)

	if err := c.Dispatch(context.Background(), Event{Type: EventLoad}); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := c.Snapshot()
	if !snap.Submit.Disabled || snap.Submit.Title != MessageModelNotLoaded || !snap.Locked {
		t.Fatalf("expected locked submit, got %#v", snap.Submit)
	}

	fillValid(c)
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitDisabled) {
		t.Fatalf("expected ErrSubmitDisabled, got %v", err)
	}
	if stub.callCount() != 0 {
		t.Fatalf("predictor should not be called while locked")
	}
}

func TestLoad_ModelLoadedLeavesSubmitEnabled(t *testing.T) {
	c := newController(t, &stubPredictor{info: vehicle.ModelInfo{ModelLoaded: true}})

	if err := c.Dispatch(context.Background(), Event{Type: EventLoad}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap := c.Snapshot(); snap.Submit.Disabled || snap.Locked {
		t.Fatalf("submit should stay enabled, got %#v", snap.Submit)
	}
}

func TestLoad_CapabilityFailureIsLoggedAndIgnored(t *testing.T) {
	var logs bytes.Buffer
	c := newController(t, &stubPredictor{infoErr: errors.New("boom")}, WithLogger(log.New(&logs, "", 0)))

	if err := c.Dispatch(context.Background(), Event{Type: EventLoad}); err != nil {
		t.Fatalf("expected failure to be ignored, got %v", err)
	}
	if c.Snapshot().Submit.Disabled {
		t.Fatalf("submit should stay enabled")
	}
	if !strings.Contains(logs.String(), "capability check failed") {
		t.Fatalf("expected log line, got %q", logs.String())
	}
}

func TestReset_ClearsFormAndRegions(t *testing.T) {
	c := newController(t, &stubPredictor{result: successResult()})
	fillValid(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := c.Dispatch(context.Background(), Event{Type: EventReset}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	snap := c.Snapshot()
	if diff := cmp.Diff(vehicle.NewFormInput(), snap.Form); diff != "" {
		t.Fatalf("form not cleared (-want +got):\n%s", diff)
	}
	if snap.Results.Visible || snap.Error.Visible {
		t.Fatalf("regions should be hidden")
	}
	if snap.Scroll != ScrollTop || snap.State != StateIdle {
		t.Fatalf("expected top/idle, got %q/%q", snap.Scroll, snap.State)
	}
}

func TestObserver_ReceivesSnapshots(t *testing.T) {
	var states []State
	c := newController(t, &stubPredictor{result: successResult()}, WithObserver(func(s Snapshot) {
		states = append(states, s.State)
	}))
	fillValid(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := []State{StateIdle, StateIdle, StateSubmitting, StateResultsShown, StateResultsShown}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Fatalf("unexpected observed states (-want +got):\n%s", diff)
	}
}
