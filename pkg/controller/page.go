package controller

import (
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// State is the coarse phase of the page.
type State string

const (
	StateIdle         State = "idle"
	StateSubmitting   State = "submitting"
	StateResultsShown State = "results"
	StateErrorShown   State = "error"
)

// ScrollTarget names the region the page should bring into view.
type ScrollTarget string

const (
	ScrollNone    ScrollTarget = ""
	ScrollResults ScrollTarget = "results"
	ScrollError   ScrollTarget = "error"
	ScrollTop     ScrollTarget = "top"
)

// ResultsRegion is the block showing a successful prediction.
type ResultsRegion struct {
	Visible bool                `json:"visible"`
	Price   string              `json:"price"`
	Rows    []vehicle.DetailRow `json:"rows"`
}

// ErrorRegion is the block showing a failure message.
type ErrorRegion struct {
	Visible bool   `json:"visible"`
	Message string `json:"message"`
}

// SubmitControl is the submit button with its text/loader pair.
type SubmitControl struct {
	Disabled      bool   `json:"disabled"`
	Title         string `json:"title,omitempty"`
	TextVisible   bool   `json:"text_visible"`
	LoaderVisible bool   `json:"loader_visible"`
}

// Snapshot is a copy of the page at one point in time.
type Snapshot struct {
	State   State             `json:"state"`
	Form    vehicle.FormInput `json:"form"`
	Results ResultsRegion     `json:"results"`
	Error   ErrorRegion       `json:"error"`
	Submit  SubmitControl     `json:"submit"`
	Scroll  ScrollTarget      `json:"scroll"`
	// Locked is set once the capability check finds no usable model.
	Locked bool `json:"locked"`
}

type page struct {
	state   State
	form    vehicle.FormInput
	results ResultsRegion
	err     ErrorRegion
	submit  SubmitControl
	scroll  ScrollTarget
	locked  bool
}

func newPage() page {
	return page{
		state:  StateIdle,
		form:   vehicle.NewFormInput(),
		submit: SubmitControl{TextVisible: true},
	}
}

func (p *page) snapshot() Snapshot {
	snap := Snapshot{
		State:   p.state,
		Form:    p.form.Clone(),
		Results: p.results,
		Error:   p.err,
		Submit:  p.submit,
		Scroll:  p.scroll,
		Locked:  p.locked,
	}
	if p.results.Rows != nil {
		snap.Results.Rows = append([]vehicle.DetailRow(nil), p.results.Rows...)
	}
	return snap
}

func (p *page) hideRegions() {
	p.results.Visible = false
	p.err.Visible = false
}

func (p *page) beginLoading() {
	p.state = StateSubmitting
	p.submit.Disabled = true
	p.submit.TextVisible = false
	p.submit.LoaderVisible = true
}

// endLoading restores the control. A locked control stays disabled.
func (p *page) endLoading() {
	p.submit.Disabled = p.locked
	p.submit.TextVisible = true
	p.submit.LoaderVisible = false
}
