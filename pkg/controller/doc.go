// Package controller drives the price-prediction form.
//
// A Controller owns one Page: the form fields, the results region, the error
// region, the submit control with its loading indicator, and the scroll
// target. Front ends feed it events (typing, selection changes, key presses,
// submit, reset, page load) and paint the Snapshot it publishes after every
// change. The controller validates locally, submits through a Predictor and
// renders the outcome into the page; failures never escape as panics.
//
//	ctl := controller.New(apiClient, controller.WithObserver(paint))
//	_ = ctl.Dispatch(ctx, controller.Event{Type: controller.EventLoad})
//	_ = ctl.Dispatch(ctx, controller.Event{Type: controller.EventInput, Field: "mileage", Value: "85,000"})
//	_ = ctl.Dispatch(ctx, controller.Event{Type: controller.EventSubmit})
package controller
