package controller

import "errors"

var (
	// ErrValidation is returned by Submit when the form fails local checks.
	ErrValidation = errors.New("controller: form input is invalid")
	// ErrSubmitInProgress is returned when a submission is already running.
	ErrSubmitInProgress = errors.New("controller: submission already in progress")
	// ErrSubmitDisabled is returned when the backend reported no usable model.
	ErrSubmitDisabled = errors.New("controller: submit is disabled")
	// ErrMalformedResult marks a success response without details.
	ErrMalformedResult = errors.New("controller: prediction result has no details")
	// ErrNoHandler is returned by Dispatch for unregistered event types.
	ErrNoHandler = errors.New("controller: no handler registered")
)

// User-facing messages written into the page.
const (
	MessageInvalidInput     = "Please fill in all fields correctly."
	MessagePredictionFailed = "An error occurred during prediction."
	MessageNetworkError     = "Network error. Please check your connection and try again."
	MessageModelNotLoaded   = "Model not loaded. Please check server configuration."
)
