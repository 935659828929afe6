package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when a select prompt has nothing to offer.
	ErrNoOptions = errors.New("tui: no options to select from")
	// ErrUnavailable is returned when the server reports no loaded model.
	ErrUnavailable = errors.New("tui: prediction unavailable")
)
