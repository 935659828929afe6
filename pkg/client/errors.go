package client

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponse marks a response the client could not interpret.
var ErrUnexpectedResponse = errors.New("client: unexpected response")

// RequestError reports a failed exchange with the backend: the request never
// completed, the status was not successful, or the body was not the expected
// JSON.
type RequestError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "client: " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsRequestError reports whether err is, or wraps, a *RequestError.
func IsRequestError(err error) bool {
	var target *RequestError
	return errors.As(err, &target)
}
