// Package client talks to the prediction backend over HTTP.
//
// It posts validated form requests to the predict endpoint, reads the model
// capability report, and fetches the dropdown option lists served by the
// catalog component. Requests are made once; the client never retries.
package client
