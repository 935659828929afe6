package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Client is a prediction backend client. It is safe for concurrent use.
type Client struct {
	base *url.URL
	opts Options
}

// New returns a client for the backend rooted at baseURL.
func New(baseURL string, fns ...OptionFn) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("client: missing base URL")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported scheme %q", base.Scheme)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	return &Client{base: base, opts: NewOptions(fns...)}, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type predictEnvelope struct {
	Success        *bool            `json:"success"`
	PredictedPrice string           `json:"predicted_price"`
	Details        *vehicle.Details `json:"details"`
	Error          string           `json:"error"`
}

// Predict submits req and returns the backend verdict. A body reporting
// success:false is returned as a result, whatever the status code; every
// other failure is a *RequestError.
func (c *Client) Predict(ctx context.Context, req vehicle.ValidatedRequest) (vehicle.PredictionResult, error) {
	const op = "predict"

	payload, err := json.Marshal(req)
	if err != nil {
		return vehicle.PredictionResult{}, fmt.Errorf("client: encode request: %w", err)
	}

	status, body, endpoint, err := c.do(ctx, http.MethodPost, c.opts.PredictPath, bytes.NewReader(payload))
	if err != nil {
		return vehicle.PredictionResult{}, &RequestError{Op: op, URL: endpoint, Err: err}
	}

	var envelope predictEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return vehicle.PredictionResult{}, &RequestError{Op: op, URL: endpoint, StatusCode: nonOK(status), Err: fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)}
	}

	switch {
	case envelope.Success != nil && !*envelope.Success:
		return vehicle.Failed(envelope.Error), nil
	case !isOK(status):
		return vehicle.PredictionResult{}, &RequestError{Op: op, URL: endpoint, StatusCode: status, Err: ErrUnexpectedResponse}
	case envelope.Success == nil:
		return vehicle.Failed(envelope.Error), nil
	}

	return vehicle.PredictionResult{
		Success:        true,
		PredictedPrice: envelope.PredictedPrice,
		Details:        envelope.Details,
	}, nil
}

// ModelInfo reads the capability report.
func (c *Client) ModelInfo(ctx context.Context) (vehicle.ModelInfo, error) {
	const op = "model info"

	var info vehicle.ModelInfo
	if err := c.getJSON(ctx, op, c.opts.ModelInfoPath, &info); err != nil {
		return vehicle.ModelInfo{}, err
	}
	return info, nil
}

type optionsEnvelope struct {
	Data []vehicle.Option `json:"data"`
}

// Options fetches the option list for kind from the catalog endpoint.
func (c *Client) Options(ctx context.Context, kind vehicle.Kind) ([]vehicle.Option, error) {
	const op = "options"

	if _, ok := vehicle.ParseKind(string(kind)); !ok {
		return nil, fmt.Errorf("client: unknown option kind %q", kind)
	}
	var envelope optionsEnvelope
	route := strings.TrimRight(c.opts.OptionsPath, "/") + "/" + string(kind)
	if err := c.getJSON(ctx, op, route, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []vehicle.Option{}, nil
	}
	return envelope.Data, nil
}

func (c *Client) getJSON(ctx context.Context, op, route string, dst any) error {
	status, body, endpoint, err := c.do(ctx, http.MethodGet, route, nil)
	if err != nil {
		return &RequestError{Op: op, URL: endpoint, Err: err}
	}
	if !isOK(status) {
		return &RequestError{Op: op, URL: endpoint, StatusCode: status, Err: ErrUnexpectedResponse}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &RequestError{Op: op, URL: endpoint, Err: fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, route string, body io.Reader) (int, []byte, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.resolve(route)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, endpoint, err
	}
	for key, values := range c.opts.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, endpoint, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, endpoint, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, data, endpoint, nil
}

func (c *Client) resolve(route string) string {
	u := *c.base
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	u.Path = c.base.Path + route
	u.RawPath = ""
	return u.String()
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}

func nonOK(status int) int {
	if isOK(status) {
		return 0
	}
	return status
}
