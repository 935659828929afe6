package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-carprice/pkg/render"
)

const (
	maxRemoteBody   = 64 << 10
	maxErrorSummary = 160
)

// Remote scores features by posting them to an external ML service. The
// service answers {"price": <number>}.
type Remote struct {
	endpoint string
	client   *http.Client
	features []string
}

type remoteRequest struct {
	Features Features `json:"features"`
}

type remoteResponse struct {
	Price *float64 `json:"price"`
	Error string   `json:"error,omitempty"`
}

// NewRemote returns a model backed by the service at endpoint. When features
// is empty the full engineered vector is sent.
func NewRemote(endpoint string, timeout time.Duration, features []string) (*Remote, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("estimator: remote endpoint is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		features: append([]string(nil), features...),
	}, nil
}

func (r *Remote) FeatureNames() []string {
	return append([]string(nil), r.features...)
}

func (r *Remote) Predict(ctx context.Context, features Features) (float64, error) {
	if len(features) == 0 {
		return 0, ErrNoFeatures
	}
	payload := features
	if len(r.features) > 0 {
		payload = features.Subset(r.features)
	}

	body, err := json.Marshal(remoteRequest{Features: payload})
	if err != nil {
		return 0, fmt.Errorf("estimator: marshal remote request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("estimator: build remote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("estimator: remote request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return 0, fmt.Errorf("estimator: read remote response: %w", err)
	}

	var decoded remoteResponse
	decodeErr := json.Unmarshal(raw, &decoded)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && decoded.Error != "" {
			return 0, fmt.Errorf("estimator: remote status %d: %s", resp.StatusCode, decoded.Error)
		}
		// Gateways in front of the scorer answer with HTML pages.
		if summary := render.Summary(string(raw), maxErrorSummary); summary != "" && decodeErr != nil {
			return 0, fmt.Errorf("estimator: remote status %d: %s", resp.StatusCode, summary)
		}
		return 0, fmt.Errorf("estimator: remote status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("estimator: decode remote response: %w", decodeErr)
	}
	if decoded.Price == nil {
		return 0, fmt.Errorf("estimator: remote response has no price")
	}
	return *decoded.Price, nil
}
