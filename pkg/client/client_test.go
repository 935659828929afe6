package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

func sampleRequest() vehicle.ValidatedRequest {
	return vehicle.ValidatedRequest{
		Model:          "aqua",
		Year:           2015,
		Transmission:   "automatic",
		BodyType:       "hatchback",
		FuelType:       "hybrid",
		EngineCapacity: "1500",
		Mileage:        85000,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestPredict_PostsStringEncodedJSON(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"predicted_price":"$12,345","details":{"model":"Toyota Aqua","year":2015}}`)
	})

	result, err := c.Predict(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	wantBody := map[string]any{
		"model":           "aqua",
		"year":            "2015",
		"transmission":    "automatic",
		"body_type":       "hatchback",
		"fuel_type":       "hybrid",
		"engine_capacity": "1500",
		"mileage":         "85000",
	}
	if diff := cmp.Diff(wantBody, got); diff != "" {
		t.Fatalf("unexpected request body (-want +got):\n%s", diff)
	}
	if !result.Success || result.PredictedPrice != "$12,345" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.Details == nil || result.Details.Year != "2015" || result.Details.Model != "Toyota Aqua" {
		t.Fatalf("unexpected details: %#v", result.Details)
	}
}

func TestPredict_FailureBodyIsResultWhateverTheStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"success":false,"error":"Model unavailable"}`)
		})

		result, err := c.Predict(context.Background(), sampleRequest())
		if err != nil {
			t.Fatalf("status %d: expected no error, got %v", status, err)
		}
		if diff := cmp.Diff(vehicle.Failed("Model unavailable"), result); diff != "" {
			t.Fatalf("status %d: unexpected result (-want +got):\n%s", status, diff)
		}
	}
}

func TestPredict_NonJSONIsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := c.Predict(context.Background(), sampleRequest())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T (%v)", err, err)
	}
	if reqErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", reqErr.StatusCode)
	}
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestPredict_ErrorStatusWithoutFailureShapeIsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"boom"}`)
	})

	_, err := c.Predict(context.Background(), sampleRequest())
	if !IsRequestError(err) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestPredict_TransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.Predict(context.Background(), sampleRequest())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T (%v)", err, err)
	}
	if reqErr.StatusCode != 0 || reqErr.Op != "predict" {
		t.Fatalf("unexpected request error: %#v", reqErr)
	}
}

func TestModelInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/model-info" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"model_loaded":false,"models_available":["aqua"]}`)
	})

	info, err := c.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("model info: %v", err)
	}
	want := vehicle.ModelInfo{ModelLoaded: false, ModelsAvailable: []string{"aqua"}}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}

func TestModelInfo_StatusErrorIsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	})

	if _, err := c.ModelInfo(context.Background()); !IsRequestError(err) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestOptions_ReadsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/options/fuel_types" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"data":[{"value":"petrol","label":"Petrol"}]}`)
	})

	opts, err := c.Options(context.Background(), vehicle.KindFuelType)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	want := []vehicle.Option{{Value: "petrol", Label: "Petrol"}}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptions_UnknownKind(t *testing.T) {
	c, err := New("http://example.test")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Options(context.Background(), vehicle.Kind("colours")); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "  ", "ftp://example.test", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNew_KeepsBasePathPrefix(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, `{"model_loaded":true}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/carprice/", WithModelInfoPath("capabilities"), WithHeader("X-Client", "test"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.ModelInfo(context.Background()); err != nil {
		t.Fatalf("model info: %v", err)
	}
	if path != "/carprice/capabilities" {
		t.Fatalf("expected /carprice/capabilities, got %s", path)
	}
}
