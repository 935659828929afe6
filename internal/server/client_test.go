package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-carprice/internal/predict"
	"github.com/goliatone/go-carprice/pkg/client"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

func newClientForServer(t *testing.T, srv *Server) *client.Client {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	c, err := client.New(ts.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, fixedModel{price: 4567890})
	c := newClientForServer(t, srv)
	ctx := context.Background()

	info, err := c.ModelInfo(ctx)
	if err != nil {
		t.Fatalf("model info: %v", err)
	}
	if diff := cmp.Diff(srv.service.ModelInfo(), info); diff != "" {
		t.Fatalf("model info mismatch (-want +got):\n%s", diff)
	}

	result, err := c.Predict(ctx, vehicle.ValidatedRequest{
		Model:          "aqua",
		Year:           2015,
		Transmission:   "automatic",
		BodyType:       "station_wagon",
		FuelType:       "hybrid",
		EngineCapacity: "1500",
		Mileage:        85000,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !result.Success || result.PredictedPrice != "Rs. 4,567,890" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.Details == nil || result.Details.MileagePerYear != "8,500 km/year" {
		t.Fatalf("unexpected details: %#v", result.Details)
	}

	options, err := c.Options(ctx, vehicle.KindFuelType)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if diff := cmp.Diff(srv.service.Catalog().Options(vehicle.KindFuelType), options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestClientRoundTripReportsMissingModel(t *testing.T) {
	srv := newTestServer(t, nil)
	c := newClientForServer(t, srv)

	result, err := c.Predict(context.Background(), vehicle.ValidatedRequest{
		Model:          "aqua",
		Year:           2015,
		Transmission:   "automatic",
		BodyType:       "station_wagon",
		FuelType:       "hybrid",
		EngineCapacity: "1500",
		Mileage:        85000,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if diff := cmp.Diff(vehicle.Failed(predict.MessageModelNotLoaded), result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}
