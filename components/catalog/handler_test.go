package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

type handlerResponse struct {
	Data []vehicle.Option `json:"data"`
}

func decodeOptions(t *testing.T, rec *httptest.ResponseRecorder) []vehicle.Option {
	t.Helper()
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload.Data
}

func TestHandler_ListsWholeKindOnEmptyQuery(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/options/fuel_types", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	want := []vehicle.Option{
		{Value: "hybrid", Label: "Hybrid"},
		{Value: "petrol", Label: "Petrol"},
		{Value: "diesel", Label: "Diesel"},
	}
	if diff := cmp.Diff(want, decodeOptions(t, rec)); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestHandler_NegativeLimitReturnsEmptyArray(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options/models?limit=-1", nil))

	data := decodeOptions(t, rec)
	if data == nil || len(data) != 0 {
		t.Fatalf("expected empty data array, got %#v", data)
	}
}

func TestHandler_SearchMatchesLabelsPrefixFirstAndHonoursLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options/body_types?q=s&limit=2", nil))

	want := []vehicle.Option{
		{Value: "saloon", Label: "Saloon"},
		{Value: "suv/4x4", Label: "SUV/4x4"},
	}
	if diff := cmp.Diff(want, decodeOptions(t, rec)); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestHandler_UnknownKindIsNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options/colours", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_RejectsOtherMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/options/models", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/api/options/models", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}

func TestHandler_CustomCatalog(t *testing.T) {
	custom := vehicle.NewCatalog(map[vehicle.Kind][]vehicle.Option{
		vehicle.KindModel: {{Value: "civic", Label: "Honda Civic"}},
	})
	rec := httptest.NewRecorder()
	NewHandler(WithCatalog(custom)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options/models?q=honda", nil))

	want := []vehicle.Option{{Value: "civic", Label: "Honda Civic"}}
	if diff := cmp.Diff(want, decodeOptions(t, rec)); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}
