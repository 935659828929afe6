package vehicle

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDetailRows_FixedOrder(t *testing.T) {
	rows := DetailRows(Details{
		Model:          "Toyota Aqua",
		Year:           "2018",
		Transmission:   "Automatic",
		BodyType:       "Hatchback",
		FuelType:       "Hybrid",
		EngineCapacity: "1500cc",
		Mileage:        "85,000 km",
		VehicleAge:     "8 years",
		MileagePerYear: "10,625 km/year",
	})

	want := []string{"Model", "Year", "Transmission", "Body Type", "Fuel Type", "Engine", "Mileage", "Vehicle Age", "Avg Yearly Usage"}
	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.Label)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row labels mismatch (-want +got):\n%s", diff)
	}
	if rows[5].Value != "1500cc" {
		t.Fatalf("expected engine row value 1500cc, got %q", rows[5].Value)
	}
}

func TestDetails_UnmarshalNumericYear(t *testing.T) {
	var d Details
	if err := json.Unmarshal([]byte(`{"model":"Toyota Vitz","year":2015,"mileage":"1 km"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year != "2015" || d.Model != "Toyota Vitz" || d.Mileage != "1 km" {
		t.Fatalf("unexpected details: %#v", d)
	}

	if err := json.Unmarshal([]byte(`{"year":"2016"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year != "2016" {
		t.Fatalf("expected string year, got %q", d.Year)
	}
}

func TestValidatedRequest_MarshalsNumbersAsStrings(t *testing.T) {
	raw, err := json.Marshal(ValidatedRequest{Model: "aqua", Year: 2018, Mileage: 120000})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["year"] != "2018" || payload["mileage"] != "120000" {
		t.Fatalf("expected string-typed numbers, got %#v", payload)
	}
}

func TestCatalog_LabelFallsBackToValue(t *testing.T) {
	c := DefaultCatalog()
	if got := c.Label(KindModel, "aqua"); got != "Toyota Aqua" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := c.Label(KindModel, "supra"); got != "supra" {
		t.Fatalf("expected raw value fallback, got %q", got)
	}
	if got := len(c.Values(KindModel)); got != 18 {
		t.Fatalf("expected 18 models, got %d", got)
	}
	if got := c.Label(KindEngineCapacity, "660"); got != "660cc" {
		t.Fatalf("unexpected engine label: %q", got)
	}
}

func TestYears_NewestFirstDownToMinimum(t *testing.T) {
	years := Years(time.Date(2003, 6, 1, 0, 0, 0, 0, time.UTC))
	if diff := cmp.Diff([]int{2003, 2002, 2001, 2000}, years); diff != "" {
		t.Fatalf("years mismatch (-want +got):\n%s", diff)
	}
}

func TestFormInput_Filled(t *testing.T) {
	in := NewFormInput()
	if in.Filled() {
		t.Fatalf("expected empty input to be unfilled")
	}
	for _, field := range Fields() {
		in[field] = "x"
	}
	if !in.Filled() {
		t.Fatalf("expected filled input")
	}
	in[FieldMileage] = "   "
	if in.Filled() {
		t.Fatalf("expected blank mileage to count as empty")
	}
}
