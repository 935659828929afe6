package vehicle

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Form field names, in display order.
const (
	FieldModel          = "model"
	FieldYear           = "year"
	FieldTransmission   = "transmission"
	FieldBodyType       = "body_type"
	FieldFuelType       = "fuel_type"
	FieldEngineCapacity = "engine_capacity"
	FieldMileage        = "mileage"
)

// Range limits applied to submitted values.
const (
	MinYear    = 2000
	MinMileage = 0
	MaxMileage = 500000
)

var fieldOrder = []string{
	FieldModel,
	FieldYear,
	FieldTransmission,
	FieldBodyType,
	FieldFuelType,
	FieldEngineCapacity,
	FieldMileage,
}

// Fields returns the form field names in display order.
func Fields() []string {
	return append([]string(nil), fieldOrder...)
}

// IsField reports whether name is one of the form fields.
func IsField(name string) bool {
	for _, field := range fieldOrder {
		if field == name {
			return true
		}
	}
	return false
}

// FormInput holds the raw user-entered value of every field.
type FormInput map[string]string

// NewFormInput returns an input with every field present and empty.
func NewFormInput() FormInput {
	input := make(FormInput, len(fieldOrder))
	for _, field := range fieldOrder {
		input[field] = ""
	}
	return input
}

// Get returns the raw value for name.
func (in FormInput) Get(name string) string {
	if in == nil {
		return ""
	}
	return in[name]
}

// Set stores value under name.
func (in FormInput) Set(name, value string) {
	in[name] = value
}

// Filled reports whether every form field carries a non-blank value.
func (in FormInput) Filled() bool {
	for _, field := range fieldOrder {
		if strings.TrimSpace(in.Get(field)) == "" {
			return false
		}
	}
	return true
}

// Clone returns a copy of the input.
func (in FormInput) Clone() FormInput {
	if in == nil {
		return nil
	}
	out := make(FormInput, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// ValidatedRequest is a FormInput that passed validation. Numeric fields travel
// as JSON strings, matching what the page form posts.
type ValidatedRequest struct {
	Model          string `json:"model"`
	Year           int    `json:"year,string"`
	Transmission   string `json:"transmission"`
	BodyType       string `json:"body_type"`
	FuelType       string `json:"fuel_type"`
	EngineCapacity string `json:"engine_capacity"`
	Mileage        int    `json:"mileage,string"`
}

// Details carries the server-formatted description of the priced vehicle.
type Details struct {
	Model          string `json:"model"`
	Year           string `json:"year"`
	Transmission   string `json:"transmission"`
	BodyType       string `json:"body_type"`
	FuelType       string `json:"fuel_type"`
	EngineCapacity string `json:"engine_capacity"`
	Mileage        string `json:"mileage"`
	VehicleAge     string `json:"vehicle_age"`
	MileagePerYear string `json:"mileage_per_year"`
}

// UnmarshalJSON accepts a numeric year as well as a string one.
func (d *Details) UnmarshalJSON(data []byte) error {
	type plain Details
	aux := struct {
		*plain
		Year json.RawMessage `json:"year"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Year = rawText(aux.Year)
	return nil
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// PredictionResult is the backend response: either the success shape with a
// price and details, or the failure shape with an error message.
type PredictionResult struct {
	Success        bool     `json:"success"`
	PredictedPrice string   `json:"predicted_price,omitempty"`
	Details        *Details `json:"details,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Succeeded builds a success result.
func Succeeded(price string, details Details) PredictionResult {
	return PredictionResult{
		Success:        true,
		PredictedPrice: price,
		Details:        &details,
	}
}

// Failed builds a failure result.
func Failed(message string) PredictionResult {
	return PredictionResult{Error: message}
}

// ModelInfo answers the startup capability check.
type ModelInfo struct {
	ModelLoaded               bool     `json:"model_loaded"`
	ModelsAvailable           []string `json:"models_available,omitempty"`
	TransmissionsAvailable    []string `json:"transmissions_available,omitempty"`
	BodyTypesAvailable        []string `json:"body_types_available,omitempty"`
	FuelTypesAvailable        []string `json:"fuel_types_available,omitempty"`
	EngineCapacitiesAvailable []string `json:"engine_capacities_available,omitempty"`
}
