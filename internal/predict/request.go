package predict

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// PredictRequest is the body accepted by the predict endpoint. Year and
// mileage may arrive as JSON strings or numbers.
type PredictRequest struct {
	Model          string      `json:"model"`
	Year           json.Number `json:"year"`
	Transmission   string      `json:"transmission"`
	BodyType       string      `json:"body_type"`
	FuelType       string      `json:"fuel_type"`
	EngineCapacity flexString  `json:"engine_capacity"`
	Mileage        json.Number `json:"mileage"`
}

// RequestFrom converts a validated form request into a PredictRequest.
func RequestFrom(req vehicle.ValidatedRequest) PredictRequest {
	return PredictRequest{
		Model:          req.Model,
		Year:           json.Number(strconv.Itoa(req.Year)),
		Transmission:   req.Transmission,
		BodyType:       req.BodyType,
		FuelType:       req.FuelType,
		EngineCapacity: flexString(req.EngineCapacity),
		Mileage:        json.Number(strconv.Itoa(req.Mileage)),
	}
}

type normalized struct {
	model          string
	year           int
	transmission   string
	bodyType       string
	fuelType       string
	engineCapacity string
	engineCC       float64
	mileage        float64
}

func (r PredictRequest) normalize() (normalized, error) {
	out := normalized{
		model:          strings.TrimSpace(r.Model),
		transmission:   strings.TrimSpace(r.Transmission),
		bodyType:       strings.TrimSpace(r.BodyType),
		fuelType:       strings.TrimSpace(r.FuelType),
		engineCapacity: strings.TrimSpace(string(r.EngineCapacity)),
	}
	required := []struct{ name, value string }{
		{vehicle.FieldModel, out.model},
		{vehicle.FieldTransmission, out.transmission},
		{vehicle.FieldBodyType, out.bodyType},
		{vehicle.FieldFuelType, out.fuelType},
		{vehicle.FieldEngineCapacity, out.engineCapacity},
	}
	for _, field := range required {
		if field.value == "" {
			return normalized{}, fmt.Errorf("missing %s", field.name)
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.Year.String()))
	if err != nil {
		return normalized{}, ErrInvalidYear
	}
	out.year = year

	cc, err := strconv.ParseFloat(out.engineCapacity, 64)
	if err != nil {
		return normalized{}, fmt.Errorf("invalid engine capacity %q", out.engineCapacity)
	}
	out.engineCC = cc

	mileage, err := r.Mileage.Float64()
	if err != nil {
		return normalized{}, fmt.Errorf("invalid mileage %q", r.Mileage.String())
	}
	if mileage < 0 {
		return normalized{}, fmt.Errorf("mileage must not be negative")
	}
	out.mileage = mileage
	return out, nil
}

// flexString decodes from a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("predict: expected string or number, got %s", trimmed)
	}
	*f = flexString(n.String())
	return nil
}
