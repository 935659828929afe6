package predict

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-carprice/pkg/estimator"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Failure messages returned in the failure shape.
const (
	MessageModelNotLoaded = "Model not loaded. Please ensure model files are present."
	MessageInvalidYear    = "Please select a valid year of manufacture."
)

var (
	// ErrModelNotLoaded is reported when the service has no estimator.
	ErrModelNotLoaded = errors.New(MessageModelNotLoaded)
	// ErrInvalidYear is reported for years that give no positive vehicle age.
	ErrInvalidYear = errors.New(MessageInvalidYear)
)

// Options configures a Service.
type Options struct {
	Catalog  *vehicle.Catalog
	Clock    func() time.Time
	Logger   *log.Logger
	Currency string
}

// Option mutates Options.
type Option func(*Options)

func newOptions(fns ...Option) Options {
	opts := Options{
		Catalog:  vehicle.DefaultCatalog(),
		Clock:    time.Now,
		Logger:   log.New(io.Discard, "", 0),
		Currency: "Rs. ",
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Catalog == nil {
		opts.Catalog = vehicle.DefaultCatalog()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return opts
}

func WithCatalog(catalog *vehicle.Catalog) Option {
	return func(o *Options) { o.Catalog = catalog }
}

func WithClock(clock func() time.Time) Option {
	return func(o *Options) { o.Clock = clock }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithCurrency sets the prefix written before formatted prices.
func WithCurrency(prefix string) Option {
	return func(o *Options) { o.Currency = prefix }
}

// Service prices vehicles. A nil model leaves the service in the not-loaded
// state, where every prediction fails with MessageModelNotLoaded.
type Service struct {
	model estimator.Model
	opts  Options
}

// NewService returns a service scoring with model.
func NewService(model estimator.Model, fns ...Option) *Service {
	return &Service{model: model, opts: newOptions(fns...)}
}

// Loaded reports whether a model is available.
func (s *Service) Loaded() bool {
	return s != nil && s.model != nil
}

// Catalog returns the option catalog used for labels.
func (s *Service) Catalog() *vehicle.Catalog {
	return s.opts.Catalog
}

// ModelInfo reports model availability and the accepted option values.
func (s *Service) ModelInfo() vehicle.ModelInfo {
	catalog := s.opts.Catalog
	return vehicle.ModelInfo{
		ModelLoaded:               s.Loaded(),
		ModelsAvailable:           catalog.Values(vehicle.KindModel),
		TransmissionsAvailable:    catalog.Values(vehicle.KindTransmission),
		BodyTypesAvailable:        catalog.Values(vehicle.KindBodyType),
		FuelTypesAvailable:        catalog.Values(vehicle.KindFuelType),
		EngineCapacitiesAvailable: catalog.Values(vehicle.KindEngineCapacity),
	}
}

// Predict prices req. Every failure is reported in the result's failure
// shape; the result is never partially filled.
func (s *Service) Predict(ctx context.Context, req PredictRequest) vehicle.PredictionResult {
	if !s.Loaded() {
		return vehicle.Failed(MessageModelNotLoaded)
	}

	in, err := req.normalize()
	if err != nil {
		return vehicle.Failed(err.Error())
	}

	age := s.opts.Clock().Year() - in.year
	if age <= 0 {
		return vehicle.Failed(MessageInvalidYear)
	}
	perYear := in.mileage / float64(age)

	features := buildFeatures(in, age, perYear)
	price, err := s.model.Predict(ctx, features)
	if err != nil {
		s.opts.Logger.Printf("predict: estimator failed: %v", err)
		return vehicle.Failed(err.Error())
	}

	catalog := s.opts.Catalog
	return vehicle.Succeeded(s.formatPrice(price), vehicle.Details{
		Model:          catalog.Label(vehicle.KindModel, in.model),
		Year:           strconv.Itoa(in.year),
		Transmission:   catalog.Label(vehicle.KindTransmission, in.transmission),
		BodyType:       catalog.Label(vehicle.KindBodyType, in.bodyType),
		FuelType:       catalog.Label(vehicle.KindFuelType, in.fuelType),
		EngineCapacity: in.engineCapacity + "cc",
		Mileage:        grouped(in.mileage) + " km",
		VehicleAge:     strconv.Itoa(age) + " years",
		MileagePerYear: grouped(perYear) + " km/year",
	})
}

// buildFeatures lays out the numeric and one-hot columns for one vehicle.
func buildFeatures(in normalized, age int, mileagePerYear float64) estimator.Features {
	features := estimator.Features{
		"year_of_manufacture": float64(in.year),
		"engine_capacity":     in.engineCC,
		"mileage":             in.mileage,
		"vehicle_age":         float64(age),
		"mileage_per_year":    mileagePerYear,
	}
	features.SetOneHot("model", in.model)
	features.SetOneHot("transmission", in.transmission)
	features.SetOneHot("body_type", in.bodyType)
	features.SetOneHot("fuel_type", in.fuelType)
	return features
}

func (s *Service) formatPrice(price float64) string {
	return s.opts.Currency + grouped(price)
}

// grouped rounds to a whole number and inserts thousands separators.
func grouped(value float64) string {
	return humanize.Comma(int64(math.Round(value)))
}
