package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// ErrInvalidInput is returned by Parse when any rule fails.
var ErrInvalidInput = errors.New("validation: invalid input")

// Issue describes a single failed rule.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of a form check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// InputError wraps ErrInvalidInput with the issues that caused it.
type InputError struct {
	Issues []Issue
}

func (e *InputError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

type rawForm struct {
	Model          string `json:"model" validate:"required"`
	Year           string `json:"year" validate:"required"`
	Transmission   string `json:"transmission" validate:"required"`
	BodyType       string `json:"body_type" validate:"required"`
	FuelType       string `json:"fuel_type" validate:"required"`
	EngineCapacity string `json:"engine_capacity" validate:"required"`
	Mileage        string `json:"mileage" validate:"required"`
}

type numericForm struct {
	Year    int `json:"year" validate:"gte=2000,notfuture"`
	Mileage int `json:"mileage" validate:"gte=0,lte=500000"`
}

type nowKey struct{}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidationCtx("notfuture", func(ctx context.Context, fl validator.FieldLevel) bool {
			now, ok := ctx.Value(nowKey{}).(time.Time)
			if !ok {
				now = time.Now()
			}
			return fl.Field().Int() <= int64(now.Year())
		})
		validate = v
	})
	return validate
}

// Validate reports whether input passes every rule. It is all-or-nothing:
// callers that need the failing rules use Check.
func Validate(input vehicle.FormInput, now time.Time) bool {
	return Check(input, now).Valid
}

// Check evaluates every rule and collects the failures.
func Check(input vehicle.FormInput, now time.Time) Result {
	_, issues := parse(input, now)
	if len(issues) > 0 {
		return Result{Valid: false, Issues: issues}
	}
	return Result{Valid: true}
}

// Parse converts input into a ValidatedRequest. Failures return an
// *InputError that matches ErrInvalidInput.
func Parse(input vehicle.FormInput, now time.Time) (vehicle.ValidatedRequest, error) {
	req, issues := parse(input, now)
	if len(issues) > 0 {
		return vehicle.ValidatedRequest{}, &InputError{Issues: issues}
	}
	return req, nil
}

func parse(input vehicle.FormInput, now time.Time) (vehicle.ValidatedRequest, []Issue) {
	raw := rawForm{
		Model:          strings.TrimSpace(input.Get(vehicle.FieldModel)),
		Year:           strings.TrimSpace(input.Get(vehicle.FieldYear)),
		Transmission:   strings.TrimSpace(input.Get(vehicle.FieldTransmission)),
		BodyType:       strings.TrimSpace(input.Get(vehicle.FieldBodyType)),
		FuelType:       strings.TrimSpace(input.Get(vehicle.FieldFuelType)),
		EngineCapacity: strings.TrimSpace(input.Get(vehicle.FieldEngineCapacity)),
		Mileage:        StripSeparators(input.Get(vehicle.FieldMileage)),
	}

	ctx := context.WithValue(context.Background(), nowKey{}, now)
	if err := engine().StructCtx(ctx, raw); err != nil {
		return vehicle.ValidatedRequest{}, issuesFromError(err)
	}

	var issues []Issue
	year, err := strconv.Atoi(raw.Year)
	if err != nil {
		issues = append(issues, Issue{Field: vehicle.FieldYear, Message: "must be a whole number"})
	}
	mileage, err := strconv.Atoi(raw.Mileage)
	if err != nil {
		issues = append(issues, Issue{Field: vehicle.FieldMileage, Message: "must be a whole number"})
	}
	if len(issues) > 0 {
		return vehicle.ValidatedRequest{}, issues
	}

	if err := engine().StructCtx(ctx, numericForm{Year: year, Mileage: mileage}); err != nil {
		return vehicle.ValidatedRequest{}, issuesFromError(err)
	}

	return vehicle.ValidatedRequest{
		Model:          raw.Model,
		Year:           year,
		Transmission:   raw.Transmission,
		BodyType:       raw.BodyType,
		FuelType:       raw.FuelType,
		EngineCapacity: raw.EngineCapacity,
		Mileage:        mileage,
	}, nil
}

// StripSeparators removes thousands separators and whitespace. Any other
// rune is kept, so "-1" stays negative and fails the range rule.
func StripSeparators(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

func issuesFromError(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: describe(fe)})
	}
	return issues
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "notfuture":
		return "must not be after the current year"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
