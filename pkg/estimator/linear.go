package estimator

import (
	"context"
	"fmt"
	"math"
)

// Linear is an intercept plus one coefficient per named feature.
type Linear struct {
	name         string
	intercept    float64
	features     []string
	coefficients []float64
}

// NewLinear builds a linear model over features. Every feature needs a
// coefficient.
func NewLinear(name string, intercept float64, features []string, coefficients map[string]float64) (*Linear, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("estimator: linear model %q has no features", name)
	}
	seen := make(map[string]struct{}, len(features))
	weights := make([]float64, len(features))
	for i, feature := range features {
		if feature == "" {
			return nil, fmt.Errorf("estimator: linear model %q has an empty feature name", name)
		}
		if _, dup := seen[feature]; dup {
			return nil, fmt.Errorf("estimator: linear model %q lists feature %q twice", name, feature)
		}
		seen[feature] = struct{}{}

		weight, ok := coefficients[feature]
		if !ok {
			return nil, fmt.Errorf("estimator: linear model %q has no coefficient for %q", name, feature)
		}
		weights[i] = weight
	}
	return &Linear{
		name:         name,
		intercept:    intercept,
		features:     append([]string(nil), features...),
		coefficients: weights,
	}, nil
}

// Name returns the artifact name.
func (l *Linear) Name() string { return l.name }

func (l *Linear) FeatureNames() []string {
	return append([]string(nil), l.features...)
}

func (l *Linear) Predict(ctx context.Context, features Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(features) == 0 {
		return 0, ErrNoFeatures
	}
	total := l.intercept
	for i, value := range features.Align(l.features) {
		total += l.coefficients[i] * value
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("estimator: linear model %q produced a non-finite price", l.name)
	}
	return total, nil
}
