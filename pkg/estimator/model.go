package estimator

import (
	"context"
	"errors"
)

// ErrNoFeatures is returned when a model is asked to score an empty vector.
var ErrNoFeatures = errors.New("estimator: no features")

// Model turns a feature vector into a price.
type Model interface {
	Predict(ctx context.Context, features Features) (float64, error)
	// FeatureNames lists the columns the model was trained on, in order.
	FeatureNames() []string
}
