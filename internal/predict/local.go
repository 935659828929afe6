package predict

import (
	"context"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// LocalPredictor lets a form controller call the service in-process.
type LocalPredictor struct {
	Service *Service
}

func (p LocalPredictor) Predict(ctx context.Context, req vehicle.ValidatedRequest) (vehicle.PredictionResult, error) {
	return p.Service.Predict(ctx, RequestFrom(req)), nil
}

func (p LocalPredictor) ModelInfo(context.Context) (vehicle.ModelInfo, error) {
	return p.Service.ModelInfo(), nil
}
