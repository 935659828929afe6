package estimator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Artifact is the on-disk form of a linear model.
//
//	name: toyota-lr
//	version: "2024.1"
//	intercept: 1250000
//	features: [year_of_manufacture, mileage, model_aqua]
//	coefficients:
//	  year_of_manufacture: 1000
//	  mileage: -2.5
//	  model_aqua: 350000
type Artifact struct {
	Name         string             `yaml:"name"`
	Version      string             `yaml:"version"`
	Intercept    float64            `yaml:"intercept"`
	Features     []string           `yaml:"features"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

// DecodeArtifact reads a YAML artifact. Unknown keys are rejected.
func DecodeArtifact(r io.Reader) (Artifact, error) {
	var artifact Artifact
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&artifact); err != nil {
		if errors.Is(err, io.EOF) {
			return Artifact{}, fmt.Errorf("estimator: artifact is empty")
		}
		return Artifact{}, fmt.Errorf("estimator: decode artifact: %w", err)
	}
	return artifact, nil
}

// Model builds the linear model described by the artifact.
func (a Artifact) Model() (*Linear, error) {
	name := a.Name
	if name == "" {
		name = "linear"
	}
	return NewLinear(name, a.Intercept, a.Features, a.Coefficients)
}

// LoadArtifact reads a linear model from src.
func LoadArtifact(ctx context.Context, src Source) (*Linear, error) {
	if src == nil {
		return nil, fmt.Errorf("estimator: artifact source is required")
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimator: open %s: %w", src, err)
	}
	defer rc.Close()

	artifact, err := DecodeArtifact(rc)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, src)
	}
	return artifact.Model()
}
