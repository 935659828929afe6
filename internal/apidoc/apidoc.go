// Package apidoc serves the HTTP API description and checks request bodies
// against it.
package apidoc

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// PredictPath is the route whose request body ValidatePredictBody checks.
const PredictPath = "/predict"

// ErrInvalidBody marks a request body that does not match its schema.
var ErrInvalidBody = errors.New("apidoc: request body does not match schema")

// Document is a loaded and validated API description.
type Document struct {
	spec          *openapi3.T
	predictSchema *openapi3.Schema
}

// Raw returns the embedded YAML source.
func Raw() []byte {
	return bytes.Clone(document)
}

// Load parses and validates the embedded description.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, document)
}

// LoadFromData parses and validates data as an OpenAPI 3 document that
// declares a JSON body for POST /predict.
func LoadFromData(ctx context.Context, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("apidoc: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apidoc: validate document: %w", err)
	}

	schema, err := requestSchema(spec, PredictPath)
	if err != nil {
		return nil, err
	}
	return &Document{spec: spec, predictSchema: schema}, nil
}

func requestSchema(spec *openapi3.T, path string) (*openapi3.Schema, error) {
	if spec.Paths == nil {
		return nil, errors.New("apidoc: document does not contain any paths")
	}
	item := spec.Paths.Value(path)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("apidoc: POST %s is not described", path)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("apidoc: POST %s has no request body", path)
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("apidoc: POST %s has no JSON schema", path)
	}
	return media.Schema.Value, nil
}

// JSON renders the description as JSON.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.Marshal(d.spec)
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode document: %w", err)
	}
	return data, nil
}

// Title returns the API title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operations lists "METHOD path" for every described operation, sorted.
func (d *Document) Operations() []string {
	var ops []string
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method := range item.Operations() {
			ops = append(ops, method+" "+path)
		}
	}
	sort.Strings(ops)
	return ops
}

// ValidatePredictBody checks a raw JSON body against the predict request
// schema. Errors wrap ErrInvalidBody.
func (d *Document) ValidatePredictBody(body []byte) error {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := d.predictSchema.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
