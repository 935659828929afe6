// Package page renders the prediction form page from a controller snapshot.
package page

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-carprice/pkg/controller"
	"github.com/goliatone/go-carprice/pkg/render"
	"github.com/goliatone/go-carprice/pkg/render/template"
	"github.com/goliatone/go-carprice/pkg/vehicle"
)

//go:embed templates
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// TemplateName is the page template rendered by Renderer.
const TemplateName = "index.tpl"

// Templates returns the embedded page templates rooted at the template dir.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("page: templates: %v", err))
	}
	return sub
}

// Assets returns the embedded static files (stylesheet).
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(fmt.Sprintf("page: assets: %v", err))
	}
	return sub
}

// View is everything the page template needs.
type View struct {
	Title       string
	Action      string
	Snapshot    controller.Snapshot
	Catalog     *vehicle.Catalog
	Now         time.Time
	ModelLoaded bool
}

// Renderer paints a View through a template renderer.
type Renderer struct {
	engine template.TemplateRenderer
	theme  *theme.RendererConfig
}

// NewRenderer builds a page renderer. A nil engine gets one over the
// embedded templates; a nil theme renders unstyled tokens.
func NewRenderer(engine template.TemplateRenderer, cfg *theme.RendererConfig) (*Renderer, error) {
	if engine == nil {
		built, err := template.New(template.WithFS(Templates()))
		if err != nil {
			return nil, fmt.Errorf("page: template engine: %w", err)
		}
		engine = built
	}
	return &Renderer{engine: engine, theme: cfg}, nil
}

// Render writes the page for view to w.
func (r *Renderer) Render(w io.Writer, view View) error {
	if _, err := r.engine.RenderTemplate(r.templateName(), r.context(view), w); err != nil {
		return fmt.Errorf("page: render: %w", err)
	}
	return nil
}

type fieldOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type field struct {
	Name        string        `json:"name"`
	Label       string        `json:"label"`
	Input       string        `json:"input"`
	Placeholder string        `json:"placeholder,omitempty"`
	Value       string        `json:"value"`
	Options     []fieldOption `json:"options,omitempty"`
}

type themeContext struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	Style      string `json:"style"`
	Stylesheet string `json:"stylesheet"`
}

var fieldLabels = map[string]string{
	vehicle.FieldModel:          "Vehicle Model",
	vehicle.FieldYear:           "Year of Manufacture",
	vehicle.FieldTransmission:   "Transmission",
	vehicle.FieldBodyType:       "Body Type",
	vehicle.FieldFuelType:       "Fuel Type",
	vehicle.FieldEngineCapacity: "Engine Capacity",
	vehicle.FieldMileage:        "Mileage (km)",
}

func (r *Renderer) context(view View) map[string]any {
	catalog := view.Catalog
	if catalog == nil {
		catalog = vehicle.DefaultCatalog()
	}
	now := view.Now
	if now.IsZero() {
		now = time.Now()
	}
	title := view.Title
	if title == "" {
		title = "Vehicle Price Predictor"
	}
	action := view.Action
	if action == "" {
		action = "/"
	}

	snap := view.Snapshot
	fields := make([]field, 0, len(vehicle.Fields()))
	for _, name := range vehicle.Fields() {
		f := field{Name: name, Label: fieldLabels[name], Value: snap.Form.Get(name)}
		switch {
		case name == vehicle.FieldYear:
			f.Input = "select"
			f.Options = markSelected(vehicle.YearOptions(now), f.Value)
		case name == vehicle.FieldMileage:
			f.Input = "text"
			f.Placeholder = "e.g. 85,000"
		default:
			kind, _ := vehicle.KindForField(name)
			f.Input = "select"
			f.Options = markSelected(catalog.Options(kind), f.Value)
		}
		fields = append(fields, f)
	}

	return map[string]any{
		"title":        title,
		"action":       action,
		"fields":       fields,
		"page":         snap,
		"model_loaded": view.ModelLoaded,
		"theme":        r.themeContext(),
	}
}

func (r *Renderer) templateName() string {
	if r.theme != nil {
		if name := r.theme.Partials["page"]; name != "" {
			return name
		}
	}
	return TemplateName
}

func (r *Renderer) themeContext() themeContext {
	if r.theme == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    r.theme.Theme,
		Variant: r.theme.Variant,
		Style:   render.CSSVarsStyle(r.theme.CSSVars),
	}
	if r.theme.AssetURL != nil {
		ctx.Stylesheet = r.theme.AssetURL("stylesheet")
	}
	return ctx
}

func markSelected(options []vehicle.Option, value string) []fieldOption {
	out := make([]fieldOption, 0, len(options))
	for _, option := range options {
		out = append(out, fieldOption{
			Value:    option.Value,
			Label:    option.Label,
			Selected: value != "" && option.Value == value,
		})
	}
	return out
}
