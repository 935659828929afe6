package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in page theme.
const DefaultThemeName = "carprice"

// DefaultManifest returns the built-in page theme with a light default and a
// dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":      "#1f6feb",
			"surface":    "#ffffff",
			"text":       "#1b1f24",
			"muted":      "#57606a",
			"error":      "#cf222e",
			"success":    "#1a7f37",
			"radius":     "8px",
			"font-stack": "system-ui, -apple-system, 'Segoe UI', sans-serif",
		},
		Templates: map[string]string{
			"page":    "index.tpl",
			"results": "partials/results.tpl",
			"error":   "partials/error.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				"stylesheet": "carprice.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#0d1117",
					"text":    "#e6edf3",
					"muted":   "#8b949e",
				},
			},
		},
	}
}

// ThemeSelector resolves a theme and variant from registered manifests.
type ThemeSelector struct {
	provider       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers manifests. The first one becomes the default.
func NewThemeSelector(defaultVariant string, manifests ...*theme.Manifest) (*ThemeSelector, error) {
	if len(manifests) == 0 {
		return nil, fmt.Errorf("render: at least one theme manifest is required")
	}
	registry := theme.NewRegistry()
	selector := &ThemeSelector{
		provider:       registry,
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil {
			return nil, fmt.Errorf("render: theme manifest is nil")
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		selector.manifests[manifest.Name] = manifest
		if selector.defaultTheme == "" {
			selector.defaultTheme = manifest.Name
		}
	}
	return selector, nil
}

// Provider exposes the underlying go-theme registry.
func (s *ThemeSelector) Provider() theme.ThemeProvider {
	return s.provider
}

// Select picks a manifest and variant, falling back to the defaults for
// blank arguments. An unknown variant is an error.
func (s *ThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, and every token is exposed as a CSS
// custom property.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join("/", prefix, file)
		},
	}
}

// CSSVarsStyle renders CSS custom properties as a sorted declaration list
// suitable for a style attribute.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
