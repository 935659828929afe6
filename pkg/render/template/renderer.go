package template

import (
	"io"
)

// TemplateRenderer is the seam page views render through.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
