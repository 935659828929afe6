package catalog

import "fmt"

// Component is the options handler bound to its configuration.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: newOptions(fns...)}
}

// RegisterRoutes mounts the handler under basePath on mux and returns the
// subtree pattern, e.g. "/api/options/" for an empty basePath.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("catalog: missing mux")
	}
	pattern := mountPath(basePath)
	mux.Handle(pattern, handler(c.opts))
	return pattern, nil
}
