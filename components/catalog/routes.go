package catalog

import (
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

func mountPath(basePath string) string {
	prefix := strings.Trim(strings.TrimSpace(basePath), "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return prefix + RoutePath + "/"
}
