package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []vehicle.Option `json:"data"`
}

func NewHandler(fns ...OptionFn) http.Handler {
	return handler(newOptions(fns...))
}

// handler serves the kind named by the last path segment of the URL.
func handler(opts Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		kind, err := kindFromPath(r.URL.Path)
		if err != nil {
			writeStatusError(w, err)
			return
		}

		query := r.URL.Query().Get(SearchParam)
		limit := clampLimit(parseInt(r.URL.Query().Get(LimitParam)))

		results := Search(opts.Catalog.Options(kind), query, limit)
		if results == nil {
			results = []vehicle.Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func kindFromPath(urlPath string) (vehicle.Kind, error) {
	segment := path.Base(path.Clean("/" + urlPath))
	kind, ok := vehicle.ParseKind(segment)
	if !ok {
		return "", StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("catalog: unknown option kind %q", segment)}
	}
	return kind, nil
}

func writeStatusError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
