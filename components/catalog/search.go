package catalog

import (
	"sort"
	"strings"

	"github.com/goliatone/go-carprice/pkg/vehicle"
)

// Search filters options by query against value and label, returning at
// most limit entries. Prefix matches come first; otherwise catalog order is
// kept. An empty query matches everything.
func Search(options []vehicle.Option, query string, limit int) []vehicle.Option {
	if limit <= 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(options) <= limit {
			return append([]vehicle.Option{}, options...)
		}
		return append([]vehicle.Option{}, options[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, len(options))
	for _, option := range options {
		value := strings.ToLower(option.Value)
		label := strings.ToLower(option.Label)
		if !strings.Contains(value, q) && !strings.Contains(label, q) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   option,
			isPrefix: strings.HasPrefix(value, q) || strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]vehicle.Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option   vehicle.Option
	isPrefix bool
}
