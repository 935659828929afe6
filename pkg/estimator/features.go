package estimator

import (
	"sort"
	"strings"
)

// Features is a named numeric feature vector.
type Features map[string]float64

// Names returns the feature names in sorted order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Align projects f onto names: absent columns read as zero and columns not in
// names are dropped.
func (f Features) Align(names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		out[i] = f[name]
	}
	return out
}

// Subset returns the features restricted to names, with absent ones as zero.
func (f Features) Subset(names []string) Features {
	out := make(Features, len(names))
	for _, name := range names {
		out[name] = f[name]
	}
	return out
}

// SetOneHot sets the indicator column prefix_value to one.
func (f Features) SetOneHot(prefix, value string) {
	f[prefix+"_"+Category(value)] = 1
}

// Category normalises a categorical value into its column suffix: lower
// case, spaces replaced with underscores.
func Category(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}
