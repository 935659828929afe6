package vehicle

import (
	"strconv"
	"time"
)

// Kind names an option list.
type Kind string

const (
	KindModel          Kind = "models"
	KindTransmission   Kind = "transmissions"
	KindBodyType       Kind = "body_types"
	KindFuelType       Kind = "fuel_types"
	KindEngineCapacity Kind = "engine_capacities"
)

// Option is a selectable value and its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog holds the option lists backing the selection fields.
type Catalog struct {
	lists map[Kind][]Option
}

// NewCatalog builds a catalog from the supplied lists. Lists are copied.
func NewCatalog(lists map[Kind][]Option) *Catalog {
	c := &Catalog{lists: make(map[Kind][]Option, len(lists))}
	for kind, options := range lists {
		c.lists[kind] = append([]Option(nil), options...)
	}
	return c
}

// DefaultCatalog returns the built-in option lists.
func DefaultCatalog() *Catalog {
	engines := make([]Option, 0, len(engineCapacities))
	for _, cc := range engineCapacities {
		engines = append(engines, Option{Value: cc, Label: cc + "cc"})
	}
	return NewCatalog(map[Kind][]Option{
		KindModel: {
			{Value: "aqua", Label: "Toyota Aqua"},
			{Value: "vitz", Label: "Toyota Vitz"},
			{Value: "premio", Label: "Toyota Premio"},
			{Value: "corolla", Label: "Toyota Corolla"},
			{Value: "prius", Label: "Toyota Prius"},
			{Value: "chr", Label: "Toyota CHR"},
			{Value: "axio", Label: "Toyota Axio"},
			{Value: "fortuner", Label: "Toyota Fortuner"},
			{Value: "wigo", Label: "Toyota Wigo"},
			{Value: "voxy", Label: "Toyota Voxy"},
			{Value: "hilux", Label: "Toyota Hilux"},
			{Value: "harrier", Label: "Toyota Harrier"},
			{Value: "yaris", Label: "Toyota Yaris"},
			{Value: "avanza", Label: "Toyota Avanza"},
			{Value: "allion", Label: "Toyota Allion"},
			{Value: "belta", Label: "Toyota Belta"},
			{Value: "passo", Label: "Toyota Passo"},
			{Value: "camry", Label: "Toyota Camry"},
		},
		KindTransmission: {
			{Value: "automatic", Label: "Automatic"},
			{Value: "tiptronic", Label: "Tiptronic"},
			{Value: "manual", Label: "Manual"},
		},
		KindBodyType: {
			{Value: "hatchback", Label: "Hatchback"},
			{Value: "saloon", Label: "Saloon"},
			{Value: "suv/4x4", Label: "SUV/4x4"},
			{Value: "mpv", Label: "MPV"},
			{Value: "station_wagon", Label: "Station Wagon"},
			{Value: "sedan", Label: "Sedan"},
		},
		KindFuelType: {
			{Value: "hybrid", Label: "Hybrid"},
			{Value: "petrol", Label: "Petrol"},
			{Value: "diesel", Label: "Diesel"},
		},
		KindEngineCapacity: engines,
	})
}

var engineCapacities = []string{
	"660", "800", "1000", "1200", "1300", "1400", "1500",
	"1600", "1800", "2000", "2200", "2400", "2500", "2700", "3000",
}

// Kinds lists the option kinds in field order.
func Kinds() []Kind {
	return []Kind{KindModel, KindTransmission, KindBodyType, KindFuelType, KindEngineCapacity}
}

// ParseKind resolves a kind name.
func ParseKind(raw string) (Kind, bool) {
	for _, kind := range Kinds() {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// KindForField returns the option kind backing a selection field.
func KindForField(field string) (Kind, bool) {
	switch field {
	case FieldModel:
		return KindModel, true
	case FieldTransmission:
		return KindTransmission, true
	case FieldBodyType:
		return KindBodyType, true
	case FieldFuelType:
		return KindFuelType, true
	case FieldEngineCapacity:
		return KindEngineCapacity, true
	default:
		return "", false
	}
}

// Options returns a copy of the options for kind.
func (c *Catalog) Options(kind Kind) []Option {
	if c == nil {
		return nil
	}
	return append([]Option(nil), c.lists[kind]...)
}

// Values returns the option values for kind.
func (c *Catalog) Values(kind Kind) []string {
	if c == nil {
		return nil
	}
	options := c.lists[kind]
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, option.Value)
	}
	return out
}

// Label returns the display label for value, or value itself when unknown.
func (c *Catalog) Label(kind Kind, value string) string {
	if c != nil {
		for _, option := range c.lists[kind] {
			if option.Value == value {
				return option.Label
			}
		}
	}
	return value
}

// Years lists the selectable manufacture years, newest first.
func Years(now time.Time) []int {
	current := now.Year()
	if current < MinYear {
		return nil
	}
	out := make([]int, 0, current-MinYear+1)
	for year := current; year >= MinYear; year-- {
		out = append(out, year)
	}
	return out
}

// YearOptions returns Years as select options.
func YearOptions(now time.Time) []Option {
	years := Years(now)
	out := make([]Option, 0, len(years))
	for _, year := range years {
		value := strconv.Itoa(year)
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}
