// Package catalog serves the vehicle option lists behind the form dropdowns
// as a small net/http component.
//
// The handler answers GET and HEAD requests on /api/options/<kind> (below an
// optional base path), where kind is one of models, transmissions,
// body_types, fuel_types or engine_capacities, with
// {"data":[{"value":...,"label":...}]}. The q parameter filters on value or
// label (prefix matches first) and limit caps the result count.
package catalog
