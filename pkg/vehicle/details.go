package vehicle

// DetailRow is one labelled line of the results region.
type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row labels, in the order the results region lists them.
const (
	LabelModel          = "Model"
	LabelYear           = "Year"
	LabelTransmission   = "Transmission"
	LabelBodyType       = "Body Type"
	LabelFuelType       = "Fuel Type"
	LabelEngine         = "Engine"
	LabelMileage        = "Mileage"
	LabelVehicleAge     = "Vehicle Age"
	LabelMileagePerYear = "Avg Yearly Usage"
)

// DetailRows maps details onto the fixed nine-row layout.
func DetailRows(d Details) []DetailRow {
	return []DetailRow{
		{Label: LabelModel, Value: d.Model},
		{Label: LabelYear, Value: d.Year},
		{Label: LabelTransmission, Value: d.Transmission},
		{Label: LabelBodyType, Value: d.BodyType},
		{Label: LabelFuelType, Value: d.FuelType},
		{Label: LabelEngine, Value: d.EngineCapacity},
		{Label: LabelMileage, Value: d.Mileage},
		{Label: LabelVehicleAge, Value: d.VehicleAge},
		{Label: LabelMileagePerYear, Value: d.MileagePerYear},
	}
}
