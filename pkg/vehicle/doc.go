// Package vehicle defines the data model shared by the price-prediction form,
// its controller and the prediction backend: the raw FormInput read from the
// page, the ValidatedRequest sent over the wire, the PredictionResult returned
// by the backend and the option catalog used to populate the selection fields.
//
// Detail values carried by a PredictionResult are display strings formatted by
// the backend. Nothing in this package derives them.
package vehicle
