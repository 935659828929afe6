// Package estimator scores engineered vehicle features into a price.
//
// Two models are provided. Linear evaluates an intercept plus per-feature
// coefficients read from a YAML artifact, which may live on local disk or in
// a MinIO bucket. Remote forwards the feature vector to an external scoring
// service over HTTP.
package estimator
