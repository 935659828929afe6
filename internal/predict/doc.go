// Package predict is the backend half of the form: it turns a submitted
// vehicle description into engineered features, asks the estimator for a
// price and formats the answer for display.
package predict
