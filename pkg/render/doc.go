// Package render holds the presentation helpers shared by the page and the
// terminal front end: a plain-text summariser for markup such as upstream
// error pages, and the page theme (go-theme manifests flattened into CSS
// custom properties).
package render
