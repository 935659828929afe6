// Package template wraps pongo2 behind a small renderer contract used by the
// page views. Templates load from an fs.FS (usually embedded), are cached
// after first parse, and receive their data converted to plain maps through
// JSON so struct tags decide the names templates see. Output is autoescaped.
package template
