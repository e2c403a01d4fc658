// Package msg defines the tea.Msg types dispatched within the gallery app.
// It has no upstream imports (app, ui) to avoid import cycles.
package msg

// -- Lifecycle --

// HealthResult from the optional content server health check.
type HealthResult struct {
	Status  string
	Version string
	Err     error
}

// PreloadDone reports that every content source has been loaded. Err joins
// the per-source failures; the gallery starts regardless.
type PreloadDone struct {
	Loaded int
	Failed int
	Err    error
}

// -- UI events --

// ThemeChanged is emitted after the theme was switched at runtime.
type ThemeChanged struct {
	Name string
}
