// Package logging assembles the slog loggers used across doc2dash.
//
// It owns the console and JSON handlers, maps the --verbose/--quiet switches
// onto slog levels, and exposes small attribute helpers so components tag
// their lines the same way. The console handler colours warnings and errors
// when it writes to a terminal. A no-op logger is provided for tests and for
// wiring code that is handed a nil logger.
package logging
