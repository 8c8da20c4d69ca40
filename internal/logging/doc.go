// Package logging assembles structured slog loggers and formatting helpers used
// across matchmill components.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes the standardized field keys that segmenter, resolver and sink
// code use so warnings about ambiguous votes, dropped kills or anomalous
// restarts can be filtered by event_type. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// records with the same shape as the rest of the system.
package logging
