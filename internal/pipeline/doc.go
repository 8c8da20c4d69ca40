// Package pipeline wires a sample source through the segmenter and resolver
// and fans completed matches out to the configured sinks.
//
// Sinks (store, publisher, notifier, metrics) are all optional. A failing
// sink is logged as a warning and never stops the run; a window that fails
// to resolve is logged, counted and reported, and the run continues with the
// next sample.
package pipeline
