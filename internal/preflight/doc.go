// Package preflight provides readiness checks for the filesystem paths and
// external services matchmill depends on.
//
// These checks run in two contexts:
//   - "matchmill process" calls RunAll before consuming samples and refuses
//     to start when a required check fails.
//   - "matchmill doctor" renders every result as a table.
//
// Each service check is gated by its config toggle; disabled features are
// skipped rather than reported as failures.
package preflight
