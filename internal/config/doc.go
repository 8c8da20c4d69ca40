// Package config loads, normalizes, and validates matchmill configuration.
//
// Configuration lives in a TOML file (default ~/.config/matchmill/config.toml,
// falling back to ./matchmill.toml) and a small set of MATCHMILL_* environment
// variables that override secrets and paths. Every value has a default, so a
// missing file is not an error. The segmenter and resolver tuning constants
// (restart grace, ambiguity margin, similarity thresholds) are empirically
// tuned for the observed games and are exposed here rather than hard coded.
package config
