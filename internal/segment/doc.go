// Package segment slices a continuous sample stream into match windows.
//
// A Segmenter is a small state machine: at most one match is in progress at
// a time. A start marker opens a match, an end marker closes it, and a start
// marker seen well after the current match began is treated as an anomalous
// restart that force-closes the current match before opening a new one. Each
// closed window is handed to a Resolver; windows too short to be a real match
// are dropped.
//
// A Segmenter is not safe for concurrent use. Feed it from one goroutine.
package segment
