// Package resolve turns a window of raw samples into a validated Match.
//
// Resolution is consensus over noisy, redundant observations. Categorical
// values (map, mode) are fuzzy-matched onto a vocabulary and majority voted.
// Rounds are inferred from start and result markers. Roster slots are voted
// per position, and kill feed rows are attributed to roster players and
// merged across the frames they persist on.
//
// Hard failures (no map, no mode, no rounds, no roster) abort the window and
// are reported through the sentinel errors in errors.go. Soft problems such
// as an ambiguous vote or an unattributable kill are logged as warnings and
// recorded on Match.Warnings.
package resolve
