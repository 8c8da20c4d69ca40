// Package main hosts the matchmill CLI entrypoint and command graph.
//
// The Cobra-based command tree turns recognizer sample streams into stored
// matches (process), browses and prunes the match database (matches), and
// scaffolds and checks configuration (config, doctor, test-notify). It
// centralizes configuration resolution and logger setup so subcommands can
// focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
