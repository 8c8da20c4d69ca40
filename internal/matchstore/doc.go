// Package matchstore persists resolved matches in SQLite.
//
// Each match is stored as one row keyed by its match key: a handful of
// summary columns used for listing plus the full JSON document. Saving an
// existing key replaces the row, so re-processing a recording is idempotent.
//
// The database lives at <data_dir>/matches.db and is opened in WAL mode with
// a busy timeout. Writes retry briefly on SQLITE_BUSY so a CLI listing and a
// running process can share the file.
package matchstore
