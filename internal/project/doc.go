// Package project persists extraction runs and their cues in SQLite.
//
// A run records one pass over one video's OCR output together with the
// final deduplicated cue list, so cues can be inspected, QC-checked, and
// re-exported without re-running the pipeline. The database is working
// storage, not an archive: schema changes bump the version in schema.go
// and users clear the database to adopt the new schema. A file lock next
// to the database serializes writers across processes.
package project
