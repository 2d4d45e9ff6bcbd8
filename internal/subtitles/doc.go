// Package subtitles holds the timed cue model shared by every pipeline
// stage, text cleanup for OCR artifacts, and SRT reading and writing.
//
// A Cue is one subtitle occurrence bounded in milliseconds. Stages treat
// cues as immutable values: transformations return new slices and the
// final sequence is renumbered 1..N only once it is complete.
package subtitles
