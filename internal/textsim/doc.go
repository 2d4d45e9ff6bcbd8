// Package textsim scores how likely two OCR-recognized strings are
// re-recognitions of the same on-screen text.
//
// Scores are symmetric, deterministic, and lie in [0, 1]. The scorer is
// deliberately tolerant of common OCR noise: width variants and case are
// folded away, whitespace and sentence punctuation are ignored, and a
// fixed table of visually-confusable characters is canonicalized before
// strings are compared. Everything that survives normalization is scored
// by normalized edit distance, or optionally by a cheaper positional
// mismatch count.
package textsim
