// Package ocr defines the detection shapes produced by an external OCR
// engine and a reader for ingesting them.
//
// Subscan never runs OCR itself. An upstream engine analyzes sampled video
// frames and emits, per frame, a set of recognized text fragments with
// confidence scores and bounding boxes in frame-pixel space (origin
// top-left, y increasing downward). This package is the boundary where
// that data enters the pipeline: malformed boxes are clamped here so later
// stages can assume well-formed geometry.
package ocr
