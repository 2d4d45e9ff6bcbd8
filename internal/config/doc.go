// Package config loads, validates, and defaults subscan's TOML
// configuration.
//
// Configuration is read once at CLI startup and handed to pipeline
// components as explicit per-invocation options; no component reads
// process-wide settings. Out-of-range values are rejected here, at load
// time, never mid-pipeline.
package config
