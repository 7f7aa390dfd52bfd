// Package config models the resolved validation configuration: which
// rules run, with what severity, and with what per-column settings.
//
// Configs are produced by pkg/template from layered rule templates.
// Merging follows one law everywhere: map-shaped fields merge
// key-by-key recursively, scalar and list fields in the overlay
// replace the base's wholesale.
package config
