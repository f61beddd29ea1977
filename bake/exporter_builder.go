package bake

import (
	"log/slog"
)

// ExporterBuilderOption is a functional option for configuring an Exporter
// during construction.
type ExporterBuilderOption func(*exporter)

// WithFullRange is an option builder that enables the full-range sampling
// policy on the hybrid path: every integer frame in range is evaluated,
// trading artifact size for guaranteed fidelity between sparse keys.
//
// Parameters:
//   - full: true to sample every in-range frame
//
// Returns:
//   - ExporterBuilderOption: a function that applies the policy to an exporter
func WithFullRange(full bool) ExporterBuilderOption {
	return func(e *exporter) {
		e.fullRange = full
	}
}

// WithTolerance is an option builder that sets the per-component record
// tolerance used by both redundancy-elimination passes.
//
// Parameters:
//   - tol: the absolute per-component tolerance
//
// Returns:
//   - ExporterBuilderOption: a function that applies the tolerance to an exporter
func WithTolerance(tol float32) ExporterBuilderOption {
	return func(e *exporter) {
		if tol > 0 {
			e.tolerance = tol
		}
	}
}

// WithLogger is an option builder that sets the structured logger used for
// strategy decisions and per-bone degradation reports.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ExporterBuilderOption: a function that applies the logger to an exporter
func WithLogger(logger *slog.Logger) ExporterBuilderOption {
	return func(e *exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}
