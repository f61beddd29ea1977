package sampler

import (
	"log/slog"
)

// SamplerBuilderOption is a functional option for configuring a Sampler
// during construction.
type SamplerBuilderOption func(*sampler)

// WithTolerance is an option builder that sets the per-component tolerance
// used by the equivalence-skip and identity-suppression rules.
//
// Parameters:
//   - tol: the absolute per-component tolerance
//
// Returns:
//   - SamplerBuilderOption: a function that applies the tolerance to a sampler
func WithTolerance(tol float32) SamplerBuilderOption {
	return func(s *sampler) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithLogger is an option builder that sets the logger used for per-bone
// degradation reports.
//
// Parameters:
//   - logger: the structured logger to use
//
// Returns:
//   - SamplerBuilderOption: a function that applies the logger to a sampler
func WithLogger(logger *slog.Logger) SamplerBuilderOption {
	return func(s *sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}
