package frameset

// BuilderOption is a functional option for configuring a Builder during
// construction.
type BuilderOption func(*builder)

// WithFullRange is an option builder that enables the full-range policy:
// every integer frame in the bake range is included unless a cyclic modifier
// already governs the set.
//
// Parameters:
//   - full: true to include every in-range frame
//
// Returns:
//   - BuilderOption: a function that applies the full-range option to a builder
func WithFullRange(full bool) BuilderOption {
	return func(b *builder) {
		b.fullRange = full
	}
}
