package codec

// CodecBuilderOption is a functional option for configuring a Codec during
// construction.
type CodecBuilderOption func(*codec)

// WithDeformScale is an option builder that sets the rig's uniform deform
// scale factor. Zero is treated as 1.
//
// Parameters:
//   - scale: the uniform scale factor declared by the skinned rig
//
// Returns:
//   - CodecBuilderOption: a function that applies the scale option to a codec
func WithDeformScale(scale float32) CodecBuilderOption {
	return func(c *codec) {
		c.deformScale = scale
	}
}
