package common

// BakeRange describes the frame window of one export: inclusive start and end
// frames, the integer step between uniformly sampled frames, and the playback
// rate used to map frame indices onto artifact timestamps. A BakeRange is
// immutable for the duration of an export.
type BakeRange struct {
	// Start is the first frame of the export window (inclusive).
	Start int

	// End is the last frame of the export window (inclusive).
	End int

	// Step is the frame increment for uniform sampling. Values below 1 are
	// treated as 1.
	Step int

	// FPS is the playback rate in frames per second used to convert frame
	// indices to seconds.
	FPS float32
}

// Valid reports whether the range is usable: a non-inverted window and a
// positive playback rate.
//
// Returns:
//   - bool: true when End >= Start and FPS > 0
func (r BakeRange) Valid() bool {
	return r.End >= r.Start && r.FPS > 0
}

// StepOrDefault returns the sampling step, substituting 1 for non-positive values.
//
// Returns:
//   - int: the effective frame step
func (r BakeRange) StepOrDefault() int {
	if r.Step < 1 {
		return 1
	}
	return r.Step
}

// TimeAt converts a frame index to seconds from the start of the range.
//
// Parameters:
//   - frame: the frame index to convert
//
// Returns:
//   - float32: seconds elapsed since Start at the given frame
func (r BakeRange) TimeAt(frame int) float32 {
	return float32(frame-r.Start) / r.FPS
}

// FrameAt is the inverse of TimeAt: it recovers the integer frame index that
// produced a timestamp, rounding to absorb float round-trip jitter.
//
// Parameters:
//   - t: seconds from the start of the range
//
// Returns:
//   - int: the nearest frame index
func (r BakeRange) FrameAt(t float32) int {
	f := t*r.FPS + float32(r.Start)
	if f >= 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}

// Duration returns the total length of the range in seconds.
//
// Returns:
//   - float32: the range duration
func (r BakeRange) Duration() float32 {
	return float32(r.End-r.Start) / r.FPS
}

// Contains reports whether a frame index falls inside the range (inclusive).
//
// Parameters:
//   - frame: the frame index to test
//
// Returns:
//   - bool: true when Start <= frame <= End
func (r BakeRange) Contains(frame int) bool {
	return frame >= r.Start && frame <= r.End
}

// Boundary reports whether a frame is the first or last frame of the range.
//
// Parameters:
//   - frame: the frame index to test
//
// Returns:
//   - bool: true when frame equals Start or End
func (r BakeRange) Boundary(frame int) bool {
	return frame == r.Start || frame == r.End
}
