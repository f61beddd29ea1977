package frameset

// Interval is an inclusive integer-frame window requiring dense interior
// sampling for one bone, produced by a curved segment between two keys.
type Interval struct {
	// Start and End are the segment's key frames (inclusive).
	Start, End int
}

// Contains reports whether a frame lies inside the interval.
//
// Parameters:
//   - frame: the frame to test
//
// Returns:
//   - bool: true when Start <= frame <= End
func (iv Interval) Contains(frame int) bool {
	return frame >= iv.Start && frame <= iv.End
}

// Set is the output of one frame-set build: the sorted frames to evaluate,
// the explicit-key bookkeeping the sampler and optimizer consult, and the
// per-bone curvature intervals.
type Set struct {
	// Frames holds every frame to evaluate, sorted ascending.
	Frames []int

	// Keys marks frames that carry an explicit authored key on any relevant
	// curve, including cyclic replicas. The whole-frame optimizer never drops
	// these.
	Keys map[int]bool

	// BoneKeys marks explicit key frames per owning bone. Drives the
	// per-bone emission decision and the key-exactness invariant.
	BoneKeys map[string]map[int]bool

	// Curvature maps each bone to the intervals whose interiors must be
	// captured frame by frame.
	Curvature map[string][]Interval
}

// BoneKey reports whether the frame is an explicit key of the named bone.
//
// Parameters:
//   - bone: the bone name
//   - frame: the frame to test
//
// Returns:
//   - bool: true when the bone has an authored (or replicated) key there
func (s *Set) BoneKey(bone string, frame int) bool {
	return s.BoneKeys[bone][frame]
}

// InCurvature reports whether the frame falls inside any of the bone's
// curvature intervals.
//
// Parameters:
//   - bone: the bone name
//   - frame: the frame to test
//
// Returns:
//   - bool: true when a curved segment of the bone's curves covers the frame
func (s *Set) InCurvature(bone string, frame int) bool {
	for _, iv := range s.Curvature[bone] {
		if iv.Contains(frame) {
			return true
		}
	}
	return false
}

// markBoneKey records an explicit key for a bone, allocating lazily.
func (s *Set) markBoneKey(bone string, frame int) {
	m := s.BoneKeys[bone]
	if m == nil {
		m = make(map[int]bool)
		s.BoneKeys[bone] = m
	}
	m[frame] = true
}
