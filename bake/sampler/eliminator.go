package sampler

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-bake/bake/artifact"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// DedupeFrames is the whole-frame redundancy pass, run after sampling. Frames
// are re-sorted by time to absorb float frame/time round-trip jitter, then
// interior frames are dropped when they are not explicit key frames and their
// entire pose map matches the previous retained frame within tolerance. The
// first and last frames are always kept.
//
// Parameters:
//   - frames: the sampled frames
//   - rng: the bake range, used to re-derive frame indices from timestamps
//   - keys: the explicit key frames that may never be dropped
//   - tol: the per-component record tolerance
//
// Returns:
//   - []artifact.Frame: the retained frames, ascending
func DedupeFrames(frames []artifact.Frame, rng common.BakeRange, keys map[int]bool, tol float32) []artifact.Frame {
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].T < frames[j].T
	})
	if len(frames) <= 2 {
		return frames
	}

	out := frames[:1:1]
	for i := 1; i < len(frames)-1; i++ {
		f := frames[i]
		if !keys[rng.FrameAt(f.T)] && poseEqual(f.Pose, out[len(out)-1].Pose, tol) {
			continue
		}
		out = append(out, f)
	}
	return append(out, frames[len(frames)-1])
}

// poseEqual compares two pose maps bone for bone under the component
// tolerance rule.
func poseEqual(a, b map[string]artifact.PoseEntry, tol float32) bool {
	if len(a) != len(b) {
		return false
	}
	for bone, ea := range a {
		eb, ok := b[bone]
		if !ok {
			return false
		}
		if ea.Style != eb.Style || ea.Direction != eb.Direction {
			return false
		}
		if !ea.Record.NearEqual(eb.Record, tol) {
			return false
		}
	}
	return true
}
