package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-bake/bake/artifact"
	"github.com/Carmen-Shannon/oxy-bake/bake/codec"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

func frameAt(rng common.BakeRange, frame int, pose map[string]artifact.PoseEntry) artifact.Frame {
	return artifact.Frame{T: rng.TimeAt(frame), Pose: pose}
}

func poseWithX(x float32) map[string]artifact.PoseEntry {
	rec := codec.IdentityRecord
	rec[0] = x
	return map[string]artifact.PoseEntry{"arm": {Record: rec}}
}

func TestDedupeDropsRedundantInteriorFrames(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 5, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(0)),
		frameAt(rng, 3, poseWithX(0)),
		frameAt(rng, 4, poseWithX(1)),
		frameAt(rng, 5, poseWithX(1)),
	}

	out := DedupeFrames(frames, rng, nil, DefaultTolerance)

	require.Len(t, out, 3)
	assert.Equal(t, rng.TimeAt(1), out[0].T)
	assert.Equal(t, rng.TimeAt(4), out[1].T)
	assert.Equal(t, rng.TimeAt(5), out[2].T)
}

func TestDedupeNeverDropsExplicitKeys(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 4, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(0)),
		frameAt(rng, 3, poseWithX(0)),
		frameAt(rng, 4, poseWithX(0)),
	}

	out := DedupeFrames(frames, rng, map[int]bool{2: true}, DefaultTolerance)

	require.Len(t, out, 3)
	assert.Equal(t, rng.TimeAt(2), out[1].T)
}

func TestDedupeKeepsBoundaries(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 3, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(0)),
		frameAt(rng, 3, poseWithX(0)),
	}

	out := DedupeFrames(frames, rng, nil, DefaultTolerance)

	require.Len(t, out, 2)
	assert.Equal(t, rng.TimeAt(1), out[0].T)
	assert.Equal(t, rng.TimeAt(3), out[1].T)
}

func TestDedupeSortsByTime(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 3, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 3, poseWithX(2)),
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(1)),
	}

	out := DedupeFrames(frames, rng, nil, DefaultTolerance)

	require.Len(t, out, 3)
	assert.True(t, out[0].T < out[1].T && out[1].T < out[2].T)
}

func TestDedupeToleranceAbsorbsJitter(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 3, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(5e-7)),
		frameAt(rng, 3, poseWithX(1)),
	}

	out := DedupeFrames(frames, rng, nil, DefaultTolerance)
	assert.Len(t, out, 2)

	// A tighter tolerance keeps the jittered frame.
	frames[1] = frameAt(rng, 2, poseWithX(5e-7))
	out = DedupeFrames(frames, rng, nil, 1e-8)
	assert.Len(t, out, 3)
}

func TestDedupeDifferentBoneSetsNeverMerge(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 3, FPS: 24}
	two := map[string]artifact.PoseEntry{
		"arm": {Record: codec.IdentityRecord},
		"leg": {Record: codec.IdentityRecord},
	}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, two),
		frameAt(rng, 3, poseWithX(0)),
	}

	out := DedupeFrames(frames, rng, nil, DefaultTolerance)
	assert.Len(t, out, 3)
}

func TestDedupeShortSequencesUntouched(t *testing.T) {
	rng := common.BakeRange{Start: 1, End: 2, FPS: 24}
	frames := []artifact.Frame{
		frameAt(rng, 1, poseWithX(0)),
		frameAt(rng, 2, poseWithX(0)),
	}
	assert.Len(t, DedupeFrames(frames, rng, nil, DefaultTolerance), 2)

	single := []artifact.Frame{frameAt(rng, 1, poseWithX(0))}
	assert.Len(t, DedupeFrames(single, rng, nil, DefaultTolerance), 1)
}
