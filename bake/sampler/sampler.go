package sampler

import (
	"errors"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-bake/bake/artifact"
	"github.com/Carmen-Shannon/oxy-bake/bake/codec"
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/easing"
	"github.com/Carmen-Shannon/oxy-bake/bake/frameset"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// DefaultTolerance is the per-component tolerance used for record
// equivalence when no override is configured.
const DefaultTolerance float32 = 1e-6

// sampler is the implementation of the Sampler interface.
type sampler struct {
	rig         *rig.Rig
	eval        PoseEvaluator
	curves      curve.Provider
	constraints curve.ConstraintProvider
	resolver    easing.Resolver
	codec       codec.Codec
	tolerance   float32
	logger      *slog.Logger
}

// Sampler walks a frame set in ascending order, queries the pose evaluator
// exactly once per frame, and produces per-bone pose entries. The per-bone
// redundancy pass (constant hold and equivalence skip) runs inline during
// sampling; the whole-frame pass is DedupeFrames.
//
// A Sampler is scoped to one export call: its easing resolver's inheritance
// cache and its internal sampling context must not leak across exports.
type Sampler interface {
	// Sample performs the hybrid adaptive bake over a built frame set.
	//
	// Parameters:
	//   - set: the frame set from the frame-set builder
	//   - rng: the bake range
	//
	// Returns:
	//   - []artifact.Frame: the produced frames, ascending
	//   - error: *EvaluatorError on evaluator failure (export must abort)
	Sample(set *frameset.Set, rng common.BakeRange) ([]artifact.Frame, error)

	// SampleUniform performs the uniform full bake: every stepped frame in
	// the range is evaluated and every bone with a non-identity record is
	// emitted (constrained bones always).
	//
	// Parameters:
	//   - rng: the bake range
	//
	// Returns:
	//   - []artifact.Frame: the produced frames, ascending
	//   - error: *EvaluatorError on evaluator failure (export must abort)
	SampleUniform(rng common.BakeRange) ([]artifact.Frame, error)

	// SampleStatic captures the current pose as a single frame at t = 0.
	// Bones at rest encode to identity and are suppressed, so a fully rested
	// rig yields an empty pose map.
	//
	// Returns:
	//   - artifact.Frame: the captured frame
	//   - error: *EvaluatorError on evaluator failure
	SampleStatic() (artifact.Frame, error)
}

var _ Sampler = &sampler{}

// NewSampler creates a Sampler for one export call with the specified options
// applied.
//
// Parameters:
//   - r: the classified rig to sample
//   - eval: the pose evaluator wrapping the authoring tool's clock
//   - curves: the authoring tool's curve storage
//   - constraints: the authoring tool's constraint graph
//   - res: the easing resolver for this export
//   - cdc: the transform codec for this export
//   - options: variadic list of SamplerBuilderOption functions
//
// Returns:
//   - Sampler: the configured sampler
func NewSampler(r *rig.Rig, eval PoseEvaluator, curves curve.Provider, constraints curve.ConstraintProvider, res easing.Resolver, cdc codec.Codec, options ...SamplerBuilderOption) Sampler {
	s := &sampler{
		rig:         r,
		eval:        eval,
		curves:      curves,
		constraints: constraints,
		resolver:    res,
		codec:       cdc,
		tolerance:   DefaultTolerance,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sampler) Sample(set *frameset.Set, rng common.BakeRange) ([]artifact.Frame, error) {
	ctx := newContext(s.rig, s.constraints)
	frames := make([]artifact.Frame, 0, len(set.Frames))

	for _, f := range set.Frames {
		if err := s.eval.SetClock(f); err != nil {
			return nil, &EvaluatorError{Frame: f, Err: err}
		}
		pose, err := s.samplePose(ctx, f, set, rng, false)
		if err != nil {
			return nil, err
		}
		// Boundary frames are retained even when empty so the artifact always
		// brackets the range.
		if len(pose) > 0 || rng.Boundary(f) {
			frames = append(frames, artifact.Frame{T: rng.TimeAt(f), Pose: pose})
		}
	}
	return frames, nil
}

func (s *sampler) SampleUniform(rng common.BakeRange) ([]artifact.Frame, error) {
	ctx := newContext(s.rig, s.constraints)
	var frames []artifact.Frame

	step := rng.StepOrDefault()
	for f := rng.Start; f <= rng.End; f += step {
		if err := s.eval.SetClock(f); err != nil {
			return nil, &EvaluatorError{Frame: f, Err: err}
		}
		pose, err := s.samplePose(ctx, f, nil, rng, true)
		if err != nil {
			return nil, err
		}
		if len(pose) > 0 || rng.Boundary(f) {
			frames = append(frames, artifact.Frame{T: rng.TimeAt(f), Pose: pose})
		}
	}
	if last := rng.End; len(frames) == 0 || frames[len(frames)-1].T < rng.TimeAt(last) {
		if err := s.eval.SetClock(last); err != nil {
			return nil, &EvaluatorError{Frame: last, Err: err}
		}
		pose, err := s.samplePose(ctx, last, nil, rng, true)
		if err != nil {
			return nil, err
		}
		frames = append(frames, artifact.Frame{T: rng.TimeAt(last), Pose: pose})
	}
	return frames, nil
}

func (s *sampler) SampleStatic() (artifact.Frame, error) {
	ctx := newContext(s.rig, s.constraints)
	f := s.eval.Clock()
	if err := s.eval.SetClock(f); err != nil {
		return artifact.Frame{}, &EvaluatorError{Frame: f, Err: err}
	}
	pose, err := s.staticPose(ctx, f)
	if err != nil {
		return artifact.Frame{}, err
	}
	return artifact.Frame{T: 0, Pose: pose}, nil
}

// samplePose encodes every emitting bone at the active clock value. The
// evaluator's matrices are gathered up front so no bone's encoding straddles
// two clock values.
func (s *sampler) samplePose(ctx *context, frame int, set *frameset.Set, rng common.BakeRange, uniform bool) (map[string]artifact.PoseEntry, error) {
	worlds, err := s.gatherWorlds(frame)
	if err != nil {
		return nil, err
	}
	worldFn := func(b *rig.Bone) [16]float32 { return worlds[b.Name] }
	restFn := ctx.restWorldFn()

	boundary := rng.Boundary(frame)
	pose := make(map[string]artifact.PoseEntry)

	for _, b := range s.rig.Bones {
		constrained := ctx.constrained[b.Name]

		// Uniform bakes capture every bone: track mixing animates bones that
		// carry no local curve, so nothing can be filtered by curve presence.
		var isKey, inCurv bool
		if !uniform {
			isKey = set.BoneKey(b.Name, frame)
			inCurv = set.InCurvature(b.Name, frame)
			hasCurve := len(s.curves.BoneCurves(b.Name)) > 0
			if !constrained && !(hasCurve && (isKey || boundary || inCurv)) {
				continue
			}
		}

		style, dir := s.resolver.Resolve(b.Name, frame)

		// Per-bone redundancy pass (a): constant interpolation holds the
		// previous emission between keys.
		_, prevExists := ctx.last[b.Name]
		if !constrained && style == easing.StyleConstant && !isKey && !boundary && prevExists {
			continue
		}

		rec, err := s.codec.Encode(b, worldFn, restFn)
		if err != nil {
			var mrd *codec.MissingRestDataError
			if errors.As(err, &mrd) {
				s.logger.Warn("skipping bone with incomplete rest data", "rig", s.rig.Name, "bone", b.Name)
				continue
			}
			return nil, err
		}

		// Identity records are suppressed except on the bone's own explicit
		// keys (key-exactness) and for constrained bones (density).
		if !constrained && !isKey && rec.IsIdentity(s.tolerance) {
			continue
		}

		// Per-bone redundancy pass (b): equivalence skip for unconstrained
		// bones away from keys and boundaries.
		if !constrained && !isKey && !boundary {
			if le, ok := ctx.last[b.Name]; ok && le.style == style && le.dir == dir && le.rec.NearEqual(rec, s.tolerance) {
				continue
			}
		}

		pose[b.Name] = artifact.PoseEntry{Record: rec, Style: style, Direction: dir}
		ctx.last[b.Name] = lastEmit{rec: rec, style: style, dir: dir}
		s.resolver.NoteEmitted(b.Name, style, dir)
	}
	return pose, nil
}

// staticPose captures all non-rest bones at the active clock.
func (s *sampler) staticPose(ctx *context, frame int) (map[string]artifact.PoseEntry, error) {
	worlds, err := s.gatherWorlds(frame)
	if err != nil {
		return nil, err
	}
	worldFn := func(b *rig.Bone) [16]float32 { return worlds[b.Name] }
	restFn := ctx.restWorldFn()

	pose := make(map[string]artifact.PoseEntry)
	for _, b := range s.rig.Bones {
		rec, err := s.codec.Encode(b, worldFn, restFn)
		if err != nil {
			var mrd *codec.MissingRestDataError
			if errors.As(err, &mrd) {
				s.logger.Warn("skipping bone with incomplete rest data", "rig", s.rig.Name, "bone", b.Name)
				continue
			}
			return nil, err
		}
		if rec.IsIdentity(s.tolerance) {
			continue
		}
		style, dir := s.resolver.Resolve(b.Name, frame)
		pose[b.Name] = artifact.PoseEntry{Record: rec, Style: style, Direction: dir}
	}
	return pose, nil
}

// gatherWorlds reads every bone's world matrix for the active clock in one
// pass.
func (s *sampler) gatherWorlds(frame int) (map[string][16]float32, error) {
	worlds := make(map[string][16]float32, len(s.rig.Bones))
	for _, b := range s.rig.Bones {
		m, err := s.eval.WorldMatrix(b.Name)
		if err != nil {
			return nil, &EvaluatorError{Frame: frame, Err: err}
		}
		worlds[b.Name] = m
	}
	return worlds, nil
}
