package bake

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-bake/bake/artifact"
	"github.com/Carmen-Shannon/oxy-bake/bake/codec"
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/easing"
	"github.com/Carmen-Shannon/oxy-bake/bake/frameset"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/bake/sampler"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Strategy identifies the bake path an export takes.
type Strategy int

const (
	// StrategyStatic captures the current pose as a single zero-duration
	// frame. Chosen when nothing animates the rig.
	StrategyStatic Strategy = iota

	// StrategyUniform samples every stepped frame in the range. Chosen when
	// a track blender is mixing sources or the rig is constrained without
	// owning any curve.
	StrategyUniform

	// StrategyHybrid mixes sparse keys with dense curvature and cyclic
	// sampling. Chosen when the rig owns at least one authored curve.
	StrategyHybrid
)

// String returns the strategy name for logs.
func (s Strategy) String() string {
	switch s {
	case StrategyUniform:
		return "uniform"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "static"
	}
}

// exporter is the implementation of the Exporter interface.
type exporter struct {
	rig         *rig.Rig
	rng         common.BakeRange
	eval        sampler.PoseEvaluator
	curves      curve.Provider
	constraints curve.ConstraintProvider
	meta        rig.MetadataProvider

	fullRange bool
	tolerance float32
	logger    *slog.Logger
}

// Exporter runs one complete bake: strategy selection, frame-set
// construction, sampling, and redundancy elimination, producing the
// engine-playable artifact. The engine is single-threaded: each Export call
// owns the shared evaluator clock for its duration and restores the
// pre-export clock value on both success and failure.
//
// Export may be called repeatedly; every call builds fresh per-export caches,
// so nothing leaks between calls or rigs. An Exporter must not be driven
// concurrently against the same evaluator.
type Exporter interface {
	// Export bakes the rig over the configured range.
	//
	// Returns:
	//   - *artifact.Artifact: the finished artifact, never nil on success
	//   - error: ErrInvalidRange for bad configuration, *sampler.EvaluatorError
	//     when the pose evaluator fails (no partial artifact is returned)
	Export() (*artifact.Artifact, error)

	// Strategy reports the bake path the current scene state selects. Pure
	// inspection; Export re-decides on every call.
	//
	// Returns:
	//   - Strategy: the selected bake strategy
	Strategy() Strategy
}

var _ Exporter = &exporter{}

// NewExporter creates an Exporter for one rig and range with the specified
// options applied.
//
// Parameters:
//   - r: the rig to export
//   - rng: the bake range
//   - eval: the pose evaluator wrapping the authoring tool's clock
//   - curves: the authoring tool's curve storage
//   - constraints: the authoring tool's constraint graph
//   - meta: the authoring tool's rig metadata
//   - options: variadic list of ExporterBuilderOption functions
//
// Returns:
//   - Exporter: the configured exporter
func NewExporter(r *rig.Rig, rng common.BakeRange, eval sampler.PoseEvaluator, curves curve.Provider, constraints curve.ConstraintProvider, meta rig.MetadataProvider, options ...ExporterBuilderOption) Exporter {
	e := &exporter{
		rig:         r,
		rng:         rng,
		eval:        eval,
		curves:      curves,
		constraints: constraints,
		meta:        meta,
		tolerance:   sampler.DefaultTolerance,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *exporter) Strategy() Strategy {
	mixing := e.curves.MixingTracks()
	constrained := len(curve.ConstrainedSet(e.constraints)) > 0
	hasCurves := e.rigHasCurves()

	switch {
	case mixing || (constrained && !hasCurves):
		return StrategyUniform
	case hasCurves:
		return StrategyHybrid
	default:
		return StrategyStatic
	}
}

func (e *exporter) Export() (*artifact.Artifact, error) {
	if !e.rng.Valid() {
		return nil, fmt.Errorf("bake: range %d..%d at %g fps: %w", e.rng.Start, e.rng.End, e.rng.FPS, ErrInvalidRange)
	}

	report := rig.Classify(e.rig, e.meta)

	cdc := codec.NewCodec(codec.WithDeformScale(e.meta.DeformScaleFactor()))
	res := easing.NewResolver(e.curves, e.constraints)
	smp := sampler.NewSampler(e.rig, e.eval, e.curves, e.constraints, res, cdc,
		sampler.WithTolerance(e.tolerance),
		sampler.WithLogger(e.logger),
	)

	// Scoped clock discipline: the shared evaluator clock is restored to its
	// pre-export value whether the export succeeds or aborts.
	preClock := e.eval.Clock()
	defer func() {
		_ = e.eval.SetClock(preClock)
	}()

	strategy := e.Strategy()
	e.logger.Debug("export strategy selected",
		"rig", e.rig.Name, "strategy", strategy.String(), "skinned", report.IsSkinned)

	var art *artifact.Artifact
	switch strategy {
	case StrategyUniform:
		frames, err := smp.SampleUniform(e.rng)
		if err != nil {
			return nil, err
		}
		frames = sampler.DedupeFrames(frames, e.rng, nil, e.tolerance)
		art = &artifact.Artifact{Duration: e.rng.Duration(), Frames: frames}

	case StrategyHybrid:
		set := frameset.NewBuilder(e.curves, e.constraints, frameset.WithFullRange(e.fullRange)).Build(e.rig, e.rng)
		frames, err := smp.Sample(set, e.rng)
		if err != nil {
			return nil, err
		}
		frames = sampler.DedupeFrames(frames, e.rng, set.Keys, e.tolerance)
		if len(frames) == 0 {
			// Safety net: never return an empty artifact. Re-emit the static
			// single-frame pose instead.
			return e.staticArtifact(smp, report)
		}
		art = &artifact.Artifact{Duration: e.rng.Duration(), Frames: frames}

	default:
		return e.staticArtifact(smp, report)
	}

	e.finish(art, report)
	return art, nil
}

// staticArtifact captures the current pose as a single zero-duration frame.
func (e *exporter) staticArtifact(smp sampler.Sampler, report rig.Report) (*artifact.Artifact, error) {
	frame, err := smp.SampleStatic()
	if err != nil {
		return nil, err
	}
	art := &artifact.Artifact{Duration: 0, Frames: []artifact.Frame{frame}}
	e.finish(art, report)
	return art, nil
}

// finish applies the rig-level artifact fields.
func (e *exporter) finish(art *artifact.Artifact, report rig.Report) {
	art.DeformRig = report.IsSkinned
	if report.IsSkinned {
		art.Hierarchy = e.rig.Hierarchy()
	}
}

// rigHasCurves reports whether any bone owns an authored curve.
func (e *exporter) rigHasCurves() bool {
	for _, b := range e.rig.Bones {
		if len(e.curves.BoneCurves(b.Name)) > 0 {
			return true
		}
	}
	return false
}
