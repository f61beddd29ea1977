package artifact

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/Carmen-Shannon/oxy-bake/bake/codec"
	"github.com/Carmen-Shannon/oxy-bake/bake/easing"
)

// PoseEntry is one bone's contribution to a frame: the encoded affine record
// plus the easing the runtime applies when interpolating toward the next key.
// It serializes as the 3-element array `[[12 floats], "Style", "Direction"]`.
type PoseEntry struct {
	// Record is the bone's 12-component affine record.
	Record codec.Record

	// Style is the runtime easing style.
	Style easing.Style

	// Direction is the runtime easing direction.
	Direction easing.Direction
}

// MarshalJSON encodes the entry as the artifact's heterogeneous array form.
func (e PoseEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Record, e.Style.String(), e.Direction.String()})
}

// UnmarshalJSON decodes the artifact's heterogeneous array form.
func (e *PoseEntry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("artifact: pose entry: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("artifact: pose entry has %d elements, want 3", len(parts))
	}
	if err := json.Unmarshal(parts[0], &e.Record); err != nil {
		return fmt.Errorf("artifact: pose entry record: %w", err)
	}
	var style, dir string
	if err := json.Unmarshal(parts[1], &style); err != nil {
		return fmt.Errorf("artifact: pose entry style: %w", err)
	}
	if err := json.Unmarshal(parts[2], &dir); err != nil {
		return fmt.Errorf("artifact: pose entry direction: %w", err)
	}
	e.Style = easing.ParseStyle(style)
	e.Direction = easing.ParseDirection(dir)
	return nil
}

// Frame is one timestamped pose: the bones that move at this instant mapped
// to their encoded records. Bones absent from the map hold their previous
// value during playback.
type Frame struct {
	// T is the frame's timestamp in seconds from the start of the range.
	T float32 `json:"t"`

	// Pose maps bone names to their encoded entries.
	Pose map[string]PoseEntry `json:"kf"`
}

// Artifact is the complete engine-playable keyframe stream produced by one
// export. Frame timestamps are non-decreasing; the first and last frames of a
// non-empty sequence are always boundary frames.
type Artifact struct {
	// Duration is the total playback length in seconds.
	Duration float32

	// Frames holds the output frames in ascending time order.
	Frames []Frame

	// DeformRig is true when the rig drives skinned meshes.
	DeformRig bool

	// Hierarchy maps bone names to parent names (nil for roots). Serialized
	// only for deform rigs, whose runtime needs the parenting to rebuild the
	// skin transform chain.
	Hierarchy map[string]*string
}

// artifactJSON is the wire shape of an Artifact.
type artifactJSON struct {
	T               float32            `json:"t"`
	KFS             []Frame            `json:"kfs"`
	IsDeformBoneRig bool               `json:"is_deform_bone_rig,omitempty"`
	BoneHierarchy   map[string]*string `json:"bone_hierarchy,omitempty"`
}

// MarshalJSON encodes the artifact in its wire shape. The bone hierarchy is
// emitted only for deform rigs.
func (a *Artifact) MarshalJSON() ([]byte, error) {
	wire := artifactJSON{
		T:               a.Duration,
		KFS:             a.Frames,
		IsDeformBoneRig: a.DeformRig,
	}
	if a.DeformRig {
		wire.BoneHierarchy = a.Hierarchy
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes an artifact from its wire shape.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	var wire artifactJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("artifact: %w", err)
	}
	a.Duration = wire.T
	a.Frames = wire.KFS
	a.DeformRig = wire.IsDeformBoneRig
	a.Hierarchy = wire.BoneHierarchy
	return nil
}
