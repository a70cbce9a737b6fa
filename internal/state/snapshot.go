package state

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/shade"
)

// SnapshotVersion is bumped whenever the snapshot layout changes
// incompatibly. Loads refuse versions they do not understand.
const SnapshotVersion = 1

// Snapshot is the full serializable application state used for save/load
// round trips and for the JSON sidecar written next to screenshots.
type Snapshot struct {
	Version int `json:"version"`

	C [4]float64 `json:"c"`

	SliceValue     float64 `json:"sliceValue"`
	SliceAmplitude float64 `json:"sliceAmplitude"`
	SliceSpeed     float64 `json:"sliceSpeed"`
	SliceAnimate   bool    `json:"sliceAnimate"`

	Quality Quality `json:"quality"`

	ClipMode     int     `json:"clipMode"`
	ClipDistance float64 `json:"clipDistance"`

	Palette  int            `json:"palette"`
	Dynamics shade.Dynamics `json:"dynamics"`
	Effect   Effect         `json:"effect"`
	TAAOn    bool           `json:"taaEnabled"`
	TAABlend float32        `json:"taaBlend"`

	CamPosition [3]float64 `json:"cameraPosition"`
	CamCenter   [3]float64 `json:"cameraCenter"`
	CamFocal    float64    `json:"cameraFocal"`

	Animations bool `json:"animations"`
}

// Capture builds a snapshot of the live state.
func Capture(a *App, cam *camera.State) Snapshot {
	return Snapshot{
		Version:        SnapshotVersion,
		C:              a.Fractal.C.Array(),
		SliceValue:     a.Slice.Value,
		SliceAmplitude: a.Slice.Amplitude,
		SliceSpeed:     a.Slice.Speed,
		SliceAnimate:   a.Slice.Animate,
		Quality:        a.Quality,
		ClipMode:       int(a.Clip.Mode),
		ClipDistance:   a.Clip.Distance,
		Palette:        a.Color.Palette,
		Dynamics:       a.Color.Dynamics,
		Effect:         a.Color.Effect,
		TAAOn:          a.TAA.Enabled,
		TAABlend:       a.TAA.BlendFactor,
		CamPosition:    [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
		CamCenter:      [3]float64{cam.Center.X, cam.Center.Y, cam.Center.Z},
		CamFocal:       cam.FocalLength,
		Animations:     a.Animations,
	}
}

// Validate checks structural invariants before a snapshot is applied.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.ClipMode < 0 || s.ClipMode > 3 {
		return fmt.Errorf("clip mode %d out of range", s.ClipMode)
	}
	if s.Palette < 0 || s.Palette > 10 {
		return fmt.Errorf("palette %d out of range", s.Palette)
	}
	return nil
}

// Apply writes the snapshot into live state. It validates first and
// leaves both targets untouched on error.
func (s *Snapshot) Apply(a *App, cam *camera.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	a.Fractal.C = qmath.Vec4FromArray(s.C)
	a.Slice.Value = s.SliceValue
	a.Slice.SetAmplitude(s.SliceAmplitude)
	a.Slice.Speed = s.SliceSpeed
	a.Slice.Animate = s.SliceAnimate
	a.Quality = s.Quality
	a.Quality.SetMaxIter(s.Quality.MaxIter)
	a.Clip.Mode = march.ClipMode(s.ClipMode)
	a.Clip.SetDistance(s.ClipDistance)
	a.Color.SetPalette(s.Palette)
	a.Color.Dynamics = s.Dynamics
	a.Color.Effect = s.Effect
	a.TAA.Enabled = s.TAAOn
	a.TAA.BlendFactor = s.TAABlend
	a.TAA.Clamp()
	a.Animations = s.Animations

	cam.Position = qmath.Vec3{X: s.CamPosition[0], Y: s.CamPosition[1], Z: s.CamPosition[2]}
	cam.SetFocal(s.CamFocal)
	cam.LookAt(qmath.Vec3{X: s.CamCenter[0], Y: s.CamCenter[1], Z: s.CamCenter[2]})
	return nil
}

// Encode renders the snapshot as indented JSON.
func (s Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses and validates a snapshot payload.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
