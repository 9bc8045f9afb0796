package export

import (
	"fmt"

	"prop-recenter/internal/mathutil"
)

// Texture path modes.
const (
	PathModeCopy = "copy" // copy referenced textures next to the export
	PathModeSkip = "skip" // leave texture references as-is, copy nothing
)

// Smoothing modes written into the OBJ.
const (
	SmoothingFace = "face"
	SmoothingOff  = "off"
)

// Options configure one export: global scale (unit handling folded in),
// target axis convention, smoothing groups, texture handling, and optional
// mesh decimation.
type Options struct {
	ScaleFactor   float64
	AxisForward   string
	AxisUp        string
	Smoothing     string
	PathMode      string
	SimplifyRatio float64 // 0 or 1 disables; 0.5 keeps ~half the triangles
}

// DefaultOptions matches the conventional game-engine target: unit scale,
// -Z forward / Y up, face smoothing, textures copied alongside the file.
func DefaultOptions() Options {
	return Options{
		ScaleFactor: 1.0,
		AxisForward: "-Z",
		AxisUp:      "Y",
		Smoothing:   SmoothingFace,
		PathMode:    PathModeCopy,
	}
}

// Validate checks the option values and returns the axis conversion they
// describe. Option errors are fatal: the exporter never retries.
func (o Options) Validate() (mathutil.Mat3, error) {
	if o.ScaleFactor <= 0 {
		return mathutil.Mat3{}, fmt.Errorf("export: scale factor must be positive, got %g", o.ScaleFactor)
	}
	if o.Smoothing != SmoothingFace && o.Smoothing != SmoothingOff {
		return mathutil.Mat3{}, fmt.Errorf("export: unknown smoothing mode %q", o.Smoothing)
	}
	if o.PathMode != PathModeCopy && o.PathMode != PathModeSkip {
		return mathutil.Mat3{}, fmt.Errorf("export: unknown path mode %q", o.PathMode)
	}
	if o.SimplifyRatio < 0 || o.SimplifyRatio > 1 {
		return mathutil.Mat3{}, fmt.Errorf("export: simplify ratio must be in [0,1], got %g", o.SimplifyRatio)
	}
	axis, err := mathutil.AxisConversion(o.AxisForward, o.AxisUp)
	if err != nil {
		return mathutil.Mat3{}, fmt.Errorf("export: %w", err)
	}
	return axis, nil
}
