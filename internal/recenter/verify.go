package recenter

import (
	"github.com/beorn7/floats"

	"prop-recenter/internal/scene"
)

// Placement tolerances: the bottom face must land on z = 0 almost exactly;
// the centroid accumulates more rounding across objects.
const (
	MinZTolerance     = 1e-6
	CentroidTolerance = 1e-4
)

// Report holds the re-evaluated world-space placement of a scene: the
// minimum corner Z and the X/Y center of the combined bounding box.
type Report struct {
	MinZ      float64
	CentroidX float64
	CentroidY float64
	Corners   int
}

// Verify re-evaluates every object's world-space box corners and reduces
// them to the combined bounds. Run it after recentering (and again after
// baking) to assert the placement invariants instead of trusting the
// upstream steps.
func Verify(objects []*scene.Object) (Report, error) {
	box, err := UnionBounds(objects)
	if err != nil {
		return Report{}, err
	}
	center := box.Center()
	return Report{
		MinZ:      box.Min[2],
		CentroidX: center[0],
		CentroidY: center[1],
		Corners:   8 * len(objects),
	}, nil
}

// Centered reports whether the placement is within tolerance of the target:
// bottom at z = 0, footprint centered on the X/Y origin.
func (r Report) Centered() bool {
	return floats.AlmostEqual(r.MinZ, 0, MinZTolerance) &&
		floats.AlmostEqual(r.CentroidX, 0, CentroidTolerance) &&
		floats.AlmostEqual(r.CentroidY, 0, CentroidTolerance)
}
