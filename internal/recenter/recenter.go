// Package recenter moves a prop scene so its footprint base sits at the
// world origin: the combined bounding box is centered in X/Y and its bottom
// face lands on z = 0. The asymmetric convention (midpoint in X/Y, minimum
// in Z) is deliberate — props like trees get a pivot at the base center so
// they can be placed on a ground plane without floating or clipping.
package recenter

import (
	"errors"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/scene"
)

// ErrEmptyScene is returned when a scene holds no mesh objects: an empty
// set has no bounding box, so the run must abort before any mutation.
var ErrEmptyScene = errors.New("recenter: no mesh objects in scene")

// UnionBounds returns the world-space bounding box enclosing every object:
// the componentwise min/max over all 8 transformed corners of each object's
// local box. Pure with respect to the current transforms.
func UnionBounds(objects []*scene.Object) (mathutil.Box, error) {
	if len(objects) == 0 {
		return mathutil.Box{}, ErrEmptyScene
	}
	var box mathutil.Box
	for _, o := range objects {
		for _, corner := range o.WorldCorners() {
			box.Extend(corner)
		}
	}
	return box, nil
}

// Offset derives the translation that recenters a bounding box: X and Y move
// by the negated midpoint, Z by the negated minimum.
func Offset(box mathutil.Box) mathutil.Vec3 {
	return mathutil.Vec3{
		-(box.Min[0] + box.Max[0]) / 2,
		-(box.Min[1] + box.Max[1]) / 2,
		-box.Min[2],
	}
}

// Apply adds the offset to each object's world translation in place.
// Rotation and scale are untouched; local vertex data is not modified.
// Applying the same precomputed offset twice doubles the translation —
// recompute from current bounds instead of reusing an offset.
func Apply(objects []*scene.Object, offset mathutil.Vec3) {
	for _, o := range objects {
		o.Translation = o.Translation.Add(offset)
	}
}
