package mathutil

import "math"

// Box is an axis-aligned bounding box. The zero value is empty; Extend the
// box with at least one point before reading Min/Max.
type Box struct {
	Min, Max Vec3
	set      bool
}

// BoxOf returns a box spanning min..max.
func BoxOf(min, max Vec3) Box {
	return Box{Min: min, Max: max, set: true}
}

// Empty reports whether the box has never been extended.
func (b Box) Empty() bool {
	return !b.set
}

// Extend grows the box to include p.
func (b *Box) Extend(p Vec3) {
	if !b.set {
		b.Min, b.Max = p, p
		b.set = true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union grows the box to include all of o. A union with an empty box is a no-op.
func (b *Box) Union(o Box) {
	if o.Empty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Corners returns the 8 corner points of the box.
func (b Box) Corners() [8]Vec3 {
	min, max := b.Min, b.Max
	return [8]Vec3{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{min[0], max[1], min[2]},
		{max[0], max[1], min[2]},
		{min[0], min[1], max[2]},
		{max[0], min[1], max[2]},
		{min[0], max[1], max[2]},
		{max[0], max[1], max[2]},
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 {
	s := b.Size()
	return math.Sqrt(s[0]*s[0] + s[1]*s[1] + s[2]*s[2])
}
