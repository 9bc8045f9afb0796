package mathutil

import "fmt"

// Named world axes with sign, as they appear in exporter options ("X", "-Z", ...).
var axisVectors = map[string]Vec3{
	"X":  {1, 0, 0},
	"-X": {-1, 0, 0},
	"Y":  {0, 1, 0},
	"-Y": {0, -1, 0},
	"Z":  {0, 0, 1},
	"-Z": {0, 0, -1},
}

// AxisVector resolves a signed axis name to a unit vector.
func AxisVector(name string) (Vec3, error) {
	v, ok := axisVectors[name]
	if !ok {
		return Vec3{}, fmt.Errorf("mathutil: unknown axis %q", name)
	}
	return v, nil
}

// AxisConversion builds the rotation that maps a Z-up scene onto a target
// convention named by its forward and up axes. The scene's +Y axis lands on
// `forward` and its +Z axis on `up`; the image of +X is chosen so the result
// stays a proper rotation (det +1, no mirroring).
//
// The default export convention, forward "-Z" and up "Y", yields
// (x, y, z) → (x, z, -y), the usual Z-up to Y-up conversion.
func AxisConversion(forward, up string) (Mat3, error) {
	f, err := AxisVector(forward)
	if err != nil {
		return Mat3{}, err
	}
	u, err := AxisVector(up)
	if err != nil {
		return Mat3{}, err
	}
	if f.Dot(u) != 0 {
		return Mat3{}, fmt.Errorf("mathutil: axes %q and %q are not perpendicular", forward, up)
	}
	return Mat3FromColumns(f.Cross(u), f, u), nil
}
