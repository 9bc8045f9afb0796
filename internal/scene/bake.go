package scene

import "prop-recenter/internal/mathutil"

// BakeTransforms folds each object's world transform into its vertex data
// and resets the transform to identity. Positions go through the full affine
// map; normals through the inverse-transpose of the linear part so
// non-uniform scale does not skew them.
//
// Callers should re-check world bounds afterwards rather than trust the
// bake: the pipeline asserts its placement invariants via recenter.Verify.
func BakeTransforms(objects []*Object) {
	for _, o := range objects {
		m := o.WorldMatrix()
		if m.IsIdentity() {
			continue
		}
		for i, p := range o.Mesh.Positions {
			o.Mesh.Positions[i] = m.MulPoint(p)
		}
		nm := m.Mat3Part().Inverse().Transpose()
		for i, n := range o.Mesh.Normals {
			o.Mesh.Normals[i] = nm.MulVec3(n).Normalize()
		}
		o.Translation = mathutil.Vec3{}
		o.RotationDeg = mathutil.Vec3{}
		o.Scale = mathutil.Vec3{1, 1, 1}
	}
}
