package export

import (
	"github.com/fogleman/simplify"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/scene"
)

// decimate runs quadric-error mesh simplification on each object, keeping
// roughly ratio of the triangles. The decimator works on bare triangle soup,
// so texcoords and normals are dropped; faces keep the object's first
// material so the MTL reference survives. Inputs are not modified.
func decimate(objects []*scene.Object, ratio float64) []*scene.Object {
	out := make([]*scene.Object, len(objects))
	for i, o := range objects {
		out[i] = &scene.Object{
			Name:        o.Name,
			Mesh:        decimateMesh(o.Mesh, ratio),
			Translation: o.Translation,
			RotationDeg: o.RotationDeg,
			Scale:       o.Scale,
		}
	}
	return out
}

func decimateMesh(m *scene.Mesh, ratio float64) *scene.Mesh {
	material := ""
	smooth := false
	if len(m.Faces) > 0 {
		material = m.Faces[0].Material
		smooth = m.Faces[0].Smooth
	}

	var tris []*simplify.Triangle
	for _, face := range m.Faces {
		// Fan-triangulate polygons; the decimator only takes triangles.
		for i := 1; i < len(face.V)-1; i++ {
			a := m.Positions[face.V[0]]
			b := m.Positions[face.V[i]]
			c := m.Positions[face.V[i+1]]
			tris = append(tris, simplify.NewTriangle(
				simplify.Vector{X: a[0], Y: a[1], Z: a[2]},
				simplify.Vector{X: b[0], Y: b[1], Z: b[2]},
				simplify.Vector{X: c[0], Y: c[1], Z: c[2]},
			))
		}
	}

	reduced := simplify.NewMesh(tris).Simplify(ratio)

	mesh := &scene.Mesh{}
	index := map[[3]float64]int{}
	vertex := func(v simplify.Vector) int {
		key := [3]float64{v.X, v.Y, v.Z}
		if i, ok := index[key]; ok {
			return i
		}
		i := len(mesh.Positions)
		index[key] = i
		mesh.Positions = append(mesh.Positions, mathutil.Vec3(key))
		return i
	}
	for _, t := range reduced.Triangles {
		mesh.Faces = append(mesh.Faces, scene.Face{
			V:        []int{vertex(t.V1), vertex(t.V2), vertex(t.V3)},
			T:        []int{-1, -1, -1},
			N:        []int{-1, -1, -1},
			Material: material,
			Smooth:   smooth,
		})
	}
	return mesh
}
