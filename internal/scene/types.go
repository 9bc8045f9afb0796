package scene

import (
	"sort"

	"prop-recenter/internal/mathutil"
)

// Face holds one polygon as parallel index lists into the mesh's position,
// texcoord and normal arrays. Indices are zero-based; -1 means absent.
type Face struct {
	V        []int
	T        []int
	N        []int
	Material string
	Smooth   bool
}

// Mesh holds the geometry of one object: shared vertex arrays plus polygons.
type Mesh struct {
	Positions []mathutil.Vec3
	Texcoords [][2]float64
	Normals   []mathutil.Vec3
	Faces     []Face
}

// LocalBounds returns the axis-aligned box of the mesh in its own frame.
func (m *Mesh) LocalBounds() mathutil.Box {
	var box mathutil.Box
	for _, p := range m.Positions {
		box.Extend(p)
	}
	return box
}

// Object is one placed mesh: a name, geometry, and a TRS world transform.
// Translation is the component the recentering pass mutates; rotation is
// Euler XYZ in degrees, matching scene manifest files.
type Object struct {
	Name        string
	Mesh        *Mesh
	Translation mathutil.Vec3
	RotationDeg mathutil.Vec3
	Scale       mathutil.Vec3
}

// NewObject returns an object with an identity transform.
func NewObject(name string, mesh *Mesh) *Object {
	return &Object{Name: name, Mesh: mesh, Scale: mathutil.Vec3{1, 1, 1}}
}

// WorldMatrix composes the object's transform as translation × rotation × scale,
// the order scene placements are defined in.
func (o *Object) WorldMatrix() mathutil.Mat4 {
	r := mathutil.EulerXYZ(
		mathutil.Deg2Rad(o.RotationDeg[0]),
		mathutil.Deg2Rad(o.RotationDeg[1]),
		mathutil.Deg2Rad(o.RotationDeg[2]),
	)
	rs := mathutil.Mat3Mul(r, mathutil.Mat3Diag(o.Scale[0], o.Scale[1], o.Scale[2]))
	return mathutil.FromMat3Translation(rs, o.Translation)
}

// WorldCorners returns the 8 corners of the object's local bounding box
// mapped through its world transform.
func (o *Object) WorldCorners() [8]mathutil.Vec3 {
	m := o.WorldMatrix()
	corners := o.Mesh.LocalBounds().Corners()
	for i, c := range corners {
		corners[i] = m.MulPoint(c)
	}
	return corners
}

// Scene is an ordered collection of objects plus the materials their
// faces reference.
type Scene struct {
	Objects   []*Object
	Materials map[string]*Material
}

// Material carries the subset of MTL data the exporter and texture copier
// need: the material name and its texture map references.
type Material struct {
	Name     string
	Diffuse  string // map_Kd
	Normal   string // map_Bump / bump
	Ambient  string // map_Ka
	Specular string // map_Ks
}

// Textures returns the material's texture file references, in a stable order,
// skipping empty slots.
func (m *Material) Textures() []string {
	var out []string
	for _, t := range []string{m.Diffuse, m.Normal, m.Ambient, m.Specular} {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TextureFiles returns every texture referenced by the scene's materials,
// deduplicated, in first-seen order across materials sorted by name.
func (s *Scene) TextureFiles() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range s.materialNames() {
		for _, t := range s.Materials[name].Textures() {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (s *Scene) materialNames() []string {
	names := make([]string, 0, len(s.Materials))
	for n := range s.Materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
