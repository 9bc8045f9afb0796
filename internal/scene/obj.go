package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"prop-recenter/internal/mathutil"
)

// LoadOBJ reads a Wavefront OBJ file and splits it into one object per
// `o`/`g` record. Geometry before the first record becomes a "default"
// object. Referenced mtllib files are parsed for texture maps; a missing
// MTL is not an error, the scene just has no materials.
func LoadOBJ(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	sc, mtlFiles, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, mtl := range mtlFiles {
		mats, err := loadMTL(filepath.Join(dir, mtl))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scene: mtllib %s: %w", mtl, err)
		}
		for name, m := range mats {
			sc.Materials[name] = m
		}
	}
	return sc, nil
}

// objBuilder accumulates faces for one named object. OBJ vertex arrays are
// global to the file, so each object remaps the global indices it uses into
// a compact local mesh.
type objBuilder struct {
	name string
	mesh *Mesh
	vmap map[int]int
	tmap map[int]int
	nmap map[int]int
}

func newObjBuilder(name string) *objBuilder {
	return &objBuilder{
		name: name,
		mesh: &Mesh{},
		vmap: map[int]int{},
		tmap: map[int]int{},
		nmap: map[int]int{},
	}
}

func parseOBJ(r io.Reader) (*Scene, []string, error) {
	var (
		vs  []mathutil.Vec3
		vts [][2]float64
		vns []mathutil.Vec3

		builders []*objBuilder
		cur      *objBuilder
		material string
		smooth   bool
		mtlFiles []string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: short vertex", lineNo)
			}
			vs = append(vs, mathutil.Vec3{pf(fields[1]), pf(fields[2]), pf(fields[3])})
		case "vt":
			if len(fields) < 3 {
				return nil, nil, fmt.Errorf("line %d: short texcoord", lineNo)
			}
			vts = append(vts, [2]float64{pf(fields[1]), pf(fields[2])})
		case "vn":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: short normal", lineNo)
			}
			vns = append(vns, mathutil.Vec3{pf(fields[1]), pf(fields[2]), pf(fields[3])})
		case "o", "g":
			name := "default"
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			cur = newObjBuilder(name)
			builders = append(builders, cur)
		case "usemtl":
			if len(fields) > 1 {
				material = fields[1]
			}
		case "s":
			smooth = len(fields) > 1 && fields[1] != "off" && fields[1] != "0"
		case "mtllib":
			mtlFiles = append(mtlFiles, fields[1:]...)
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: face needs 3+ vertices", lineNo)
			}
			if cur == nil {
				cur = newObjBuilder("default")
				builders = append(builders, cur)
			}
			face := Face{Material: material, Smooth: smooth}
			for _, arg := range fields[1:] {
				vi, ti, ni, err := parseFaceVertex(arg, len(vs), len(vts), len(vns))
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face.V = append(face.V, cur.localIndex(cur.vmap, vi, func(i int) {
					cur.mesh.Positions = append(cur.mesh.Positions, vs[i])
				}))
				if ti >= 0 {
					face.T = append(face.T, cur.localIndex(cur.tmap, ti, func(i int) {
						cur.mesh.Texcoords = append(cur.mesh.Texcoords, vts[i])
					}))
				} else {
					face.T = append(face.T, -1)
				}
				if ni >= 0 {
					face.N = append(face.N, cur.localIndex(cur.nmap, ni, func(i int) {
						cur.mesh.Normals = append(cur.mesh.Normals, vns[i])
					}))
				} else {
					face.N = append(face.N, -1)
				}
			}
			cur.mesh.Faces = append(cur.mesh.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	sc := &Scene{Materials: map[string]*Material{}}
	for _, b := range builders {
		if len(b.mesh.Faces) == 0 {
			continue
		}
		sc.Objects = append(sc.Objects, NewObject(b.name, b.mesh))
	}
	return sc, mtlFiles, nil
}

// localIndex maps a global OBJ array index to the builder's mesh, copying
// the element on first use.
func (b *objBuilder) localIndex(m map[int]int, global int, copyElem func(int)) int {
	if local, ok := m[global]; ok {
		return local
	}
	copyElem(global)
	local := len(m)
	m[global] = local
	return local
}

// parseFaceVertex parses one face corner ("v", "v/vt", "v//vn", "v/vt/vn").
// Returns zero-based indices, -1 for absent slots. Negative OBJ indices count
// from the end of the respective array.
func parseFaceVertex(s string, nv, nt, nn int) (vi, ti, ni int, err error) {
	parts := strings.Split(s, "/")
	vi, err = objIndex(parts[0], nv)
	if err != nil || vi < 0 {
		return 0, 0, 0, fmt.Errorf("bad vertex index %q", s)
	}
	ti, ni = -1, -1
	if len(parts) > 1 && parts[1] != "" {
		if ti, err = objIndex(parts[1], nt); err != nil {
			return 0, 0, 0, fmt.Errorf("bad texcoord index %q", s)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ni, err = objIndex(parts[2], nn); err != nil {
			return 0, 0, 0, fmt.Errorf("bad normal index %q", s)
		}
	}
	return vi, ti, ni, nil
}

func objIndex(s string, length int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	if n < 0 {
		n += length
	} else {
		n--
	}
	if n < 0 || n >= length {
		return -1, fmt.Errorf("index %s out of range", s)
	}
	return n, nil
}

func pf(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// loadMTL parses the texture map statements out of an MTL file.
func loadMTL(path string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*Material{}
	var cur *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) < 2 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "newmtl":
			cur = &Material{Name: fields[1]}
			mats[fields[1]] = cur
		case "map_kd":
			if cur != nil {
				cur.Diffuse = fields[len(fields)-1]
			}
		case "map_bump", "bump":
			if cur != nil {
				cur.Normal = fields[len(fields)-1]
			}
		case "map_ka":
			if cur != nil {
				cur.Ambient = fields[len(fields)-1]
			}
		case "map_ks":
			if cur != nil {
				cur.Specular = fields[len(fields)-1]
			}
		}
	}
	return mats, scanner.Err()
}
