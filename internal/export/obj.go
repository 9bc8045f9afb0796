package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/scene"
)

// Result describes what an export produced.
type Result struct {
	OBJPath  string
	MTLPath  string
	Objects  int
	Vertices int
	Faces    int
	Textures []string // texture files referenced by the written MTL
}

// WriteOBJ serializes the scene's objects to an OBJ file (plus an MTL file
// when the scene has materials) under dir with the given base name. Object
// transforms are applied on the way out, then the axis conversion and scale
// factor from opts. Any failure is fatal to the run.
func WriteOBJ(sc *scene.Scene, dir, name string, opts Options) (Result, error) {
	axis, err := opts.Validate()
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", dir, err)
	}

	objects := sc.Objects
	if opts.SimplifyRatio > 0 && opts.SimplifyRatio < 1 {
		objects = decimate(objects, opts.SimplifyRatio)
	}

	res := Result{
		OBJPath: filepath.Join(dir, name+".obj"),
		Objects: len(objects),
	}

	hasMaterials := len(sc.Materials) > 0
	if hasMaterials {
		res.MTLPath = filepath.Join(dir, name+".mtl")
		texs, err := writeMTL(res.MTLPath, sc.Materials, opts)
		if err != nil {
			return Result{}, err
		}
		res.Textures = texs
	}

	f, err := os.Create(res.OBJPath)
	if err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", res.OBJPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# exported by prop-recenter\n")
	if hasMaterials {
		fmt.Fprintf(w, "mtllib %s\n", filepath.Base(res.MTLPath))
	}

	// OBJ indices are global to the file and 1-based.
	vOff, tOff, nOff := 1, 1, 1
	for _, o := range objects {
		m := o.WorldMatrix()
		fmt.Fprintf(w, "o %s\n", sanitizeName(o.Name))

		for _, p := range o.Mesh.Positions {
			wp := axis.MulVec3(m.MulPoint(p)).Scale(opts.ScaleFactor)
			fmt.Fprintf(w, "v %g %g %g\n", wp[0], wp[1], wp[2])
			res.Vertices++
		}
		for _, t := range o.Mesh.Texcoords {
			fmt.Fprintf(w, "vt %g %g\n", t[0], t[1])
		}
		nm := mathutil.Mat3Mul(axis, m.Mat3Part().Inverse().Transpose())
		for _, n := range o.Mesh.Normals {
			wn := nm.MulVec3(n).Normalize()
			fmt.Fprintf(w, "vn %g %g %g\n", wn[0], wn[1], wn[2])
		}

		material := ""
		smooth := false
		first := true
		for _, face := range o.Mesh.Faces {
			if first || face.Material != material {
				material = face.Material
				if material != "" && hasMaterials {
					fmt.Fprintf(w, "usemtl %s\n", material)
				}
			}
			wantSmooth := opts.Smoothing == SmoothingFace && face.Smooth
			if first || wantSmooth != smooth {
				smooth = wantSmooth
				if smooth {
					fmt.Fprintf(w, "s 1\n")
				} else {
					fmt.Fprintf(w, "s off\n")
				}
			}
			first = false

			w.WriteString("f")
			for i := range face.V {
				w.WriteString(" ")
				w.WriteString(faceCorner(face, i, vOff, tOff, nOff))
			}
			w.WriteString("\n")
			res.Faces++
		}

		vOff += len(o.Mesh.Positions)
		tOff += len(o.Mesh.Texcoords)
		nOff += len(o.Mesh.Normals)
	}

	if err := w.Flush(); err != nil {
		return Result{}, fmt.Errorf("export: write %s: %w", res.OBJPath, err)
	}
	return res, nil
}

func faceCorner(face scene.Face, i, vOff, tOff, nOff int) string {
	v := fmt.Sprintf("%d", face.V[i]+vOff)
	t, n := "", ""
	if face.T[i] >= 0 {
		t = fmt.Sprintf("%d", face.T[i]+tOff)
	}
	if face.N[i] >= 0 {
		n = fmt.Sprintf("%d", face.N[i]+nOff)
	}
	if n != "" {
		return v + "/" + t + "/" + n
	}
	if t != "" {
		return v + "/" + t
	}
	return v
}

func writeMTL(path string, materials map[string]*scene.Material, opts Options) ([]string, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(materials))
	for n := range materials {
		names = append(names, n)
	}
	sort.Strings(names)

	w := bufio.NewWriter(f)
	var textures []string
	seen := map[string]bool{}
	for _, name := range names {
		mat := materials[name]
		fmt.Fprintf(w, "newmtl %s\n", mat.Name)
		// With path mode "copy" the textures end up next to the export,
		// so references are rewritten to bare filenames.
		writeMap := func(key, ref string) {
			if ref == "" {
				return
			}
			if opts.PathMode == PathModeCopy {
				ref = filepath.Base(ref)
			}
			fmt.Fprintf(w, "%s %s\n", key, ref)
		}
		writeMap("map_Kd", mat.Diffuse)
		writeMap("map_Bump", mat.Normal)
		writeMap("map_Ka", mat.Ambient)
		writeMap("map_Ks", mat.Specular)
		for _, t := range mat.Textures() {
			if !seen[t] {
				seen[t] = true
				textures = append(textures, t)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("export: write %s: %w", path, err)
	}
	return textures, nil
}

func sanitizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
