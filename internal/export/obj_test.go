package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/recenter"
	"prop-recenter/internal/scene"
)

func triangleScene() *scene.Scene {
	mesh := &scene.Mesh{
		Positions: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 2}},
		Normals:   []mathutil.Vec3{{0, 0, 1}},
		Faces: []scene.Face{
			{V: []int{0, 1, 2}, T: []int{-1, -1, -1}, N: []int{0, 0, 0}, Material: "bark", Smooth: true},
			{V: []int{0, 1, 3}, T: []int{-1, -1, -1}, N: []int{-1, -1, -1}, Material: "bark"},
		},
	}
	return &scene.Scene{
		Objects: []*scene.Object{scene.NewObject("Trunk", mesh)},
		Materials: map[string]*scene.Material{
			"bark": {Name: "bark", Diffuse: "textures/bark_albedo.tif"},
		},
	}
}

func TestWriteOBJRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sc := triangleScene()

	opts := DefaultOptions()
	// Identity axis mapping so coordinates survive the round trip untouched.
	opts.AxisForward = "Y"
	opts.AxisUp = "Z"

	res, err := WriteOBJ(sc, dir, "trunk", opts)
	if err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if res.Objects != 1 || res.Vertices != 4 || res.Faces != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Textures) != 1 || res.Textures[0] != "textures/bark_albedo.tif" {
		t.Errorf("textures = %v", res.Textures)
	}

	back, err := scene.LoadOBJ(res.OBJPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(back.Objects) != 1 {
		t.Fatalf("reloaded objects = %d, want 1", len(back.Objects))
	}
	o := back.Objects[0]
	if o.Name != "Trunk" {
		t.Errorf("name = %q", o.Name)
	}
	bounds := o.Mesh.LocalBounds()
	if bounds.Min != (mathutil.Vec3{0, 0, 0}) || bounds.Max != (mathutil.Vec3{1, 1, 2}) {
		t.Errorf("bounds = %v..%v", bounds.Min, bounds.Max)
	}
	if got := o.Mesh.Faces[0].Material; got != "bark" {
		t.Errorf("material = %q, want bark", got)
	}
	if !o.Mesh.Faces[0].Smooth || o.Mesh.Faces[1].Smooth {
		t.Errorf("smoothing flags = %v %v, want true false",
			o.Mesh.Faces[0].Smooth, o.Mesh.Faces[1].Smooth)
	}

	// MTL rewrites texture references to bare filenames in copy mode.
	mtl, err := os.ReadFile(res.MTLPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mtl), "map_Kd bark_albedo.tif") {
		t.Errorf("MTL missing rewritten map_Kd:\n%s", mtl)
	}
}

func TestWriteOBJAxisAndScale(t *testing.T) {
	dir := t.TempDir()
	sc := triangleScene()

	opts := DefaultOptions() // -Z forward, Y up: (x, y, z) -> (x, z, -y)
	opts.ScaleFactor = 100

	res, err := WriteOBJ(sc, dir, "scaled", opts)
	if err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	back, err := scene.LoadOBJ(res.OBJPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	bounds := back.Objects[0].Mesh.LocalBounds()
	// Source spans X 0..1, Y 0..1, Z 0..2 → target X 0..100, Y 0..200, Z -100..0.
	wantMin := mathutil.Vec3{0, 0, -100}
	wantMax := mathutil.Vec3{100, 200, 0}
	if bounds.Min != wantMin || bounds.Max != wantMax {
		t.Errorf("bounds = %v..%v, want %v..%v", bounds.Min, bounds.Max, wantMin, wantMax)
	}
}

func TestWriteOBJAppliesTransforms(t *testing.T) {
	dir := t.TempDir()
	sc := triangleScene()
	sc.Objects[0].Translation = mathutil.Vec3{5, 0, 0}

	opts := DefaultOptions()
	opts.AxisForward = "Y"
	opts.AxisUp = "Z"

	res, err := WriteOBJ(sc, dir, "moved", opts)
	if err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	back, err := scene.LoadOBJ(res.OBJPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	bounds := back.Objects[0].Mesh.LocalBounds()
	if bounds.Min[0] != 5 || bounds.Max[0] != 6 {
		t.Errorf("X extent = [%g, %g], want [5, 6]", bounds.Min[0], bounds.Max[0])
	}
}

func TestWriteOBJOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"zero scale", func(o *Options) { o.ScaleFactor = 0 }},
		{"bad smoothing", func(o *Options) { o.Smoothing = "phong" }},
		{"bad path mode", func(o *Options) { o.PathMode = "embed" }},
		{"bad simplify ratio", func(o *Options) { o.SimplifyRatio = 2 }},
		{"parallel axes", func(o *Options) { o.AxisForward = "Y"; o.AxisUp = "-Y" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			if _, err := WriteOBJ(triangleScene(), t.TempDir(), "x", opts); err == nil {
				t.Error("want option error, got nil")
			}
		})
	}
}

func TestWriteOBJSimplify(t *testing.T) {
	dir := t.TempDir()

	// A dense fan around the origin decimates well.
	mesh := &scene.Mesh{}
	n := 64
	mesh.Positions = append(mesh.Positions, mathutil.Vec3{0, 0, 0})
	for i := 0; i <= n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		mesh.Positions = append(mesh.Positions, mathutil.Vec3{math.Cos(a), math.Sin(a), 0})
	}
	for i := 1; i <= n; i++ {
		mesh.Faces = append(mesh.Faces, scene.Face{
			V: []int{0, i, i + 1}, T: []int{-1, -1, -1}, N: []int{-1, -1, -1},
		})
	}
	sc := &scene.Scene{Objects: []*scene.Object{scene.NewObject("disc", mesh)}}

	opts := DefaultOptions()
	opts.SimplifyRatio = 0.25

	res, err := WriteOBJ(sc, dir, "disc", opts)
	if err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if res.Faces >= n {
		t.Errorf("faces after simplify = %d, want < %d", res.Faces, n)
	}
	if res.Faces == 0 {
		t.Error("simplification removed all faces")
	}
}

func TestWriteManifestFile(t *testing.T) {
	dir := t.TempDir()
	sc := triangleScene()

	before, err := recenter.UnionBounds(sc.Objects)
	if err != nil {
		t.Fatal(err)
	}
	offset := recenter.Offset(before)
	recenter.Apply(sc.Objects, offset)
	after, _ := recenter.UnionBounds(sc.Objects)
	rep, _ := recenter.Verify(sc.Objects)

	m := BuildManifest("tree.obj", sc, before, after, offset, rep,
		Result{OBJPath: filepath.Join(dir, "tree.obj")}, []string{"bark_albedo.tif"})
	path := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"bounds_before"`, `"offset"`, `"Trunk"`, `"bark_albedo.tif"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("manifest missing %s", want)
		}
	}
}
