package scene

import (
	"os"
	"path/filepath"
	"testing"

	"prop-recenter/internal/mathutil"
)

const testCubeOBJ = `o Cube
v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
f 1 2 3 4
f 5 6 7 8
`

func writeSceneFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	dir := writeSceneFiles(t, map[string]string{
		"cube.obj": testCubeOBJ,
		"scene.json": `{
  "objects": [
    {"mesh": "cube.obj", "name": "a", "position": [10, 5, 2]},
    {"mesh": "cube.obj", "name": "b", "position": [0, 0, 0], "rotation_deg": [0, 0, 45], "scale": [2, 2, 2]}
  ]
}`,
	})

	sc, err := LoadManifest(filepath.Join(dir, "scene.json"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("objects = %d, want 2", len(sc.Objects))
	}

	a := sc.Objects[0]
	if a.Name != "a/Cube" {
		t.Errorf("name = %q, want a/Cube", a.Name)
	}
	if want := (mathutil.Vec3{10, 5, 2}); a.Translation != want {
		t.Errorf("translation = %v, want %v", a.Translation, want)
	}

	b := sc.Objects[1]
	if b.RotationDeg[2] != 45 || b.Scale[0] != 2 {
		t.Errorf("b transform = rot %v scale %v", b.RotationDeg, b.Scale)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := writeSceneFiles(t, map[string]string{
		"cube.obj":   testCubeOBJ,
		"scene.json": `{"objects": [{"mesh": "cube.obj"}]}`,
	})

	sc, err := LoadManifest(filepath.Join(dir, "scene.json"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	o := sc.Objects[0]
	if o.Translation != (mathutil.Vec3{}) || o.Scale != (mathutil.Vec3{1, 1, 1}) {
		t.Errorf("defaults: translation %v scale %v", o.Translation, o.Scale)
	}
	if o.Name != "Cube" {
		t.Errorf("unnamed entry should keep object name, got %q", o.Name)
	}
}

func TestLoadManifestSchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no objects", `{}`},
		{"empty objects", `{"objects": []}`},
		{"missing mesh", `{"objects": [{"name": "x"}]}`},
		{"bad vec length", `{"objects": [{"mesh": "cube.obj", "position": [1, 2]}]}`},
		{"bad vec type", `{"objects": [{"mesh": "cube.obj", "position": ["a", "b", "c"]}]}`},
		{"unknown field", `{"objects": [{"mesh": "cube.obj", "rotation": [0, 0, 0]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSceneFiles(t, map[string]string{
				"cube.obj":   testCubeOBJ,
				"scene.json": tt.body,
			})
			if _, err := LoadManifest(filepath.Join(dir, "scene.json")); err == nil {
				t.Error("want schema error, got nil")
			}
		})
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := writeSceneFiles(t, map[string]string{
		"cube.obj":   testCubeOBJ,
		"scene.json": `{"objects": [{"mesh": "cube.obj"}]}`,
	})

	for _, name := range []string{"cube.obj", "scene.json"} {
		sc, err := Load(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if len(sc.Objects) != 1 {
			t.Errorf("Load(%s) objects = %d, want 1", name, len(sc.Objects))
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("want error for missing scene")
	}
}
