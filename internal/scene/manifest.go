package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"prop-recenter/internal/mathutil"
)

// manifestSchema constrains scene manifest files before decoding, so a typo
// in a transform field fails loudly instead of silently placing at origin.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["objects"],
  "additionalProperties": false,
  "properties": {
    "objects": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["mesh"],
        "additionalProperties": false,
        "properties": {
          "mesh": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "position": {"$ref": "#/$defs/vec3"},
          "rotation_deg": {"$ref": "#/$defs/vec3"},
          "scale": {"$ref": "#/$defs/vec3"}
        }
      }
    }
  },
  "$defs": {
    "vec3": {
      "type": "array",
      "items": {"type": "number"},
      "minItems": 3,
      "maxItems": 3
    }
  }
}`

var compiledManifestSchema = jsonschema.MustCompileString("manifest.schema.json", manifestSchema)

type manifestFile struct {
	Objects []manifestEntry `json:"objects"`
}

type manifestEntry struct {
	Mesh        string      `json:"mesh"`
	Name        string      `json:"name"`
	Position    *[3]float64 `json:"position"`
	RotationDeg *[3]float64 `json:"rotation_deg"`
	Scale       *[3]float64 `json:"scale"`
}

// LoadManifest reads a JSON scene manifest that places OBJ mesh files with
// per-entry transforms. Mesh paths are resolved relative to the manifest.
// Every object in a referenced OBJ receives the entry's transform; when the
// entry is named, object names are prefixed "entry/object".
func LoadManifest(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if err := compiledManifestSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("scene: manifest %s: %w", path, err)
	}

	var mf manifestFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	out := &Scene{Materials: map[string]*Material{}}
	for _, entry := range mf.Objects {
		sub, err := LoadOBJ(filepath.Join(dir, entry.Mesh))
		if err != nil {
			return nil, err
		}
		for _, o := range sub.Objects {
			if entry.Position != nil {
				o.Translation = mathutil.Vec3(*entry.Position)
			}
			if entry.RotationDeg != nil {
				o.RotationDeg = mathutil.Vec3(*entry.RotationDeg)
			}
			if entry.Scale != nil {
				o.Scale = mathutil.Vec3(*entry.Scale)
			}
			if entry.Name != "" {
				o.Name = entry.Name + "/" + o.Name
			}
			out.Objects = append(out.Objects, o)
		}
		for name, m := range sub.Materials {
			out.Materials[name] = m
		}
	}
	return out, nil
}

// Load opens a scene description: a JSON manifest when the extension is
// .json, a plain OBJ file otherwise.
func Load(path string) (*Scene, error) {
	if filepath.Ext(path) == ".json" {
		return LoadManifest(path)
	}
	return LoadOBJ(path)
}
