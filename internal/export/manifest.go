package export

import (
	"encoding/json"
	"fmt"
	"os"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/recenter"
	"prop-recenter/internal/scene"
)

// Manifest records what one run did: the objects exported, the bounds before
// and after recentering, the applied offset, and the verification numbers.
type Manifest struct {
	Scene    string          `json:"scene"`
	Objects  []ManifestEntry `json:"objects"`
	Before   ManifestBounds  `json:"bounds_before"`
	After    ManifestBounds  `json:"bounds_after"`
	Offset   [3]float64      `json:"offset"`
	MinZ     float64         `json:"verify_min_z"`
	Centroid [2]float64      `json:"verify_centroid_xy"`
	OBJ      string          `json:"obj"`
	MTL      string          `json:"mtl,omitempty"`
	Textures []string        `json:"textures,omitempty"`
}

// ManifestEntry describes one exported object.
type ManifestEntry struct {
	Name     string `json:"name"`
	Vertices int    `json:"vertices"`
	Faces    int    `json:"faces"`
}

// ManifestBounds is a bounding box in manifest form.
type ManifestBounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

func boundsOf(b mathutil.Box) ManifestBounds {
	return ManifestBounds{Min: [3]float64(b.Min), Max: [3]float64(b.Max)}
}

// BuildManifest assembles the run manifest from the pipeline's intermediate
// results.
func BuildManifest(scenePath string, sc *scene.Scene, before, after mathutil.Box,
	offset mathutil.Vec3, rep recenter.Report, res Result, copied []string) Manifest {

	m := Manifest{
		Scene:    scenePath,
		Before:   boundsOf(before),
		After:    boundsOf(after),
		Offset:   [3]float64(offset),
		MinZ:     rep.MinZ,
		Centroid: [2]float64{rep.CentroidX, rep.CentroidY},
		OBJ:      res.OBJPath,
		MTL:      res.MTLPath,
		Textures: copied,
	}
	for _, o := range sc.Objects {
		m.Objects = append(m.Objects, ManifestEntry{
			Name:     o.Name,
			Vertices: len(o.Mesh.Positions),
			Faces:    len(o.Mesh.Faces),
		})
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: write manifest %s: %w", path, err)
	}
	return nil
}
