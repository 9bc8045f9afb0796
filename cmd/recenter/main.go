package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prop-recenter/internal/assets"
	"prop-recenter/internal/config"
	"prop-recenter/internal/export"
	"prop-recenter/internal/recenter"
	"prop-recenter/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	scenePath := flag.String("scene", "", "Scene file (.obj or .json manifest)")
	exportDir := flag.String("output", "", "Export directory (default: <scene dir>/export)")
	exportName := flag.String("name", "", "Export base name (default: scene file name)")
	textureDir := flag.String("textures", "", "Texture source directory (default: scene dir)")
	scale := flag.Float64("scale", 0, "Global export scale factor (default: 1.0)")
	simplify := flag.Float64("simplify", 0, "Mesh simplification ratio 0-1 (default: off)")
	previews := flag.Bool("previews", false, "Write WebP thumbnails of copied textures")
	dryRun := flag.Bool("dry-run", false, "Compute and print bounds/offset without writing anything")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:      *scenePath,
		ExportDir:  *exportDir,
		ExportName: *exportName,
		TextureDir: *textureDir,
		Scale:      *scale,
		Simplify:   *simplify,
		Previews:   *previews,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	// Load scene
	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d mesh objects:\n", len(sc.Objects))
	for _, o := range sc.Objects {
		fmt.Printf("  - %s: position=(%.3f, %.3f, %.3f)\n",
			o.Name, o.Translation[0], o.Translation[1], o.Translation[2])
	}

	// Combined world-space bounds
	before, err := recenter.UnionBounds(sc.Objects)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nCombined bounding box:\n")
	fmt.Printf("  Min: (%.3f, %.3f, %.3f)\n", before.Min[0], before.Min[1], before.Min[2])
	fmt.Printf("  Max: (%.3f, %.3f, %.3f)\n", before.Max[0], before.Max[1], before.Max[2])

	offset := recenter.Offset(before)
	fmt.Printf("Applying offset: (%.3f, %.3f, %.3f)\n", offset[0], offset[1], offset[2])

	if *dryRun {
		fmt.Println("Dry run, stopping before mutation.")
		return
	}

	// Recenter, bake, verify
	recenter.Apply(sc.Objects, offset)
	scene.BakeTransforms(sc.Objects)

	rep, err := recenter.Verify(sc.Objects)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nAfter fix - verifying bounds:\n")
	fmt.Printf("  New center X/Y: (%.3f, %.3f)\n", rep.CentroidX, rep.CentroidY)
	fmt.Printf("  New bottom Z: %.6f\n", rep.MinZ)
	if !rep.Centered() {
		fmt.Fprintf(os.Stderr, "Error: scene not centered after baking (minZ=%g centroid=(%g, %g))\n",
			rep.MinZ, rep.CentroidX, rep.CentroidY)
		os.Exit(1)
	}

	after, err := recenter.UnionBounds(sc.Objects)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Export
	opts := export.Options{
		ScaleFactor:   cfg.Scale,
		AxisForward:   cfg.AxisForward,
		AxisUp:        cfg.AxisUp,
		Smoothing:     cfg.Smoothing,
		PathMode:      cfg.PathMode,
		SimplifyRatio: cfg.SimplifyRatio,
	}
	res, err := export.WriteOBJ(sc, cfg.ExportDir, cfg.ExportName, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nExported to: %s\n", res.OBJPath)
	fmt.Printf("  Objects: %d, Vertices: %d, Faces: %d\n", res.Objects, res.Vertices, res.Faces)

	// Copy textures: the configured list plus whatever the materials reference.
	var copied []string
	if cfg.PathMode == export.PathModeCopy {
		list := append([]string{}, cfg.Textures...)
		list = append(list, sc.TextureFiles()...)
		results := assets.CopyTextures(cfg.TextureDir, cfg.ExportDir, list)
		for _, r := range results {
			switch r.Status {
			case assets.Copied:
				fmt.Printf("Copied: %s\n", r.File)
			case assets.Missing:
				fmt.Printf("Skipped (not found): %s\n", r.File)
			case assets.Failed:
				fmt.Fprintf(os.Stderr, "Warning: copy %s: %v\n", r.File, r.Err)
			}
		}
		copied = assets.CopiedFiles(results)

		if cfg.Previews {
			for _, r := range assets.WritePreviews(cfg.ExportDir, copied, cfg.PreviewSize) {
				if r.Status == assets.Failed {
					fmt.Fprintf(os.Stderr, "Warning: preview %s: %v\n", r.File, r.Err)
				}
			}
		}
	}

	// Run manifest
	manifest := export.BuildManifest(cfg.Scene, sc, before, after, offset, rep, res, copied)
	manifestPath := filepath.Join(cfg.ExportDir, "manifest.json")
	if err := export.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	fmt.Printf("\nDone in %.1fs. Prop pivot is now at the base center.\n", time.Since(start).Seconds())
}
