package main

import (
	"fmt"
	"os"

	"prop-recenter/internal/mathutil"
	"prop-recenter/internal/recenter"
	"prop-recenter/internal/scene"
)

// inspect prints per-object and combined world-space bounds for a scene
// without modifying anything.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <scene.obj|scene.json>")
		os.Exit(1)
	}
	sc, err := scene.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Objects: %d, Materials: %d\n", len(sc.Objects), len(sc.Materials))
	for i, o := range sc.Objects {
		local := o.Mesh.LocalBounds()
		world := local
		if !local.Empty() {
			world = worldBounds(o)
		}
		fmt.Printf("  Object[%d] %q: verts=%d, faces=%d\n", i, o.Name, len(o.Mesh.Positions), len(o.Mesh.Faces))
		fmt.Printf("    Local: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
			local.Min[0], local.Max[0], local.Min[1], local.Max[1], local.Min[2], local.Max[2])
		fmt.Printf("    World: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
			world.Min[0], world.Max[0], world.Min[1], world.Max[1], world.Min[2], world.Max[2])
	}

	box, err := recenter.UnionBounds(sc.Objects)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	size := box.Size()
	offset := recenter.Offset(box)
	fmt.Printf("Union: Min(%.3f, %.3f, %.3f) Max(%.3f, %.3f, %.3f)\n",
		box.Min[0], box.Min[1], box.Min[2], box.Max[0], box.Max[1], box.Max[2])
	fmt.Printf("Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	fmt.Printf("Recenter offset would be: (%.3f, %.3f, %.3f)\n", offset[0], offset[1], offset[2])

	if tex := sc.TextureFiles(); len(tex) > 0 {
		fmt.Println("Textures referenced:")
		for _, t := range tex {
			fmt.Printf("  - %s\n", t)
		}
	}
}

func worldBounds(o *scene.Object) mathutil.Box {
	var box mathutil.Box
	for _, c := range o.WorldCorners() {
		box.Extend(c)
	}
	return box
}
