// Command inspect lists every object in a scene with the decision the
// current ruleset would take. Read-only; nothing is reduced or exported.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"avatar-quest-optimizer/internal/config"
	"avatar-quest-optimizer/internal/host"
)

func main() {
	configFile := flag.String("config", "", "Path to optimizer.yaml")
	blender := flag.String("blender", "", "Blender binary (default from config)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [flags] scene.fbx [scene2.fbx ...]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{Blender: *blender})
	rs := cfg.Rules()

	h := &host.Blender{
		Binary:  cfg.Blender.Binary,
		Timeout: cfg.Blender.Timeout(),
	}

	exitCode := 0
	for _, path := range flag.Args() {
		objects, err := h.ListObjects(context.Background(), path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Probe error %s: %v\n", path, err)
			exitCode = 1
			continue
		}

		fmt.Printf("\n=== %s (%d objects) ===\n", path, len(objects))
		fmt.Printf("%-32s %-10s %10s %10s  %s\n", "NAME", "TYPE", "SHAPEKEYS", "TRIS", "DECISION")
		for _, obj := range objects {
			decision := "-"
			if obj.IsMesh() {
				out := rs.Classify(obj.Name, obj.HasShapeKeys())
				decision = out.Decision.String()
				if out.Decision.Reduces() {
					decision = fmt.Sprintf("%s (ratio %.2f)", decision, out.Ratio)
				}
			}
			fmt.Printf("%-32s %-10s %10d %10d  %s\n", obj.Name, obj.Type, obj.ShapeKeys, obj.Triangles, decision)
		}
	}

	os.Exit(exitCode)
}
