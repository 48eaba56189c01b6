package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// vecFlag parses "x,y,z" into a core.Vec3
type vecFlag struct {
	v *core.Vec3
}

func (f vecFlag) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f vecFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("invalid component %q: %w", p, err)
		}
		xyz[i] = v
	}
	*f.v = core.NewVec3(xyz[0], xyz[1], xyz[2])
	return nil
}

func main() {
	params := scene.DefaultParams()

	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: 'default', 'interactive', a scene name from scenes/, or a .json path")
	width := flag.Int("width", 1200, "Image width in pixels (at least 2)")
	height := flag.Int("height", 600, "Image height in pixels (at least 2)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	output := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.Var(vecFlag{&params.Camera}, "cam", "Camera position x,y,z (interactive scene)")
	flag.Var(vecFlag{&params.SphereCenter}, "sphere", "Sphere center x,y,z (interactive scene)")
	flag.Float64Var(&params.SphereRadius, "radius", params.SphereRadius, "Sphere radius (interactive scene)")
	flag.Var(vecFlag{&params.LightPosition}, "light", "Light position x,y,z (interactive scene)")
	flag.Float64Var(&params.LightBrightness, "brightness", params.LightBrightness, "Light brightness (interactive scene)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Ray Caster")
		fmt.Println("Usage: raycaster [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default     - Red sphere above a gray ground sphere, one light")
		fmt.Println("  interactive - Sphere and light placed with -sphere/-radius/-light/-brightness")
		fmt.Println("  <name>      - scenes/<name>.json")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is set")
		return
	}

	if err := run(*sceneType, params, *width, *height, renderer.Config{TileSize: *tileSize, NumWorkers: *workers}, *output); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneType string, params scene.Params, width, height int, config renderer.Config, output string) error {
	fmt.Println("Starting Ray Caster...")

	selectedScene, err := createScene(sceneType, params)
	if err != nil {
		return err
	}

	if output == "" {
		outputDir := createOutputDir(sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		output = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	raytracer := renderer.NewRaytracer(selectedScene, width, height, config, renderer.NewDefaultLogger())
	img, stats, err := raytracer.Render(context.Background())
	if err != nil {
		return fmt.Errorf("rendering %s: %w", sceneType, err)
	}

	fmt.Printf("Shadow rays: %d (%d occluded)\n", stats.ShadowRays, stats.OccludedRays)

	if err := gg.SavePNG(output, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}

	fmt.Printf("Render saved as %s\n", output)
	return nil
}

// createScene builds the scene for a scene type; the interactive scene uses params
func createScene(sceneType string, params scene.Params) (*scene.Scene, error) {
	if sceneType == "interactive" {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		fmt.Println("Using interactive scene...")
		return scene.NewParamsScene(params), nil
	}

	s, err := scene.CreateScene(sceneType)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Using %s scene...\n", sceneType)
	return s, nil
}

// createOutputDir returns output/<scene> with scene file paths reduced to their base name
func createOutputDir(sceneType string) string {
	name := sceneType
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	return filepath.Join("output", name)
}
