package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/scene"
)

// recordingLogger captures log output for assertions
type recordingLogger struct {
	lines int
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines++
}

func TestRaytracer_DefaultSceneEndToEnd(t *testing.T) {
	const width, height = 1200, 600
	s := scene.NewDefaultScene()

	img, stats, err := NewRaytracer(s, width, height, DefaultConfig(), nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Fatalf("Expected %dx%d image, got %v", width, height, img.Bounds())
	}
	if stats.TotalPixels != width*height || stats.HitPixels == 0 || stats.BackgroundPixels() == 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	// Center pixel lands on the red sphere, between the ambient floor and the full base color
	center := img.RGBAAt(width/2, height/2)
	floor := color.RGBA{R: 25, G: 10, B: 10, A: 255}
	if center.R < floor.R || center.G < floor.G || center.B < floor.B {
		t.Errorf("Center pixel %v is darker than the ambient floor %v", center, floor)
	}
	if center.R >= 255 || center.R <= center.G || center.G != center.B {
		t.Errorf("Center pixel %v is not a shaded red", center)
	}

	// Top strip shows only the pale sky gradient
	for x := 0; x < width; x += 50 {
		p := img.RGBAAt(x, 0)
		if p.B != 255 || p.R != p.G || p.R < 140 {
			t.Errorf("Top pixel %d is not sky: %v", x, p)
		}
	}

	// Every pixel is opaque
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("Pixel %d has alpha %d", i/4, img.Pix[i])
		}
	}
}

func TestRaytracer_LitSphereBrighterThanFloor(t *testing.T) {
	// Same layout with the light moved in front of the sphere
	s := scene.NewDefaultScene()
	s.Lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 0, 5), 0.8)}

	img, err := Render(s, 200, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	center := img.RGBAAt(100, 50)
	if !(center.R > 25 && center.R < 255 && center.G > 10 && center.G < 100) {
		t.Errorf("Expected lit red between floor and base color, got %v", center)
	}
	if center.R <= center.G {
		t.Errorf("Expected red hue, got %v", center)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	s := scene.NewDefaultScene()

	first, err := Render(s, 160, 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(s, 160, 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected identical images from identical inputs")
	}
}

func TestRaytracer_TilingDoesNotChangePixels(t *testing.T) {
	s := scene.NewDefaultScene()

	reference, _, err := NewRaytracer(s, 97, 53, Config{TileSize: 200, NumWorkers: 1}, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	configs := []Config{
		{TileSize: 7, NumWorkers: 4},
		{TileSize: 16, NumWorkers: 2},
		{TileSize: 1, NumWorkers: 8},
	}
	for _, config := range configs {
		img, _, err := NewRaytracer(s, 97, 53, config, nil).Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %+v failed: %v", config, err)
		}
		if !bytes.Equal(reference.Pix, img.Pix) {
			t.Errorf("Config %+v produced a different image", config)
		}
	}
}

func TestRaytracer_SkyOnlyIsBluerAtTop(t *testing.T) {
	s := scene.NewScene(core.NewVec3(0, 0, 0), nil, nil)

	img, err := Render(s, 64, 36)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for x := 0; x < 64; x++ {
		top := img.RGBAAt(x, 0)
		bottom := img.RGBAAt(x, 35)
		if !(top.R < bottom.R) {
			t.Errorf("Column %d: expected top %v to be bluer than bottom %v", x, top, bottom)
		}
		for y := 1; y < 36; y++ {
			if img.RGBAAt(x, y).R < img.RGBAAt(x, y-1).R {
				t.Fatalf("Column %d: gradient not monotonic at row %d", x, y)
			}
		}
	}
}

func TestRaytracer_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"width 1", 1, 10},
		{"height 1", 10, 1},
		{"zero", 0, 0},
		{"negative", -5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Render(scene.NewDefaultScene(), tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
			if img != nil {
				t.Error("Expected nil image")
			}
		})
	}
}

func TestRaytracer_MinimumDimensions(t *testing.T) {
	img, err := Render(scene.NewDefaultScene(), 2, 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 2x2 image, got %v", img.Bounds())
	}
}

func TestRaytracer_CancelledReturnsNoImage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := &recordingLogger{}
	img, stats, err := NewRaytracer(scene.NewDefaultScene(), 64, 32, DefaultConfig(), logger).Render(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
	if stats != (RenderStats{}) {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
	if logger.lines == 0 {
		t.Error("Expected the logger to record the aborted render")
	}
}

func TestRaytracer_Stats(t *testing.T) {
	s := scene.NewDefaultScene()
	_, stats, err := NewRaytracer(s, 128, 64, Config{TileSize: 32, NumWorkers: 2}, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.Tiles != 8 || stats.Workers != 2 {
		t.Errorf("Expected 8 tiles on 2 workers, got %d on %d", stats.Tiles, stats.Workers)
	}
	if stats.ShadowRays != stats.HitPixels*len(s.Lights) {
		t.Errorf("Expected %d shadow rays, got %d", stats.HitPixels*len(s.Lights), stats.ShadowRays)
	}
	if stats.OccludedRays > stats.ShadowRays {
		t.Errorf("Occluded rays %d exceed shadow rays %d", stats.OccludedRays, stats.ShadowRays)
	}
}
