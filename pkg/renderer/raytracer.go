package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// ErrInvalidDimensions is returned when the image is narrower or shorter than 2 pixels,
// where the pixel-to-viewport mapping divides by zero
var ErrInvalidDimensions = errors.New("image width and height must be at least 2")

// Config contains rendering configuration
type Config struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a scene into an RGBA image
type Raytracer struct {
	scene         *scene.Scene
	width, height int
	config        Config
	logger        core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards all output.
func NewRaytracer(s *scene.Scene, width, height int, config Config, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
}

// Render renders every pixel of the image in parallel tiles and returns the finished image.
// If ctx is cancelled before all tiles are done, Render returns ctx.Err() and no image.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width < 2 || rt.height < 2 {
		return nil, RenderStats{}, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rt.width, rt.height)
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	workerPool := NewWorkerPool(ctx, NewTileRenderer(rt.scene, rt.width, rt.height), len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d: %d shapes, %d lights, %d tiles on %d workers...\n",
		rt.width, rt.height, len(rt.scene.Shapes), len(rt.scene.Lights), len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}

	var shadeStats ShadeStats
	var renderErr error
	step := max(1, len(tiles)/10)

	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		shadeStats.add(result.Stats)

		if (i+1)%step == 0 && renderErr == nil {
			rt.logger.Printf("Tiles: %d/%d\n", i+1, len(tiles))
		}
	}

	// Join all workers before the image is handed out
	workerPool.Stop()

	if renderErr == nil {
		renderErr = ctx.Err()
	}
	if renderErr != nil {
		rt.logger.Printf("Render aborted: %v\n", renderErr)
		return nil, RenderStats{}, renderErr
	}

	stats := RenderStats{
		TotalPixels:  rt.width * rt.height,
		HitPixels:    shadeStats.HitPixels,
		ShadowRays:   shadeStats.ShadowRays,
		OccludedRays: shadeStats.OccludedRays,
		Tiles:        len(tiles),
		Workers:      workerPool.GetNumWorkers(),
		Duration:     time.Since(startTime),
	}
	stats.AverageLuminance = CalculateAverageLuminance(img)

	rt.logger.Printf("Render completed in %v (%d/%d pixels hit geometry, avg luminance %.3f)\n",
		stats.Duration, stats.HitPixels, stats.TotalPixels, stats.AverageLuminance)

	return img, stats, nil
}

// Render renders the scene at width x height with default settings and no logging
func Render(s *scene.Scene, width, height int) (*image.RGBA, error) {
	img, _, err := NewRaytracer(s, width, height, DefaultConfig(), nil).Render(context.Background())
	return img, err
}
