package renderer

import (
	"image"

	"github.com/df07/go-raycaster/pkg/scene"
)

// TileRenderer renders rectangular regions of an image with one camera and shader
type TileRenderer struct {
	camera *Camera
	shader *Shader
}

// NewTileRenderer creates a tile renderer for the scene at the given image size
func NewTileRenderer(s *scene.Scene, width, height int) *TileRenderer {
	return &TileRenderer{
		camera: NewCamera(s, width, height),
		shader: NewShader(s),
	}
}

// RenderTileBounds shades every pixel inside bounds and writes it to img.
// Tiles never overlap, so concurrent calls on distinct bounds write distinct pixels.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *image.RGBA) ShadeStats {
	var stats ShadeStats

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := tr.camera.GetRay(i, j)
			img.SetRGBA(i, j, tr.shader.RayColor(ray, &stats))
		}
	}

	return stats
}
