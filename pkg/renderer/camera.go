package renderer

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Camera maps image pixels onto the scene viewport
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width, height   int
}

// NewCamera creates the camera-to-viewport mapping for an image of width x height pixels.
// Both dimensions must be at least 2; Raytracer.Render checks this before building a camera.
func NewCamera(s *scene.Scene, width, height int) *Camera {
	viewportWidth := s.ViewportHeight * s.AspectRatio
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	// Negated so that image row 0 is the top of the viewport
	vertical := core.NewVec3(0, -s.ViewportHeight, 0)

	lowerLeftCorner := s.Camera.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(core.NewVec3(0, 0, s.FocalLength))

	return &Camera{
		origin:          s.Camera,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		width:           width,
		height:          height,
	}
}

// GetRay returns the ray from the camera through pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	u := float64(i) / float64(c.width-1)
	v := float64(j) / float64(c.height-1)

	target := c.lowerLeftCorner.
		Add(core.Scale(u, c.horizontal)).
		Add(core.Scale(v, c.vertical))

	return core.NewRay(c.origin, target.Subtract(c.origin))
}
