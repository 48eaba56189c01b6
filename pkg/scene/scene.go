package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Viewport defaults
const (
	DefaultAspectRatio    = 16.0 / 9.0
	DefaultViewportHeight = 2.0
	DefaultFocalLength    = 1.0
)

// Scene contains all the elements needed for rendering.
// A scene is built once per render request and must not be modified while a render is in flight.
type Scene struct {
	Camera         core.Vec3            // Camera position
	Shapes         []core.Shape         // Objects in the scene, order is the nearest-hit tie-break
	Lights         []*lights.PointLight // Lights in the scene
	AspectRatio    float64              // Viewport width / height
	ViewportHeight float64              // Viewport height in world units
	FocalLength    float64              // Camera to viewport distance
}

// Option customizes the viewport of a new scene
type Option func(*Scene)

// WithAspectRatio overrides the viewport aspect ratio
func WithAspectRatio(aspectRatio float64) Option {
	return func(s *Scene) { s.AspectRatio = aspectRatio }
}

// WithViewportHeight overrides the viewport height
func WithViewportHeight(height float64) Option {
	return func(s *Scene) { s.ViewportHeight = height }
}

// WithFocalLength overrides the camera to viewport distance
func WithFocalLength(focalLength float64) Option {
	return func(s *Scene) { s.FocalLength = focalLength }
}

// NewScene creates a scene from finished shape and light lists.
// The lists are copied so later changes by the caller do not leak into a render.
func NewScene(camera core.Vec3, shapes []core.Shape, sceneLights []*lights.PointLight, opts ...Option) *Scene {
	s := &Scene{
		Camera:         camera,
		Shapes:         append([]core.Shape(nil), shapes...),
		Lights:         append([]*lights.PointLight(nil), sceneLights...),
		AspectRatio:    DefaultAspectRatio,
		ViewportHeight: DefaultViewportHeight,
		FocalLength:    DefaultFocalLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
