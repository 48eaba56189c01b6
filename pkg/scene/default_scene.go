package scene

import (
	"image/color"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Shared scene colors
var (
	SphereRed  = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	GroundGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// NewGroundSphere creates the huge sphere used as a floor below the scene
func NewGroundSphere() *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, GroundGray)
}

// NewDefaultScene creates the startup scene: a red sphere above a gray ground sphere,
// lit by one light up and behind it
func NewDefaultScene() *Scene {
	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, 0.4, 0), 0.5, SphereRed),
		NewGroundSphere(),
	}
	sceneLights := []*lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 5, -5), 0.8),
	}

	return NewScene(core.NewVec3(0, 0, 1.2), shapes, sceneLights)
}
