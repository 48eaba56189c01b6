package scene

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Params are the user-editable fields of the interactive scene
type Params struct {
	Camera          core.Vec3 `json:"camera"`
	SphereCenter    core.Vec3 `json:"sphereCenter"`
	SphereRadius    float64   `json:"sphereRadius"`
	LightPosition   core.Vec3 `json:"lightPosition"`
	LightBrightness float64   `json:"lightBrightness"`
}

// DefaultParams returns the values the interactive scene resets to
func DefaultParams() Params {
	return Params{
		Camera:          core.NewVec3(0, 0, 0),
		SphereCenter:    core.NewVec3(0, 0, -1),
		SphereRadius:    0.5,
		LightPosition:   core.NewVec3(5, 5, -5),
		LightBrightness: 0.8,
	}
}

// Validate checks the parameters before they are turned into a scene
func (p Params) Validate() error {
	if !p.Camera.IsFinite() || !p.SphereCenter.IsFinite() || !p.LightPosition.IsFinite() {
		return fmt.Errorf("%w: positions must be finite", ErrInvalidScene)
	}
	if !(p.SphereRadius > 0) || !isFinite(p.SphereRadius) {
		return fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidScene, p.SphereRadius)
	}
	if !(p.LightBrightness >= 0) || !isFinite(p.LightBrightness) {
		return fmt.Errorf("%w: light brightness must be non-negative, got %v", ErrInvalidScene, p.LightBrightness)
	}
	return nil
}

// NewParamsScene builds the interactive scene: one red sphere and one light placed by the
// user, above the fixed ground sphere. Call Validate first.
func NewParamsScene(p Params) *Scene {
	shapes := []core.Shape{
		geometry.NewSphere(p.SphereCenter, p.SphereRadius, SphereRed),
		NewGroundSphere(),
	}
	sceneLights := []*lights.PointLight{
		lights.NewPointLight(p.LightPosition, p.LightBrightness),
	}

	return NewScene(p.Camera, shapes, sceneLights)
}
