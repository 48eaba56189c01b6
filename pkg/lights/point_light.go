package lights

import "github.com/df07/go-raycaster/pkg/core"

// DefaultBrightness is the brightness a light gets when none is specified
const DefaultBrightness = 1.0

// PointLight is an infinitely small light source with a scalar brightness
type PointLight struct {
	Position   core.Vec3
	Brightness float64
}

// LightSample contains the geometry between a shading point and a light
type LightSample struct {
	ToLight  core.Vec3 // Unnormalized vector from the shading point to the light
	Distance float64   // Length of ToLight
}

// NewPointLight creates a point light. Brightness is expected to be non-negative.
func NewPointLight(position core.Vec3, brightness float64) *PointLight {
	return &PointLight{Position: position, Brightness: brightness}
}

// NewDefaultPointLight creates a point light with DefaultBrightness
func NewDefaultPointLight(position core.Vec3) *PointLight {
	return NewPointLight(position, DefaultBrightness)
}

// Sample returns the vector and distance from point to the light
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	return LightSample{
		ToLight:  toLight,
		Distance: toLight.Length(),
	}
}
