package renderer

import (
	"image/color"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	// TMin keeps secondary rays from re-hitting the surface they start on
	TMin = 0.001
	// TMax is the farthest distance a camera ray can hit anything
	TMax = 100.0
	// AmbientLight is the illumination every hit point receives
	AmbientLight = 0.1
)

// ShadeStats counts the work done while shading a set of rays
type ShadeStats struct {
	HitPixels    int // Camera rays that hit an object
	ShadowRays   int // Shadow rays cast toward lights
	OccludedRays int // Shadow rays blocked by an object
}

func (s *ShadeStats) add(other ShadeStats) {
	s.HitPixels += other.HitPixels
	s.ShadowRays += other.ShadowRays
	s.OccludedRays += other.OccludedRays
}

// Shader resolves ray colors against a read-only scene with ambient + diffuse
// lighting and hard shadows. It holds no mutable state and is safe for concurrent use.
type Shader struct {
	scene *scene.Scene
}

// NewShader creates a shader for the scene
func NewShader(s *scene.Scene) *Shader {
	return &Shader{scene: s}
}

// HitWorld finds the nearest hit along the ray within [tMin, tMax].
// Shapes are scanned in scene order and only strictly nearer hits replace the
// current one, so on equal distances the earlier shape wins.
func (sh *Shader) HitWorld(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range sh.scene.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit && hit.T < closestSoFar {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Occluded reports whether any shape blocks the ray before maxDistance
func (sh *Shader) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, shape := range sh.scene.Shapes {
		if _, isHit := shape.Hit(ray, TMin, maxDistance); isHit {
			return true
		}
	}
	return false
}

// Illumination returns the clamped ambient + diffuse light factor at a hit point
func (sh *Shader) Illumination(hit *core.HitRecord, stats *ShadeStats) float64 {
	totalLight := AmbientLight

	for _, light := range sh.scene.Lights {
		sample := light.Sample(hit.Point)
		shadowRay := core.NewRay(hit.Point, sample.ToLight)

		if stats != nil {
			stats.ShadowRays++
		}
		if sh.Occluded(shadowRay, sample.Distance-TMin) {
			if stats != nil {
				stats.OccludedRays++
			}
			continue
		}

		diffuse := max(0, hit.Normal.Dot(shadowRay.Direction))
		totalLight += diffuse * light.Brightness
	}

	// Ambient is positive and diffuse terms are non-negative, so only the upper bound can trip
	return min(totalLight, 1.0)
}

// RayColor returns the color seen along the ray. stats may be nil.
func (sh *Shader) RayColor(ray core.Ray, stats *ShadeStats) color.RGBA {
	hit, isHit := sh.HitWorld(ray, TMin, TMax)
	if !isHit {
		return BackgroundColor(ray)
	}
	if stats != nil {
		stats.HitPixels++
	}

	light := sh.Illumination(hit, stats)
	return color.RGBA{
		R: toByte(float64(hit.Color.R) * light),
		G: toByte(float64(hit.Color.G) * light),
		B: toByte(float64(hit.Color.B) * light),
		A: 255,
	}
}

// BackgroundColor returns the sky gradient for a ray that hit nothing.
// The red and green channels fall as the ray points higher; blue saturates at 255.
func BackgroundColor(ray core.Ray) color.RGBA {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	rg := toByte(255 * (1.0 - t*0.5))
	return color.RGBA{
		R: rg,
		G: rg,
		B: toByte(255 * (1.0 - t*0.5 + t)),
		A: 255,
	}
}

// toByte clamps a channel value to [0, 255] and truncates it
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
