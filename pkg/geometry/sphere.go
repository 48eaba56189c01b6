package geometry

import (
	"image/color"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a sphere shape with a flat base color
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  color.RGBA
}

// NewSphere creates a new sphere. The radius is expected to be positive;
// scene validation rejects anything else before it reaches the renderer.
func NewSphere(center core.Vec3, radius float64, c color.RGBA) *Sphere {
	c.A = 255
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  c,
	}
}

// Hit tests if a ray intersects with the sphere within [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2.0 * a)
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-b + sqrtD) / (2.0 * a)
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:     root,
		Point: ray.At(root),
		Color: s.Color,
	}

	// Outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
