package core

import "image/color"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-surface intersection.
// It only lives for the duration of one intersection query.
type HitRecord struct {
	Point     Vec3       // Point of intersection
	Normal    Vec3       // Surface normal, always facing against the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // Whether the ray hit the outside of the surface
	Color     color.RGBA // Base color of the surface that was hit
}

// SetFaceNormal sets the normal vector and determines if we hit the front face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}
