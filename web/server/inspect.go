package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        string                 `json:"color"`
	Illumination float64                `json:"illumination"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the primary hit for an inspected pixel
type InspectResult struct {
	Hit          bool
	HitRecord    *core.HitRecord
	Shape        core.Shape // nil when the hit could not be matched to a shape
	Illumination float64
	Background   core.Vec3 // Sky color when nothing was hit, in 0-255
}

// inspectPixel casts the camera ray for one pixel and reports what it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := renderer.NewCamera(sceneObj, width, height)
	shader := renderer.NewShader(sceneObj)
	ray := camera.GetRay(pixelX, pixelY)

	hit, isHit := shader.HitWorld(ray, renderer.TMin, renderer.TMax)
	if !isHit {
		bg := renderer.BackgroundColor(ray)
		return InspectResult{Background: core.NewVec3(float64(bg.R), float64(bg.G), float64(bg.B))}
	}

	var stats renderer.ShadeStats
	result := InspectResult{
		Hit:          true,
		HitRecord:    hit,
		Illumination: shader.Illumination(hit, &stats),
	}

	// The shader does not say which shape produced the hit, so find the first one
	// that reports the same distance
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, renderer.TMin, renderer.TMax); ok && shapeHit.T == hit.T {
			result.Shape = shape
			break
		}
	}
	return result
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		bg := result.Background
		writeJSON(w, http.StatusOK, InspectResponse{
			Hit:   false,
			Color: fmt.Sprintf("#%02x%02x%02x", int(bg.X), int(bg.Y), int(bg.Z)),
		})
		return
	}

	rec := result.HitRecord
	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        [3]float64{rec.Point.X, rec.Point.Y, rec.Point.Z},
		Normal:       [3]float64{rec.Normal.X, rec.Normal.Y, rec.Normal.Z},
		Distance:     rec.T,
		FrontFace:    rec.FrontFace,
		Color:        fmt.Sprintf("#%02x%02x%02x", rec.Color.R, rec.Color.G, rec.Color.B),
		Illumination: result.Illumination,
		Properties:   geometryProps,
	})
}
