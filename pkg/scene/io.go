package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// ErrInvalidScene is returned when scene input fails validation
var ErrInvalidScene = errors.New("invalid scene")

// Vector is a JSON-friendly [x, y, z] triple
type Vector [3]float64

// Vec3 converts the triple to a core.Vec3
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SphereDescription describes one sphere in a scene file
type SphereDescription struct {
	Center Vector   `json:"center"`
	Radius float64  `json:"radius"`
	Color  [3]uint8 `json:"color"`
}

// LightDescription describes one point light in a scene file
type LightDescription struct {
	Position   Vector   `json:"position"`
	Brightness *float64 `json:"brightness,omitempty"` // Defaults to lights.DefaultBrightness
}

// Description is the on-disk form of a scene
type Description struct {
	Name           string              `json:"name,omitempty"`
	Description    string              `json:"description,omitempty"`
	Camera         Vector              `json:"camera"`
	AspectRatio    float64             `json:"aspectRatio,omitempty"`
	ViewportHeight float64             `json:"viewportHeight,omitempty"`
	FocalLength    float64             `json:"focalLength,omitempty"`
	Spheres        []SphereDescription `json:"spheres"`
	Lights         []LightDescription  `json:"lights"`
}

// Load reads a scene description from a JSON file
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a scene description from r
func Decode(r io.Reader) (*Description, error) {
	var d Description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &d, nil
}

// Save writes a scene description to a JSON file
func Save(path string, d *Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	if err := Encode(f, d); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes an indented scene description to w
func Encode(w io.Writer, d *Description) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Validate checks everything the renderer assumes about its input
func (d *Description) Validate() error {
	if !vectorFinite(d.Camera) {
		return fmt.Errorf("%w: camera position must be finite", ErrInvalidScene)
	}
	for name, v := range map[string]float64{
		"aspectRatio":    d.AspectRatio,
		"viewportHeight": d.ViewportHeight,
		"focalLength":    d.FocalLength,
	} {
		// Zero means "use the default"
		if v < 0 || !isFinite(v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidScene, name, v)
		}
	}
	for i, s := range d.Spheres {
		if !vectorFinite(s.Center) {
			return fmt.Errorf("%w: sphere %d center must be finite", ErrInvalidScene, i)
		}
		if !(s.Radius > 0) || !isFinite(s.Radius) {
			return fmt.Errorf("%w: sphere %d radius must be positive, got %v", ErrInvalidScene, i, s.Radius)
		}
	}
	for i, l := range d.Lights {
		if !vectorFinite(l.Position) {
			return fmt.Errorf("%w: light %d position must be finite", ErrInvalidScene, i)
		}
		if l.Brightness != nil && (!(*l.Brightness >= 0) || !isFinite(*l.Brightness)) {
			return fmt.Errorf("%w: light %d brightness must be non-negative, got %v", ErrInvalidScene, i, *l.Brightness)
		}
	}
	return nil
}

// ToScene validates the description and builds a scene from it
func (d *Description) ToScene() (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	shapes := make([]core.Shape, 0, len(d.Spheres))
	for _, s := range d.Spheres {
		c := color.RGBA{R: s.Color[0], G: s.Color[1], B: s.Color[2], A: 255}
		shapes = append(shapes, geometry.NewSphere(s.Center.Vec3(), s.Radius, c))
	}

	sceneLights := make([]*lights.PointLight, 0, len(d.Lights))
	for _, l := range d.Lights {
		if l.Brightness == nil {
			sceneLights = append(sceneLights, lights.NewDefaultPointLight(l.Position.Vec3()))
		} else {
			sceneLights = append(sceneLights, lights.NewPointLight(l.Position.Vec3(), *l.Brightness))
		}
	}

	var opts []Option
	if d.AspectRatio > 0 {
		opts = append(opts, WithAspectRatio(d.AspectRatio))
	}
	if d.ViewportHeight > 0 {
		opts = append(opts, WithViewportHeight(d.ViewportHeight))
	}
	if d.FocalLength > 0 {
		opts = append(opts, WithFocalLength(d.FocalLength))
	}

	return NewScene(d.Camera.Vec3(), shapes, sceneLights, opts...), nil
}

// LoadScene reads, validates and builds a scene from a JSON file
func LoadScene(path string) (*Scene, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := d.ToScene()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func vectorFinite(v Vector) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
