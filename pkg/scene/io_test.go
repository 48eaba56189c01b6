package scene

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raycaster/pkg/geometry"
)

const simpleSceneJSON = `{
  "camera": [0, 0, 1.2],
  "spheres": [
    {"center": [0, 0.4, 0], "radius": 0.5, "color": [255, 100, 100]},
    {"center": [0, -100.5, -1], "radius": 100, "color": [128, 128, 128]}
  ],
  "lights": [
    {"position": [0, 5, -5], "brightness": 0.8},
    {"position": [3, 3, 3]}
  ]
}`

func TestDecode_ToScene(t *testing.T) {
	d, err := Decode(strings.NewReader(simpleSceneJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	s, err := d.ToScene()
	if err != nil {
		t.Fatalf("ToScene failed: %v", err)
	}

	if len(s.Shapes) != 2 || len(s.Lights) != 2 {
		t.Fatalf("Expected 2 shapes and 2 lights, got %d and %d", len(s.Shapes), len(s.Lights))
	}
	if s.Shapes[0].(*geometry.Sphere).Color != SphereRed {
		t.Errorf("Expected first sphere to be red, got %v", s.Shapes[0].(*geometry.Sphere).Color)
	}
	if s.Lights[0].Brightness != 0.8 {
		t.Errorf("Expected brightness 0.8, got %f", s.Lights[0].Brightness)
	}
	if s.Lights[1].Brightness != 1.0 {
		t.Errorf("Expected omitted brightness to default to 1.0, got %f", s.Lights[1].Brightness)
	}
	if s.AspectRatio != DefaultAspectRatio || s.FocalLength != DefaultFocalLength {
		t.Errorf("Expected default viewport, got aspect %f focal %f", s.AspectRatio, s.FocalLength)
	}
}

func TestDecode_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown field", `{"camera": [0,0,0], "fov": 90}`},
		{"color out of range", `{"spheres": [{"center": [0,0,0], "radius": 1, "color": [300, 0, 0]}]}`},
		{"malformed", `{"camera": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.json)); err == nil {
				t.Error("Expected decode error, got nil")
			}
		})
	}
}

func TestDescription_Validate(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name string
		d    Description
	}{
		{"zero radius", Description{Spheres: []SphereDescription{{Radius: 0}}}},
		{"negative radius", Description{Spheres: []SphereDescription{{Radius: -2}}}},
		{"negative brightness", Description{Lights: []LightDescription{{Brightness: &negative}}}},
		{"negative focal length", Description{FocalLength: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.ToScene()
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestSaveAndLoadScene(t *testing.T) {
	brightness := 0.5
	d := &Description{
		Name:        "Saved",
		Camera:      Vector{0, 1, 2},
		AspectRatio: 2.0,
		Spheres:     []SphereDescription{{Center: Vector{0, 0, -1}, Radius: 0.5, Color: [3]uint8{10, 20, 30}}},
		Lights:      []LightDescription{{Position: Vector{1, 1, 1}, Brightness: &brightness}},
	}

	path := filepath.Join(t.TempDir(), "saved.json")
	if err := Save(path, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if s.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio 2.0, got %f", s.AspectRatio)
	}
	sphere := s.Shapes[0].(*geometry.Sphere)
	if sphere.Color.R != 10 || sphere.Color.G != 20 || sphere.Color.B != 30 {
		t.Errorf("Unexpected sphere color %v", sphere.Color)
	}
}

func TestEncode_Indented(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Description{Camera: Vector{1, 2, 3}}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"camera\"") {
		t.Errorf("Expected indented output, got %s", buf.String())
	}
}

func TestLoadScene_MissingFile(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
