package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Scale scalar first", Scale(2, a), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 12)

	if got := v.Dot(NewVec3(1, 1, 1)); got != 19 {
		t.Errorf("Expected dot 19, got %f", got)
	}
	if got := v.Length(); got != 13 {
		t.Errorf("Expected length 13, got %f", got)
	}
	if got := v.LengthSquared(); got != 169 {
		t.Errorf("Expected squared length 169, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(3, 4, 0),
		NewVec3(-2, 7, 0.5),
		NewVec3(1e-6, 2e-6, -3e-6),
	}

	for _, v := range tests {
		n := v.Normalize()
		if math.Abs(n.Length()-1.0) > 1e-9 {
			t.Errorf("Normalize(%v) has length %f, expected 1", v, n.Length())
		}
		// Same direction as the input
		if n.Dot(v) <= 0 {
			t.Errorf("Normalize(%v) = %v points the wrong way", v, n)
		}
	}
}

func TestVec3_NormalizeZeroIsNaN(t *testing.T) {
	n := Vec3{}.Normalize()
	if !math.IsNaN(n.X) || !math.IsNaN(n.Y) || !math.IsNaN(n.Z) {
		t.Errorf("Expected NaN components for zero vector, got %v", n)
	}
	if n.IsFinite() {
		t.Error("Expected normalized zero vector to be non-finite")
	}
}

func TestVec3_DivideByZero(t *testing.T) {
	v := NewVec3(1, -1, 0).Divide(0)
	if !math.IsInf(v.X, 1) || !math.IsInf(v.Y, -1) || !math.IsNaN(v.Z) {
		t.Errorf("Expected (+Inf, -Inf, NaN), got %v", v)
	}
}
