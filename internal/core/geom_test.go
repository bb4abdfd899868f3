package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length() = %f, expected 5", got)
	}
	if got := V(0, 0).Distance(a); got != 5 {
		t.Errorf("Distance() = %f, expected 5", got)
	}
}

func TestVec2Within(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		radius   float64
		expected bool
	}{
		{"same point", V(1, 1), V(1, 1), 0, true},
		{"on boundary", V(0, 0), V(3, 4), 5, true},
		{"just outside", V(0, 0), V(3, 4), 4.99, false},
		{"far away", V(0, 0), V(100, 100), 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Within(tc.b, tc.radius); got != tc.expected {
				t.Errorf("Within() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	v := Polar(40, 0)
	if v.X != 40 || v.Y != 0 {
		t.Errorf("Polar(40, 0) = %v, expected (40, 0)", v)
	}

	v = Polar(10, math.Pi/2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Errorf("Polar(10, pi/2) = %v, expected (0, 10)", v)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5, 0, 10, 5},
		{-5.5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
