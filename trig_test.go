package sprig

import (
	"math"
	"testing"
)

func TestAngleRoundTrip(t *testing.T) {
	for _, deg := range []float64{-720, -90, 0, 1, 45, 90, 180, 359.5, 1080} {
		if got := ToDegrees(ToRadians(deg)); !approxEqual(got, deg, 1e-9) {
			t.Errorf("ToDegrees(ToRadians(%v)) = %v", deg, got)
		}
	}
}

func TestDegreeTrig(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		ref  func(float64) float64
	}{
		{"Sin", Sin, math.Sin},
		{"Cos", Cos, math.Cos},
		{"Tan", Tan, math.Tan},
		{"Csc", Csc, func(r float64) float64 { return 1 / math.Sin(r) }},
		{"Sec", Sec, func(r float64) float64 { return 1 / math.Cos(r) }},
		{"Cot", Cot, func(r float64) float64 { return 1 / math.Tan(r) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, deg := range []float64{10, 30, 60, 135, 200} {
				want := tt.ref(deg * math.Pi / 180)
				if got := tt.fn(deg); !approxEqual(got, want, 1e-9) {
					t.Errorf("%s(%v) = %v, want %v", tt.name, deg, got, want)
				}
			}
		})
	}
}

func TestInverseTrig(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Asin(0.5)", Asin(0.5), 30},
		{"Acos(0.5)", Acos(0.5), 60},
		{"Atan(1)", Atan(1), 45},
		{"Acsc(2)", Acsc(2), 30},
		{"Asec(2)", Asec(2), 60},
		{"Acot(1)", Acot(1), 45},
		{"Atan2(1, 0)", Atan2(1, 0), 90},
	}
	for _, tt := range tests {
		if !approxEqual(tt.got, tt.want, 1e-9) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct{ math, heading float64 }{
		{90, 0},    // up
		{0, 90},    // right
		{-90, 180}, // down
		{180, -90}, // left
	}
	for _, tt := range tests {
		if got := Heading(tt.math); got != tt.heading {
			t.Errorf("Heading(%v) = %v, want %v", tt.math, got, tt.heading)
		}
	}
}

func TestPickRandom(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := PickRandom(3, 1)
		if v < 1 || v > 3 {
			t.Fatalf("PickRandom(3, 1) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("PickRandom produced %v, want all of 1..3", seen)
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := Magnitude([]float64{3, 4}); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := Normalize(V(0, 0)); got != V(0, 0) {
		t.Errorf("Normalize(0) = %v, want zero", got)
	}
	if got := Normalize(V(0, 3)); !got.ApproxEqual(V(0, 1)) {
		t.Errorf("Normalize = %v, want (0, 1)", got)
	}
	if got := Add(V(1, 2), V(3, 4)); got != V(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := Subtract(V(1, 2), V(3, 4)); got != V(-2, -2) {
		t.Errorf("Subtract = %v", got)
	}
	if got := Dot(V(1, 2), V(3, 4)); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := Cross([3]float64{1, 0, 0}, [3]float64{0, 1, 0}); got != [3]float64{0, 0, 1} {
		t.Errorf("Cross = %v, want (0, 0, 1)", got)
	}
}

func TestHex(t *testing.T) {
	c := Hex("#ff0000")
	if c.R != 1 || c.G != 0 || c.B != 0 || c.A != 1 {
		t.Errorf("Hex(#ff0000) = %+v", c)
	}
	if got := RGB(204, 204, 204); !approxEqual(got.R, ColorButton.R, 1e-9) {
		t.Errorf("RGB(204...) = %+v, want %+v", got, ColorButton)
	}
}
