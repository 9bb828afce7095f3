package sprig

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Angles in sprig are degrees. Headings follow the compass convention:
// 0 is up (north) and angles grow clockwise.

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 { return mgl64.DegToRad(deg) }

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 { return mgl64.RadToDeg(rad) }

func Sin(deg float64) float64 { return math.Sin(ToRadians(deg)) }
func Cos(deg float64) float64 { return math.Cos(ToRadians(deg)) }
func Tan(deg float64) float64 { return math.Tan(ToRadians(deg)) }
func Csc(deg float64) float64 { return 1 / Sin(deg) }
func Sec(deg float64) float64 { return 1 / Cos(deg) }
func Cot(deg float64) float64 { return 1 / Tan(deg) }

func Asin(x float64) float64 { return ToDegrees(math.Asin(x)) }
func Acos(x float64) float64 { return ToDegrees(math.Acos(x)) }
func Atan(x float64) float64 { return ToDegrees(math.Atan(x)) }
func Acsc(x float64) float64 { return Asin(1 / x) }
func Asec(x float64) float64 { return Acos(1 / x) }
func Acot(x float64) float64 { return Atan(1 / x) }

// Atan2 returns the angle of (x, y) in degrees, counter-clockwise from +x.
func Atan2(y, x float64) float64 { return ToDegrees(math.Atan2(y, x)) }

// Heading converts a math angle (degrees, counter-clockwise from +x) to a
// compass heading (degrees, clockwise from +y).
func Heading(mathDeg float64) float64 { return 90 - mathDeg }

// PickRandom returns a uniformly random integer in [lo, hi].
func PickRandom(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// Magnitude returns the Euclidean length of v.
func Magnitude(v []float64) float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit length. A zero vector is returned
// unchanged instead of producing NaNs.
func Normalize(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

func Add(a, b Vec2) Vec2      { return a.Add(b) }
func Subtract(a, b Vec2) Vec2 { return a.Sub(b) }
func Dot(a, b Vec2) float64   { return a.Dot(b) }

// Cross returns the 3D cross product a × b.
func Cross(a, b [3]float64) [3]float64 {
	return [3]float64(mgl64.Vec3(a).Cross(mgl64.Vec3(b)))
}

// cross2 is the z component of the 3D cross product of two planar vectors.
func cross2(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}
