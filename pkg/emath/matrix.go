package emath

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64" // Will be "image/math/f64" at some point
)

// Vec3 and Mat3 are for color transforms; Mat3 is row major.
type Vec3 f64.Vec3
type Mat3 f64.Mat3

func (m Mat3)Apply(v Vec3) Vec3 {
	var out Vec3
	for row:=0; row<3; row++ {
		out[row] = m[3*row]*v[0] + m[3*row+1]*v[1] + m[3*row+2]*v[2]
	}
	return out
}

func (v Vec3)String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}

// Clip returns v with each component clamped into [lo,hi].
func (v Vec3)Clip(lo, hi float64) Vec3 {
	for i := range v {
		v[i] = math.Max(lo, math.Min(hi, v[i]))
	}
	return v
}
