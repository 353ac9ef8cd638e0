package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// The inverse of GammaExpand_F64: sRGB back to linear RGB. Each
// channel in `v` is assumed to be in the range [0,1]
func GammaLinearize_sRGB(v Vec3) Vec3 {
	return Vec3{
		GammaLinearize_F64(v[0]),
		GammaLinearize_F64(v[1]),
		GammaLinearize_F64(v[2]),
	}
}

func GammaLinearize_F64(f float64) float64 {
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f + 0.055) / 1.055, 2.4)
}

func ClampInt(v, lo, hi int) int {
	if v < lo { return lo }
	if v > hi { return hi }
	return v
}
