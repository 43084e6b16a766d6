package transform

import "math"

// lut maps every input byte to its transformed value. Clip and scale are pure
// per-pixel functions, so one table built per operation serves every frame on
// every worker.
type lut [256]byte

func (t *lut) apply(plane []byte) {
	for i, p := range plane {
		plane[i] = t[p]
	}
}

func clipTable(lo, hi uint8) *lut {
	var t lut
	for p := range t {
		t[p] = clip(uint8(p), lo, hi)
	}
	return &t
}

func scaleTable(factor float32) *lut {
	var t lut
	for p := range t {
		t[p] = scale(uint8(p), factor)
	}
	return &t
}

// clip returns max(lo, min(hi, p)).
func clip(p, lo, hi uint8) uint8 {
	return max(lo, min(hi, p))
}

// scale multiplies p by factor, truncates toward zero and saturates to
// [0, 255] in both directions.
func scale(p uint8, factor float32) uint8 {
	return saturate(math.Trunc(float64(float32(p) * factor)))
}

// saturate clamps v to [0, 255]. NaN, which 0 * ±Inf produces, maps to 0.
func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(v)
	}
}

// swapBytes exchanges a and b element-wise. They must not overlap.
func swapBytes(a, b []byte) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// swapPlanes exchanges two equal-length planes through scratch.
func swapPlanes(a, b, scratch []byte) {
	copy(scratch, a)
	copy(a, b)
	copy(b, scratch)
}
