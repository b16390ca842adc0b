package linalg

import "math"

// NewtonStep applies one minimum-norm least-squares Newton correction using
// the factors produced by QRDecomp. y holds the residual of the system at u
// and is consumed: it is overwritten by the back-substitution. u is moved by
// the correction and the correction's Euclidean length is returned.
func NewtonStep(q, b *Matrix, u, y Vector) float64 {
	// Solve transpose(b)*y' = y in place over the first b.Cols() rows of b,
	// which form an upper-triangular block.
	for k := 0; k < b.Cols(); k++ {
		for l := 0; l < k; l++ {
			y[k] -= b.At(l, k) * y[l]
		}
		y[k] /= b.At(k, k)
	}

	// Correction = transpose(q[:cols]) * y', subtracted from u.
	d := 0.0
	for k := 0; k < b.Rows(); k++ {
		s := 0.0
		for l := 0; l < b.Cols(); l++ {
			s += q.At(l, k) * y[l]
		}
		u[k] -= s
		d += s * s
	}
	return math.Sqrt(d)
}
