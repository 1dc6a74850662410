package analysis

import "math"

// fixedPoint iterates x = f(x) from x0 until successive iterates differ by
// less than tol, bounded by maxIter. If the loop never converges the best
// available iterate is returned rather than an error; callers rely on the
// bound to keep estimation total.
func fixedPoint(f func(float64) float64, x0, tol float64, maxIter int) float64 {
	x := x0
	for i := 0; i < maxIter; i++ {
		next := f(x)
		if !validNumber(next) {
			return x
		}
		if math.Abs(next-x) < tol {
			return next
		}
		x = next
	}
	return x
}
