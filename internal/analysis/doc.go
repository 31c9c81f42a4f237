// Package analysis measures how numerical SDE solutions converge.
//
// The package compares approximate terminal values against a reference
// evaluated on the same Wiener paths:
//
//   - [StrongError]: mean absolute pathwise error, expected O(sqrt(dt)) for
//     Euler-Maruyama
//   - [WeakError]: error of the ensemble mean, expected O(dt)
//   - [FitOrder]: least-squares slope of log error against log dt
//
// # Convergence Study
//
//	points, _ := analysis.Study(approxByStride, exact, dt)
//	order, _ := analysis.FitOrder(points, analysis.Strong)
//
// The fitted orders are reported only; the textbook exponents are not
// enforced.
package analysis
