// Package render turns Params into rows of palette characters.
package render

// Palette orders characters by remaining iteration budget: index 0 for points that used up the whole budget.
const Palette = "#%=-:,. "

// Escape iterates z <- z*z + c for c = x0 + i*y0, starting from z = 0.
// It stops once |z|^2 exceeds 4 or the budget runs out, and returns the budget left.
// A point that never escapes returns 0. Escaping on the first step returns maxIter-1.
func Escape(x0, y0 float64, maxIter int) (remaining int) {
	x, y := 0.0, 0.0
	remaining = maxIter

	// conversions force rounding of each product (no FMA)
	for float64(x*x)+float64(y*y) <= 4.0 && remaining > 0 {
		xtemp := float64(x*x) - float64(y*y) + x0
		y = float64(2*x*y) + y0
		x = xtemp
		remaining--
	}
	return remaining
}

// Index selects the palette slot for the remaining budget: floor(8 * remaining / maxIter).
// For remaining in [0, maxIter] the result lies in [0, 8].
func Index(remaining, maxIter int) int {
	// the value is non-negative, so truncation equals floor
	return int(8.0 * float64(remaining) / float64(maxIter))
}

// Char returns the palette character for the remaining budget.
// Slot 8 only occurs when no step was taken and maps to the last palette character.
func Char(remaining, maxIter int) byte {
	idx := min(Index(remaining, maxIter), len(Palette)-1)
	return Palette[idx]
}
