package mandel

import (
	"errors"
	"fmt"
)

// Region within the complex plane
// (Xmin, Ymin) and (Xmax, Ymax) are the two sampled corners. Inverted or empty bounds are accepted.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport is the character grid the region is rasterized onto
type Viewport struct {
	W, H int
}

// Params describes one complete render
type Params struct {
	Region   Region
	Viewport Viewport
	MaxIter  int
}

var (
	// DefaultRegion frames the whole set
	DefaultRegion = Region{
		Xmin: -2.05,
		Xmax: 0.47,
		Ymin: -1.12,
		Ymax: 1.12,
	}

	DefaultViewport = Viewport{W: 120, H: 60}
)

const DefaultMaxIter = 100000

func DefaultParams() Params {
	return Params{
		Region:   DefaultRegion,
		Viewport: DefaultViewport,
		MaxIter:  DefaultMaxIter,
	}
}

var (
	// ErrNonPositiveIterations is returned when the iteration budget is zero or negative.
	// The budget is the denominator of palette selection, so it must be at least 1.
	ErrNonPositiveIterations = errors.New("max iterations must be positive")

	// ErrNegativeViewport is returned for a viewport with a negative dimension.
	ErrNegativeViewport = errors.New("viewport dimensions must not be negative")
)

// ParamError reports which parameter failed validation
type ParamError struct {
	Field string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Validate rejects configurations the renderer cannot evaluate
func (p Params) Validate() error {
	if p.MaxIter <= 0 {
		return &ParamError{Field: "max_iterations", Value: p.MaxIter, Err: ErrNonPositiveIterations}
	}
	if p.Viewport.W < 0 {
		return &ParamError{Field: "width", Value: p.Viewport.W, Err: ErrNegativeViewport}
	}
	if p.Viewport.H < 0 {
		return &ParamError{Field: "height", Value: p.Viewport.H, Err: ErrNegativeViewport}
	}
	return nil
}

// Point maps the cell at column rx, row ry onto the plane.
// The explicit float64 conversions round each product, so no fused multiply-add changes the result across architectures.
func (p Params) Point(rx, ry int) (x0, y0 float64) {
	r := p.Region
	y0 = r.Ymin + float64((r.Ymax-r.Ymin)*(float64(ry)/float64(p.Viewport.H)))
	x0 = r.Xmin + float64((r.Xmax-r.Xmin)*(float64(rx)/float64(p.Viewport.W)))
	return x0, y0
}
