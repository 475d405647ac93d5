package mandel

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Viewport != (Viewport{W: 120, H: 60}) {
		t.Errorf("viewport = %+v, want 120x60", p.Viewport)
	}
	if p.Region != (Region{Xmin: -2.05, Xmax: 0.47, Ymin: -1.12, Ymax: 1.12}) {
		t.Errorf("region = %+v", p.Region)
	}
	if p.MaxIter != 100000 {
		t.Errorf("max iterations = %d, want 100000", p.MaxIter)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Params)
		want  error
		field string
	}{
		{"zero iterations", func(p *Params) { p.MaxIter = 0 }, ErrNonPositiveIterations, "max_iterations"},
		{"negative iterations", func(p *Params) { p.MaxIter = -1 }, ErrNonPositiveIterations, "max_iterations"},
		{"negative width", func(p *Params) { p.Viewport.W = -3 }, ErrNegativeViewport, "width"},
		{"negative height", func(p *Params) { p.Viewport.H = -3 }, ErrNegativeViewport, "height"},
		{"single iteration", func(p *Params) { p.MaxIter = 1 }, nil, ""},
		{"empty viewport", func(p *Params) { p.Viewport = Viewport{} }, nil, ""},
		{"inverted region", func(p *Params) { p.Region.Xmin, p.Region.Xmax = p.Region.Xmax, p.Region.Xmin }, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			err := p.Validate()

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("Validate() error %T is not *ParamError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q, want %q", pe.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestPoint(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		rx, ry int
		x0, y0 float64
	}{
		{0, 0, -2.05, -1.12},
		{0, 30, -2.05, 0},
		{60, 0, -0.79, -1.12},
	}
	for _, tt := range tests {
		x0, y0 := p.Point(tt.rx, tt.ry)
		if x0 != tt.x0 || y0 != tt.y0 {
			t.Errorf("Point(%d, %d) = (%v, %v), want (%v, %v)", tt.rx, tt.ry, x0, y0, tt.x0, tt.y0)
		}
	}
}

func TestPointStaysInsideRegion(t *testing.T) {
	p := DefaultParams()
	for ry := 0; ry < p.Viewport.H; ry++ {
		for rx := 0; rx < p.Viewport.W; rx++ {
			x0, y0 := p.Point(rx, ry)
			if x0 < p.Region.Xmin || x0 >= p.Region.Xmax || y0 < p.Region.Ymin || y0 >= p.Region.Ymax {
				t.Fatalf("Point(%d, %d) = (%v, %v) outside %+v", rx, ry, x0, y0, p.Region)
			}
		}
	}
}
