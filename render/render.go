package render

import (
	"bufio"
	"context"
	"fmt"
	"io"

	mandel "github.com/marben/ascii_mandel"
)

// RendererImpl renders rows on the local CPU
type RendererImpl struct {
	// OnRowRender, if set, is called before each row is computed
	OnRowRender func(ry int)
}

func (imp RendererImpl) RenderRow(p mandel.Params, ry int, dst []byte) []byte {
	if imp.OnRowRender != nil {
		imp.OnRowRender(ry)
	}

	for rx := 0; rx < p.Viewport.W; rx++ {
		x0, y0 := p.Point(rx, ry)
		dst = append(dst, Char(Escape(x0, y0, p.MaxIter), p.MaxIter))
	}
	return dst
}

var _ mandel.RowRenderer = RendererImpl{}

type options struct {
	workers  int
	renderer mandel.RowRenderer
	progress func(done, total int)
}

type Option func(*options)

// WithWorkers computes up to n rows concurrently. Output order is unaffected.
// Values below 1 mean sequential rendering.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRenderer replaces the default RendererImpl
func WithRenderer(r mandel.RowRenderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithProgress registers a callback invoked after each row is written
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// Render writes p.Viewport.H lines of p.Viewport.W palette characters to w, each terminated by a newline.
// Parameters are validated before anything is written.
func Render(ctx context.Context, w io.Writer, p mandel.Params, opts ...Option) error {
	if err := p.Validate(); err != nil {
		return err
	}

	o := options{workers: 1, renderer: RendererImpl{}}
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)

	var err error
	if o.workers > 1 && p.Viewport.H > 1 {
		err = renderParallel(ctx, bw, p, o)
	} else {
		err = renderSequential(ctx, bw, p, o)
	}
	if err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func renderSequential(ctx context.Context, bw *bufio.Writer, p mandel.Params, o options) error {
	line := make([]byte, 0, p.Viewport.W+1)
	for ry := 0; ry < p.Viewport.H; ry++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line = o.renderer.RenderRow(p, ry, line[:0])
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", ry, err)
		}

		if o.progress != nil {
			o.progress(ry+1, p.Viewport.H)
		}
	}
	return nil
}
