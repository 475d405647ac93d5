package render

import (
	"bufio"
	"context"
	"fmt"
	"sync"

	mandel "github.com/marben/ascii_mandel"
)

// rowWorkScheduler hands out rows to concurrent workers and collects the finished lines
type rowWorkScheduler struct {
	params mandel.Params

	next  int
	rows  [][]byte
	ready []chan struct{}
	m     sync.Mutex
}

func newRowWorkScheduler(p mandel.Params) *rowWorkScheduler {
	ready := make([]chan struct{}, p.Viewport.H)
	for i := range ready {
		ready[i] = make(chan struct{})
	}
	return &rowWorkScheduler{
		params: p,
		rows:   make([][]byte, p.Viewport.H),
		ready:  ready,
	}
}

func (rws *rowWorkScheduler) popRow() (ry int, found bool) {
	rws.m.Lock()
	defer rws.m.Unlock()

	if rws.next >= rws.params.Viewport.H {
		return 0, false
	}
	ry = rws.next
	rws.next++
	return ry, true
}

func (rws *rowWorkScheduler) rowFinished(ry int, line []byte) {
	rws.m.Lock()
	rws.rows[ry] = line
	rws.m.Unlock()

	close(rws.ready[ry])
}

// take hands the finished row over to the writer and drops the scheduler's reference
func (rws *rowWorkScheduler) take(ry int) []byte {
	rws.m.Lock()
	defer rws.m.Unlock()

	line := rws.rows[ry]
	rws.rows[ry] = nil
	return line
}

// render computes rows on the provided RowRenderer until none are left or ctx is done.
// Can be called from multiple goroutines in parallel.
func (rws *rowWorkScheduler) render(ctx context.Context, renderer mandel.RowRenderer) {
	for ctx.Err() == nil {
		ry, found := rws.popRow()
		if !found {
			return
		}
		line := renderer.RenderRow(rws.params, ry, make([]byte, 0, rws.params.Viewport.W+1))
		rws.rowFinished(ry, append(line, '\n'))
	}
}

// renderParallel writes rows strictly in index order while workers compute ahead of the writer
func renderParallel(ctx context.Context, bw *bufio.Writer, p mandel.Params, o options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rws := newRowWorkScheduler(p)
	workers := min(o.workers, p.Viewport.H)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rws.render(ctx, o.renderer)
		}()
	}

	stop := func(err error) error {
		cancel()
		wg.Wait()
		return err
	}

	for ry := 0; ry < p.Viewport.H; ry++ {
		select {
		case <-rws.ready[ry]:
		case <-ctx.Done():
			return stop(ctx.Err())
		}

		if _, err := bw.Write(rws.take(ry)); err != nil {
			return stop(fmt.Errorf("write row %d: %w", ry, err))
		}

		if o.progress != nil {
			o.progress(ry+1, p.Viewport.H)
		}
	}

	wg.Wait()
	return nil
}
