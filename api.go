package mandel

// RowRenderer renders a single row of the character grid.
// RenderRow appends exactly p.Viewport.W characters for row ry to dst, without a newline, and returns the extended slice.
type RowRenderer interface {
	RenderRow(p Params, ry int, dst []byte) []byte
}
