package vm

// ---------------------------------------------------------------------------
// Tape: circular array of byte cells plus a cursor
// ---------------------------------------------------------------------------

// DefaultTapeSize is the number of cells on a tape when no size is given.
const DefaultTapeSize = 1 << 16

// Tape is a fixed-capacity circular array of byte cells with a single
// movable cursor. All mutation goes through methods so the wrap invariants
// hold at every site: cell values wrap mod 256, the cursor wraps mod the
// tape size in both directions.
type Tape struct {
	cells  []byte
	cursor int
}

// NewTape creates a zeroed tape. A size of zero or less selects
// DefaultTapeSize.
func NewTape(size int) *Tape {
	if size <= 0 {
		size = DefaultTapeSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Size returns the number of cells.
func (t *Tape) Size() int {
	return len(t.cells)
}

// Cursor returns the current cell position, always in [0, Size).
func (t *Tape) Cursor() int {
	return t.cursor
}

// SetCursor moves the cursor to pos, wrapping modulo the tape size.
// Negative positions wrap backward from the end.
func (t *Tape) SetCursor(pos int) {
	n := len(t.cells)
	t.cursor = ((pos % n) + n) % n
}

// Step moves the cursor by delta cells, wrapping in either direction.
func (t *Tape) Step(delta int) {
	t.SetCursor(t.cursor + delta)
}

// Cell returns the value of the current cell.
func (t *Tape) Cell() byte {
	return t.cells[t.cursor]
}

// SetCell stores v in the current cell.
func (t *Tape) SetCell(v byte) {
	t.cells[t.cursor] = v
}

// AdjustCell adds delta to the current cell, wrapping mod 256.
func (t *Tape) AdjustCell(delta int) {
	t.cells[t.cursor] = byte(int(t.cells[t.cursor]) + delta)
}

// Cells returns a copy of every cell, in order.
func (t *Tape) Cells() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}
