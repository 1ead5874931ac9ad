package vm

import "testing"

// ---------------------------------------------------------------------------
// Cell wrap tests
// ---------------------------------------------------------------------------

func TestCellWrapIncrement(t *testing.T) {
	tape := NewTape(8)
	for i := 0; i < 300; i++ {
		tape.AdjustCell(1)
	}
	if got := tape.Cell(); got != 300%256 {
		t.Errorf("cell = %d, want %d", got, 300%256)
	}
}

func TestCellWrapDecrement(t *testing.T) {
	tape := NewTape(8)
	tape.AdjustCell(-1)
	if got := tape.Cell(); got != 255 {
		t.Errorf("cell = %d, want 255", got)
	}
}

func TestCellNetDelta(t *testing.T) {
	// Mixed increments and decrements observe (net delta) mod 256.
	tape := NewTape(8)
	deltas := []int{1, 1, 1, -1, 1, -1, -1, -1, -1} // net -1
	for _, d := range deltas {
		tape.AdjustCell(d)
	}
	if got := tape.Cell(); got != 255 {
		t.Errorf("cell = %d, want 255", got)
	}
}

// ---------------------------------------------------------------------------
// Cursor wrap tests
// ---------------------------------------------------------------------------

func TestCursorWrapForward(t *testing.T) {
	tape := NewTape(4)
	tape.SetCursor(3)
	tape.Step(1)
	if got := tape.Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestCursorWrapBackward(t *testing.T) {
	tape := NewTape(4)
	tape.Step(-1)
	if got := tape.Cursor(); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestCursorStaysInRange(t *testing.T) {
	tape := NewTape(5)
	for i := 0; i < 23; i++ {
		tape.Step(1)
	}
	for i := 0; i < 41; i++ {
		tape.Step(-1)
	}
	if c := tape.Cursor(); c < 0 || c >= tape.Size() {
		t.Fatalf("cursor %d outside [0, %d)", c, tape.Size())
	}
	// Net movement is -18, so the cursor is at (-18 mod 5) = 2.
	if got := tape.Cursor(); got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
}

func TestDefaultTapeSize(t *testing.T) {
	if got := NewTape(0).Size(); got != DefaultTapeSize {
		t.Errorf("size = %d, want %d", got, DefaultTapeSize)
	}
}

func TestTapeCellsCopies(t *testing.T) {
	tape := NewTape(4)
	tape.SetCell(7)
	cells := tape.Cells()
	cells[0] = 99
	if got := tape.Cell(); got != 7 {
		t.Errorf("cell = %d after mutating copy, want 7", got)
	}
}
