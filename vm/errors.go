package vm

import (
	"errors"
	"fmt"
)

// ErrFuelExhausted reports that the fuel budget ran out before a Halt
// instruction was reached. Output already flushed stays observed.
var ErrFuelExhausted = errors.New("fuel exhausted before halt")

// InvalidJumpError reports an instruction address outside the program's
// address range, whether produced by a Goto or by advancing past the last
// instruction of a program with no Halt.
type InvalidJumpError struct {
	Target int // the out-of-range address
	Limit  int // the program length; valid addresses are [0, Limit)
}

func (e *InvalidJumpError) Error() string {
	return fmt.Sprintf("instruction address %d outside program range [0, %d)", e.Target, e.Limit)
}
