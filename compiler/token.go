package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Opcodes for the Goto-Brainfuck instruction set
// ---------------------------------------------------------------------------

// Opcode identifies one of the eight Goto-Brainfuck instructions.
// Every instruction is a single source byte and carries no operands.
type Opcode byte

const (
	OpPrint        Opcode = iota // . write current cell to the output sink
	OpRead                       // , read one byte into the current cell
	OpIncrement                  // + current cell += 1 (mod 256)
	OpDecrement                  // - current cell -= 1 (mod 256)
	OpStepForward                // > cursor += 1 (mod tape size)
	OpStepBackward               // < cursor -= 1 (mod tape size)
	OpGoto                       // ^ jump to the address held in the current cell
	OpHalt                       // ; stop the machine
)

var opcodeNames = [...]string{
	OpPrint:        "Print",
	OpRead:         "Read",
	OpIncrement:    "Increment",
	OpDecrement:    "Decrement",
	OpStepForward:  "StepForward",
	OpStepBackward: "StepBackward",
	OpGoto:         "Goto",
	OpHalt:         "Halt",
}

// opcodeSource maps each opcode back to its source byte.
var opcodeSource = [...]byte{
	OpPrint:        '.',
	OpRead:         ',',
	OpIncrement:    '+',
	OpDecrement:    '-',
	OpStepForward:  '>',
	OpStepBackward: '<',
	OpGoto:         '^',
	OpHalt:         ';',
}

// String returns the opcode's name.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", byte(op))
}

// SourceByte returns the source byte that encodes this opcode.
func (op Opcode) SourceByte() byte {
	return opcodeSource[op]
}

// opcodeForByte maps a source byte to its opcode.
// The second result is false for bytes outside the instruction set.
func opcodeForByte(b byte) (Opcode, bool) {
	switch b {
	case '.':
		return OpPrint, true
	case ',':
		return OpRead, true
	case '+':
		return OpIncrement, true
	case '-':
		return OpDecrement, true
	case '>':
		return OpStepForward, true
	case '<':
		return OpStepBackward, true
	case '^':
		return OpGoto, true
	case ';':
		return OpHalt, true
	}
	return 0, false
}
