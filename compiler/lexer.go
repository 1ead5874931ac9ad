// Package compiler tokenizes Goto-Brainfuck source into an immutable,
// addressable instruction sequence.
package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Tokenizer: one byte per instruction, no whitespace, no comments
// ---------------------------------------------------------------------------

// SyntaxError reports a byte that is not part of the instruction set.
// The whole parse aborts at the first such byte; no partial program is
// produced.
type SyntaxError struct {
	Offset int  // position of the offending byte in the source
	Byte   byte // the offending byte
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unrecognized instruction byte %q at offset %d", e.Byte, e.Offset)
}

// Compile tokenizes source bytes left to right into a Program. Every byte
// must be one of the eight instruction bytes; anything else (including
// whitespace) fails with a *SyntaxError. End of input ends tokenization;
// no implicit trailing Halt is appended.
func Compile(src []byte) (Program, error) {
	ops := make([]Opcode, 0, len(src))
	for i, b := range src {
		op, ok := opcodeForByte(b)
		if !ok {
			return Program{}, &SyntaxError{Offset: i, Byte: b}
		}
		ops = append(ops, op)
	}
	return Program{ops: ops}, nil
}
