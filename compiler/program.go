package compiler

// ---------------------------------------------------------------------------
// Program: the immutable instruction sequence
// ---------------------------------------------------------------------------

// Program is an ordered, 0-indexed sequence of opcodes. Its length defines
// the valid instruction-address range [0, Len). A Program is immutable once
// built; the only way to construct a non-empty one is Compile.
type Program struct {
	ops []Opcode
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.ops)
}

// At returns the opcode at the given instruction address.
// The address must be in [0, Len).
func (p Program) At(addr int) Opcode {
	return p.ops[addr]
}

// Source disassembles the program back to its source bytes, the exact
// inverse of Compile.
func (p Program) Source() []byte {
	src := make([]byte, len(p.ops))
	for i, op := range p.ops {
		src[i] = op.SourceByte()
	}
	return src
}
