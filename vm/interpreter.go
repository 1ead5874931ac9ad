package vm

import (
	"github.com/tliron/commonlog"

	"github.com/chazu/gotobf/compiler"
)

var log = commonlog.GetLogger("gotobf.vm")

// ---------------------------------------------------------------------------
// Transfer: where control goes after an instruction executes
// ---------------------------------------------------------------------------

// Transfer is the control-transfer signal an instruction yields: either
// advance to the next address or jump to an absolute address. The tagged
// form keeps the interpreter's decision type-checked instead of encoded in
// a sentinel integer.
type Transfer struct {
	jump   bool
	target int
}

// Advance signals a move to the next instruction address.
func Advance() Transfer {
	return Transfer{}
}

// JumpTo signals a jump to the absolute instruction address target.
func JumpTo(target int) Transfer {
	return Transfer{jump: true, target: target}
}

// Next resolves the transfer against the current instruction address.
func (t Transfer) Next(addr int) int {
	if t.jump {
		return t.target
	}
	return addr + 1
}

// ---------------------------------------------------------------------------
// Interpreter: the fetch/dispatch loop
// ---------------------------------------------------------------------------

// Interpreter drives a program against a machine until the program halts,
// the fuel budget runs out, or control leaves the instruction-address range.
type Interpreter struct {
	program compiler.Program
	machine *Machine
}

// NewInterpreter creates an interpreter for one run of program on machine.
func NewInterpreter(program compiler.Program, machine *Machine) *Interpreter {
	return &Interpreter{program: program, machine: machine}
}

// Run executes the program from address 0. It returns nil when a Halt
// instruction is reached, ErrFuelExhausted when the budget runs out first,
// and *InvalidJumpError when the instruction address leaves [0, Len) by
// jump or by advancing past the end. Output write failures propagate as-is.
//
// Fuel is charged per executed instruction. Halt terminates the loop before
// execution, so it is never dispatched and costs nothing.
func (in *Interpreter) Run() error {
	m := in.machine
	addr := 0
	for {
		if addr < 0 || addr >= in.program.Len() {
			log.Debugf("address %d out of range after %d instructions", addr, m.FuelUsed())
			return &InvalidJumpError{Target: addr, Limit: in.program.Len()}
		}
		op := in.program.At(addr)
		if op == compiler.OpHalt {
			log.Debugf("halted at address %d after %d instructions", addr, m.FuelUsed())
			return nil
		}
		if !m.ConsumeFuel() {
			log.Debugf("fuel exhausted at address %d", addr)
			return ErrFuelExhausted
		}
		transfer, err := execute(op, m)
		if err != nil {
			return err
		}
		addr = transfer.Next(addr)
	}
}

// execute dispatches a single opcode against the machine. The instruction
// set is closed, so dispatch is a plain switch; OpHalt never reaches here.
func execute(op compiler.Opcode, m *Machine) (Transfer, error) {
	switch op {
	case compiler.OpIncrement:
		m.AdjustCell(1)
	case compiler.OpDecrement:
		m.AdjustCell(-1)
	case compiler.OpStepForward:
		m.StepCursor(1)
	case compiler.OpStepBackward:
		m.StepCursor(-1)
	case compiler.OpPrint:
		if err := m.WriteByte(m.Cell()); err != nil {
			return Transfer{}, err
		}
	case compiler.OpRead:
		m.SetCell(m.ReadByte())
	case compiler.OpGoto:
		return JumpTo(int(m.Cell())), nil
	}
	return Advance(), nil
}

// Run compiles source and executes it on a fresh machine built from cfg.
// It is the whole run entry contract in one call: compilation failures
// surface as *compiler.SyntaxError before any execution happens.
func Run(source []byte, cfg Config) error {
	program, err := compiler.Compile(source)
	if err != nil {
		return err
	}
	log.Debugf("compiled program: %d instructions", program.Len())
	return NewInterpreter(program, NewMachine(cfg)).Run()
}
