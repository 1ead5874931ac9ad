package vm

import (
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// Machine: the mutable execution state for one run
// ---------------------------------------------------------------------------

// DefaultFuel is the instruction budget when no limit is given.
const DefaultFuel = 1 << 24

// Config describes how to build a Machine. Zero values select the defaults:
// DefaultTapeSize cells, DefaultFuel instructions, an always-exhausted input
// and a discarding output.
type Config struct {
	TapeSize int       // number of tape cells
	Fuel     int       // instruction budget for the run
	Input    io.Reader // byte source for Read; nil reads as exhausted
	Output   io.Writer // byte sink for Print; nil discards
}

// Machine holds all mutable state for a single run: the tape, the IO
// handles, and the remaining fuel. It exclusively owns its tape; every cell
// and cursor mutation goes through the machine so the wrap invariants are
// never left to callers. A Machine is built immediately before a run and
// discarded when the run ends.
type Machine struct {
	tape      *Tape
	in        io.Reader
	out       io.Writer
	fuel      int
	fuelLimit int
	bytesOut  int
}

// NewMachine creates a machine from cfg.
func NewMachine(cfg Config) *Machine {
	fuel := cfg.Fuel
	if fuel <= 0 {
		fuel = DefaultFuel
	}
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	return &Machine{
		tape:      NewTape(cfg.TapeSize),
		in:        cfg.Input,
		out:       out,
		fuel:      fuel,
		fuelLimit: fuel,
	}
}

// Cell returns the value of the current tape cell.
func (m *Machine) Cell() byte {
	return m.tape.Cell()
}

// SetCell stores v in the current tape cell.
func (m *Machine) SetCell(v byte) {
	m.tape.SetCell(v)
}

// AdjustCell adds delta to the current cell, wrapping mod 256.
func (m *Machine) AdjustCell(delta int) {
	m.tape.AdjustCell(delta)
}

// Cursor returns the tape cursor position.
func (m *Machine) Cursor() int {
	return m.tape.Cursor()
}

// StepCursor moves the tape cursor by delta, wrapping in either direction.
func (m *Machine) StepCursor(delta int) {
	m.tape.Step(delta)
}

// ConsumeFuel spends one unit of fuel. It returns false, without spending
// anything, when the budget is already gone.
func (m *Machine) ConsumeFuel() bool {
	if m.fuel <= 0 {
		return false
	}
	m.fuel--
	return true
}

// FuelRemaining returns the unspent fuel.
func (m *Machine) FuelRemaining() int {
	return m.fuel
}

// FuelUsed returns how many instructions this machine has executed.
func (m *Machine) FuelUsed() int {
	return m.fuelLimit - m.fuel
}

// ReadByte reads exactly one byte from the input source. An absent or
// exhausted source, or any read failure, yields 0.
func (m *Machine) ReadByte() byte {
	if m.in == nil {
		return 0
	}
	var buf [1]byte
	if _, err := io.ReadFull(m.in, buf[:]); err != nil {
		return 0
	}
	return buf[0]
}

// WriteByte writes one byte to the output sink and flushes immediately when
// the sink supports it, so output is observed promptly even on interactive
// sinks.
func (m *Machine) WriteByte(b byte) error {
	if _, err := m.out.Write([]byte{b}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if f, ok := m.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	m.bytesOut++
	return nil
}

// BytesWritten returns the number of bytes successfully printed so far.
func (m *Machine) BytesWritten() int {
	return m.bytesOut
}
