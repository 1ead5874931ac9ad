package vm

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Snapshot: a CBOR image of machine state
// ---------------------------------------------------------------------------

// SnapshotVersion is the current snapshot format version.
// v1: cells, cursor, remaining fuel
const SnapshotVersion uint32 = 1

// Snapshot is a serializable image of a machine's state: every tape cell,
// the cursor, and the remaining fuel. It is written after a run for
// post-mortem inspection and can seed a fresh machine.
type Snapshot struct {
	Version uint32 `cbor:"version"`
	Cells   []byte `cbor:"cells"`
	Cursor  int    `cbor:"cursor"`
	Fuel    int    `cbor:"fuel"`
}

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot captures the machine's current state.
func (m *Machine) Snapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Cells:   m.tape.Cells(),
		Cursor:  m.tape.Cursor(),
		Fuel:    m.fuel,
	}
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(s)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes, rejecting
// unknown format versions.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("vm: unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// NewMachineFromSnapshot builds a machine whose tape, cursor, and remaining
// fuel match the snapshot, wired to the given streams. A snapshot taken
// after fuel exhaustion restores with zero fuel; give the machine a new
// budget via the snapshot's Fuel field if it should keep running.
func NewMachineFromSnapshot(s *Snapshot, input io.Reader, output io.Writer) *Machine {
	m := NewMachine(Config{
		TapeSize: len(s.Cells),
		Input:    input,
		Output:   output,
	})
	copy(m.tape.cells, s.Cells)
	m.tape.SetCursor(s.Cursor)
	m.fuel = s.Fuel
	m.fuelLimit = s.Fuel
	return m
}
