package history

import (
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	hash := HashProgram([]byte("+++.;"))
	runs := []Run{
		{ProgramHash: hash, Outcome: OutcomeHalted, FuelUsed: 4, BytesOut: 1},
		{ProgramHash: hash, Outcome: OutcomeFuelExhausted, FuelUsed: 1000, BytesOut: 0},
	}
	for _, r := range runs {
		if err := store.Record(r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent runs = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Outcome != OutcomeFuelExhausted {
		t.Errorf("newest outcome = %q, want %q", got[0].Outcome, OutcomeFuelExhausted)
	}
	if got[1].Outcome != OutcomeHalted {
		t.Errorf("oldest outcome = %q, want %q", got[1].Outcome, OutcomeHalted)
	}
	if got[0].ProgramHash != hash {
		t.Errorf("program hash = %q, want %q", got[0].ProgramHash, hash)
	}
	if got[0].FuelUsed != 1000 {
		t.Errorf("fuel used = %d, want 1000", got[0].FuelUsed)
	}
	if got[0].StartedAt.IsZero() {
		t.Error("StartedAt not filled")
	}
}

func TestRecentLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if err := store.Record(Run{ProgramHash: "x", Outcome: OutcomeHalted}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	got, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("recent runs = %d, want 3", len(got))
	}
}

func TestHashProgramStable(t *testing.T) {
	a := HashProgram([]byte("+++.;"))
	b := HashProgram([]byte("+++.;"))
	c := HashProgram([]byte("---.;"))
	if a != b {
		t.Error("same source hashed differently")
	}
	if a == c {
		t.Error("different sources hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
