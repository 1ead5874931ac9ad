package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[machine]
tape-size = 4096
fuel = 100000

[run]
program = "main.gbf"
input = "input.bin"
dump = "core.gbfimg"

[history]
enabled = true
path = "runs.db"
`
	if err := os.WriteFile(filepath.Join(dir, "gotobf.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Machine.TapeSize != 4096 {
		t.Errorf("tape-size = %d, want 4096", m.Machine.TapeSize)
	}
	if m.Machine.Fuel != 100000 {
		t.Errorf("fuel = %d, want 100000", m.Machine.Fuel)
	}
	if m.Run.Program != "main.gbf" {
		t.Errorf("program = %q, want main.gbf", m.Run.Program)
	}
	if !m.History.Enabled {
		t.Error("history not enabled")
	}

	absDir, _ := filepath.Abs(dir)
	if m.ProgramPath() != filepath.Join(absDir, "main.gbf") {
		t.Errorf("ProgramPath = %q", m.ProgramPath())
	}
	if m.InputPath() != filepath.Join(absDir, "input.bin") {
		t.Errorf("InputPath = %q", m.InputPath())
	}
	if m.DumpPath() != filepath.Join(absDir, "core.gbfimg") {
		t.Errorf("DumpPath = %q", m.DumpPath())
	}
	if m.HistoryPath() != filepath.Join(absDir, "runs.db") {
		t.Errorf("HistoryPath = %q", m.HistoryPath())
	}
	if m.OutputPath() != "" {
		t.Errorf("OutputPath = %q, want empty (stdout)", m.OutputPath())
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gotobf.toml"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Machine.TapeSize != 0 || m.Machine.Fuel != 0 {
		t.Error("machine sizing should be zero (vm defaults apply)")
	}
	if m.History.Enabled {
		t.Error("history should default to disabled")
	}
	absDir, _ := filepath.Abs(dir)
	if m.HistoryPath() != filepath.Join(absDir, ".gotobf", "history.db") {
		t.Errorf("HistoryPath = %q", m.HistoryPath())
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gotobf.toml"), []byte("[machine]\nfuel = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(sub)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil manifest")
	}
	if m.Machine.Fuel != 7 {
		t.Errorf("fuel = %d, want 7", m.Machine.Fuel)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m != nil {
		t.Errorf("manifest = %+v, want nil", m)
	}
}
