// Package manifest handles gotobf.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a gotobf.toml run configuration.
type Manifest struct {
	Machine Machine `toml:"machine"`
	Run     Run     `toml:"run"`
	History History `toml:"history"`

	// Dir is the directory containing the gotobf.toml file (set at load time).
	Dir string `toml:"-"`
}

// Machine sizes the execution machine. Zero values defer to the vm
// package's defaults.
type Machine struct {
	TapeSize int `toml:"tape-size"`
	Fuel     int `toml:"fuel"`
}

// Run configures the default program and stream wiring.
type Run struct {
	Program string `toml:"program"` // source file to run
	Input   string `toml:"input"`   // byte source for Read; empty = stdin
	Output  string `toml:"output"`  // byte sink for Print; empty = stdout
	Dump    string `toml:"dump"`    // snapshot path written after failed runs
}

// History configures the local run log.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load parses a gotobf.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "gotobf.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a gotobf.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "gotobf.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ProgramPath returns the absolute path of the configured program, or ""
// when none is configured.
func (m *Manifest) ProgramPath() string {
	if m.Run.Program == "" {
		return ""
	}
	return m.resolve(m.Run.Program)
}

// InputPath returns the absolute path of the configured input file, or "".
func (m *Manifest) InputPath() string {
	if m.Run.Input == "" {
		return ""
	}
	return m.resolve(m.Run.Input)
}

// OutputPath returns the absolute path of the configured output file, or "".
func (m *Manifest) OutputPath() string {
	if m.Run.Output == "" {
		return ""
	}
	return m.resolve(m.Run.Output)
}

// DumpPath returns the absolute path for failure snapshots, or "".
func (m *Manifest) DumpPath() string {
	if m.Run.Dump == "" {
		return ""
	}
	return m.resolve(m.Run.Dump)
}

// HistoryPath returns the run-log database path, defaulting to
// .gotobf/history.db next to the manifest.
func (m *Manifest) HistoryPath() string {
	if m.History.Path != "" {
		return m.resolve(m.History.Path)
	}
	return filepath.Join(m.Dir, ".gotobf", "history.db")
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}
