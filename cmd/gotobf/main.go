// Goto-Brainfuck CLI - compiles and runs .gbf programs
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/gotobf/compiler"
	"github.com/chazu/gotobf/history"
	"github.com/chazu/gotobf/manifest"
	"github.com/chazu/gotobf/vm"
)

// Exit codes, one per failure kind so hosts can tell "bad program",
// "ran too long" and "jumped off the map" apart.
const (
	exitOK          = 0
	exitUsage       = 1
	exitSyntax      = 2
	exitFuel        = 3
	exitInvalidJump = 4
	exitIO          = 5
)

func main() {
	expr := flag.String("e", "", "Run the given program text instead of a file")
	tapeSize := flag.Int("tape", 0, "Tape size in cells (default 65536)")
	fuel := flag.Int("fuel", 0, "Instruction budget (default 2^24)")
	inPath := flag.String("in", "", "Byte source for ',' (default stdin)")
	outPath := flag.String("o", "", "Byte sink for '.' (default stdout)")
	dumpPath := flag.String("dump", "", "Write a machine snapshot here after the run")
	restorePath := flag.String("restore", "", "Seed the machine from a snapshot file")
	historyPath := flag.String("history", "", "Record the run in this SQLite log")
	noHistory := flag.Bool("no-history", false, "Skip history recording even if configured")
	listRuns := flag.Int("list-runs", 0, "List the N most recent recorded runs and exit")
	verbosity := flag.Int("v", 0, "Log verbosity (0-2)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gotobf [options] [program.gbf | -]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a Goto-Brainfuck program. With no program argument the source\n")
		fmt.Fprintf(os.Stderr, "comes from -e, or from the [run] section of a gotobf.toml found by\n")
		fmt.Fprintf(os.Stderr, "walking up from the current directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gotobf examples/three.gbf          # Run a program file\n")
		fmt.Fprintf(os.Stderr, "  gotobf -e '+++.;'                  # Run inline source\n")
		fmt.Fprintf(os.Stderr, "  gotobf -fuel 1000 counter.gbf      # Tight instruction budget\n")
		fmt.Fprintf(os.Stderr, "  gotobf -dump core.gbfimg prog.gbf  # Snapshot the machine afterward\n")
		fmt.Fprintf(os.Stderr, "  gotobf -restore core.gbfimg -e '.;'  # Inspect a dumped cell\n")
		fmt.Fprintf(os.Stderr, "  gotobf -history runs.db -list-runs 10\n")
	}
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("gotobf.cli")

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring manifest: %v\n", err)
		m = nil
	}

	if *listRuns > 0 {
		os.Exit(listRecentRuns(resolveHistoryPath(*historyPath, m), *listRuns))
	}

	source, err := resolveSource(*expr, flag.Args(), m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(exitUsage)
	}

	input, output, cleanup, err := resolveStreams(*inPath, *outPath, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitIO)
	}
	defer cleanup()

	machine, err := buildMachine(*restorePath, *tapeSize, *fuel, m, input, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitIO)
	}

	program, compileErr := compiler.Compile(source)
	var runErr error
	if compileErr == nil {
		log.Debugf("running %d-instruction program", program.Len())
		runErr = vm.NewInterpreter(program, machine).Run()
	}

	if compileErr == nil {
		if path := resolveDumpPath(*dumpPath, m); path != "" {
			if err := writeSnapshot(path, machine); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: snapshot not written: %v\n", err)
			}
		}
		if !*noHistory {
			recordRun(resolveHistoryPath(*historyPath, m), source, machine, runErr)
		}
	}

	os.Exit(report(compileErr, runErr))
}

// report prints the failure (if any) and returns the process exit code.
func report(compileErr, runErr error) int {
	var synErr *compiler.SyntaxError
	var jumpErr *vm.InvalidJumpError
	switch {
	case errors.As(compileErr, &synErr):
		fmt.Fprintf(os.Stderr, "Syntax error: %v\n", synErr)
		return exitSyntax
	case compileErr != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", compileErr)
		return exitUsage
	case errors.Is(runErr, vm.ErrFuelExhausted):
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return exitFuel
	case errors.As(runErr, &jumpErr):
		fmt.Fprintf(os.Stderr, "Error: %v\n", jumpErr)
		return exitInvalidJump
	case runErr != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return exitIO
	}
	return exitOK
}

// resolveSource picks the program bytes: -e text, a file argument ("-" for
// stdin), or the manifest's configured program.
func resolveSource(expr string, args []string, m *manifest.Manifest) ([]byte, error) {
	if expr != "" {
		return []byte(expr), nil
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one program argument, got %d", len(args))
	}
	if len(args) == 1 {
		if args[0] == "-" {
			return io.ReadAll(os.Stdin)
		}
		return os.ReadFile(args[0])
	}
	if m != nil && m.ProgramPath() != "" {
		return os.ReadFile(m.ProgramPath())
	}
	return nil, errors.New("no program given")
}

// resolveStreams wires the Read source and Print sink. Flags win over the
// manifest; the defaults are stdin and stdout.
func resolveStreams(inPath, outPath string, m *manifest.Manifest) (io.Reader, io.Writer, func(), error) {
	if inPath == "" && m != nil {
		inPath = m.InputPath()
	}
	if outPath == "" && m != nil {
		outPath = m.OutputPath()
	}

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	var input io.Reader = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("opening input: %w", err)
		}
		closers = append(closers, f)
		input = f
	}

	var output io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			cleanup()
			return nil, nil, func() {}, fmt.Errorf("creating output: %w", err)
		}
		closers = append(closers, f)
		output = f
	}

	return input, output, cleanup, nil
}

// buildMachine creates the machine, either fresh from the sizing options or
// seeded from a snapshot file.
func buildMachine(restorePath string, tapeSize, fuel int, m *manifest.Manifest, input io.Reader, output io.Writer) (*vm.Machine, error) {
	if restorePath != "" {
		data, err := os.ReadFile(restorePath)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		s, err := vm.UnmarshalSnapshot(data)
		if err != nil {
			return nil, err
		}
		if fuel > 0 {
			s.Fuel = fuel
		}
		return vm.NewMachineFromSnapshot(s, input, output), nil
	}

	if m != nil {
		if tapeSize == 0 {
			tapeSize = m.Machine.TapeSize
		}
		if fuel == 0 {
			fuel = m.Machine.Fuel
		}
	}
	return vm.NewMachine(vm.Config{
		TapeSize: tapeSize,
		Fuel:     fuel,
		Input:    input,
		Output:   output,
	}), nil
}

func resolveDumpPath(dumpPath string, m *manifest.Manifest) string {
	if dumpPath != "" {
		return dumpPath
	}
	if m != nil {
		return m.DumpPath()
	}
	return ""
}

func resolveHistoryPath(historyPath string, m *manifest.Manifest) string {
	if historyPath != "" {
		return historyPath
	}
	if m != nil && m.History.Enabled {
		return m.HistoryPath()
	}
	return ""
}

func writeSnapshot(path string, machine *vm.Machine) error {
	data, err := vm.MarshalSnapshot(machine.Snapshot())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// recordRun appends the run outcome to the history log, when one is
// configured. Recording failures never change the run's exit code.
func recordRun(path string, source []byte, machine *vm.Machine, runErr error) {
	if path == "" {
		return
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	err = store.Record(history.Run{
		ProgramHash: history.HashProgram(source),
		Outcome:     outcomeFor(runErr),
		FuelUsed:    machine.FuelUsed(),
		BytesOut:    machine.BytesWritten(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run not recorded: %v\n", err)
	}
}

// outcomeFor maps a run result to a history outcome label.
func outcomeFor(runErr error) string {
	var jumpErr *vm.InvalidJumpError
	switch {
	case runErr == nil:
		return history.OutcomeHalted
	case errors.Is(runErr, vm.ErrFuelExhausted):
		return history.OutcomeFuelExhausted
	case errors.As(runErr, &jumpErr):
		return history.OutcomeInvalidJump
	}
	return history.OutcomeIOError
}

func listRecentRuns(path string, limit int) int {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: no history log configured (use -history or a manifest)")
		return exitUsage
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitIO
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitIO
	}
	for _, r := range runs {
		fmt.Printf("%s  %-14s  fuel=%-8d out=%-6d %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Outcome, r.FuelUsed, r.BytesOut, r.ProgramHash[:12])
	}
	return exitOK
}
