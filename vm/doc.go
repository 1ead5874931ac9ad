// Package vm implements the Goto-Brainfuck machine.
//
// This package contains:
//   - the circular byte tape and its cursor
//   - the machine state: tape, IO handles, fuel budget
//   - the fetch/dispatch interpreter loop
//   - CBOR machine snapshots for post-mortem inspection and resume
package vm
