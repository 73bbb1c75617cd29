package emu

import "fmt"

// ErrKind classifies the fatal machine errors.
type ErrKind int

// Error kinds.
const (
	ErrNoError ErrKind = iota
	ErrUnknown         // opcode not in the closed set
	ErrIllegal         // ILLOP executed, or illegal register index
	ErrCondition
	ErrImmediate
	ErrSegText
	ErrSegData
	ErrSegStack
)

var kindNames = []string{
	"NOERROR", "UNKNOWN", "ILLEGAL", "CONDITION",
	"IMMEDIATE", "SEGTEXT", "SEGDATA", "SEGSTACK",
}

// String returns the error kind name.
func (k ErrKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "SEGSTACK"
}

// MachineError is a fatal execution error. All errors are fatal: the
// simulation loop unwinds once and the caller decides to exit. Addr is
// the code address of the offending instruction, captured at fetch.
type MachineError struct {
	Kind ErrKind
	Addr uint32
}

// Error renders the single-line diagnostic written to standard error.
func (e *MachineError) Error() string {
	return fmt.Sprintf("Erreur %s à l'adresse 0x%x.", e.Kind, e.Addr)
}

func errAt(kind ErrKind, addr uint32) *MachineError {
	return &MachineError{Kind: kind, Addr: addr}
}

// warnHalt reports the orderly-termination warning. Warnings do not stop
// anything by themselves.
func (m *Machine) warnHalt(addr uint32) {
	fmt.Fprintf(m.stderr, "Warning HALT à l'adresse 0x%x.\n", addr)
}
