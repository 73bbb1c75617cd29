package emu

import (
	"fmt"

	"github.com/fabienpinel/simproc/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true after HALT executed.
	Halted bool

	// Err is set when a fatal machine error occurred.
	Err error
}

// Step fetches, traces and executes the next instruction. The trace line
// is written before execution. Stepping past the end of the code segment
// is a SEGTEXT error; Run never does it, only a manual caller can.
func (m *Machine) Step() StepResult {
	return m.step(nil)
}

// Run executes instructions until HALT or a fatal error. When debug is
// true the interactive prompt runs before every instruction, until the
// user leaves debug mode.
func (m *Machine) Run(debug bool) error {
	for m.pc < uint32(len(m.text)) {
		result := m.step(&debug)
		if result.Err != nil {
			return result.Err
		}
		if result.Halted {
			return nil
		}
	}
	return nil
}

func (m *Machine) step(debug *bool) StepResult {
	if m.pc >= uint32(len(m.text)) {
		return StepResult{Err: errAt(ErrSegText, m.pc)}
	}

	// Fetch and decode. PC is incremented before execution: the value
	// pushed by CALL is the natural fall-through, and errors are
	// attributed to the address captured here.
	instr := m.decoder.Decode(m.text[m.pc])
	pcAt := m.pc
	m.pc++

	m.trace("EXECUTING", instr, pcAt)
	if debug != nil && *debug {
		*debug = m.debugAsk()
	}

	keepgoing, err := m.decodeExecute(instr, pcAt)
	return StepResult{Halted: !keepgoing && err == nil, Err: err}
}

// trace writes the instruction about to execute, in symbolic form.
func (m *Machine) trace(msg string, instr insts.Instruction, addr uint32) {
	fmt.Fprintf(m.stdout, "TRACE: %s: 0x%04x: %s\n", msg, addr, instr)
}
