// Package emu provides functional emulation of the SimProc machine.
package emu

import (
	"io"
	"os"

	"github.com/fabienpinel/simproc/insts"
)

// Word is the machine word: all data cells, registers and immediate
// operands are signed 32-bit integers.
type Word int32

// NRegisters is the number of general registers. R15 doubles as the
// stack pointer.
const NRegisters = 16

// SPRegister is the register index aliased to the stack pointer.
const SPRegister = 15

// MinStackSize is the minimum number of stack slots guaranteed by the
// binary loader.
const MinStackSize = 16

// CC represents the condition code set by computation and load
// instructions.
type CC uint8

// Condition codes.
const (
	CCU CC = iota // undefined, initial state
	CCN           // last result < 0
	CCZ           // last result == 0
	CCP           // last result > 0
)

// String renders the condition code for dumps.
func (cc CC) String() string {
	switch cc {
	case CCN:
		return "N"
	case CCZ:
		return "Z"
	case CCP:
		return "P"
	default:
		return "U"
	}
}

// Machine holds the complete state of one SimProc instance: registers,
// condition code, program counter, and the text and data segments. The
// stack lives in data[dataend:datasize] and grows downward. A machine is
// exclusively owned by one caller; nothing in this package is safe for
// concurrent use.
type Machine struct {
	// registers[SPRegister] is the stack pointer.
	registers [NRegisters]Word

	// pc indexes the next instruction to fetch.
	pc uint32

	// cc is the current condition code.
	cc CC

	// text is the code segment. Immutable after load.
	text []uint32

	// data is the data segment, including the stack region.
	data []Word

	// dataend is the exclusive upper bound of the writable data region;
	// the stack starts here.
	dataend uint32

	decoder *insts.Decoder

	// I/O: trace, dumps and the debug prompt go to stdout, warnings go
	// to stderr, and the debugger reads commands from stdin.
	stdout io.Writer
	stderr io.Writer
	stdin  io.ByteReader
}

// MachineOption is a functional option for configuring the Machine.
type MachineOption func(*Machine)

// WithStdout sets a custom stdout writer.
func WithStdout(w io.Writer) MachineOption {
	return func(m *Machine) {
		m.stdout = w
	}
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) MachineOption {
	return func(m *Machine) {
		m.stderr = w
	}
}

// WithStdin sets the reader the interactive debugger takes its commands
// from.
func WithStdin(r io.ByteReader) MachineOption {
	return func(m *Machine) {
		m.stdin = r
	}
}

// NewMachine creates an empty machine. It must be populated with
// LoadProgram before it can run anything.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{
		decoder: insts.NewDecoder(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   stdinByteReader{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// stdinByteReader reads single bytes from the process stdin without
// buffering ahead.
type stdinByteReader struct{}

func (stdinByteReader) ReadByte() (byte, error) {
	var b [1]byte
	_, err := os.Stdin.Read(b[:])
	return b[0], err
}

// LoadProgram resets the machine and replaces both segments. Ownership of
// text and data transfers to the machine. All registers are cleared, the
// condition code becomes U, PC is 0 and SP points to the last data slot.
func (m *Machine) LoadProgram(text []uint32, data []Word, dataend uint32) {
	m.text = text
	m.data = data
	m.dataend = dataend

	for i := range m.registers {
		m.registers[i] = 0
	}
	m.cc = CCU
	m.pc = 0
	m.registers[SPRegister] = Word(len(data) - 1)
}

// PC returns the index of the next instruction to fetch.
func (m *Machine) PC() uint32 {
	return m.pc
}

// CC returns the current condition code.
func (m *Machine) CC() CC {
	return m.cc
}

// Reg returns the content of register r.
func (m *Machine) Reg(r int) Word {
	return m.registers[r]
}

// SetReg writes register r. SP and R15 are the same cell.
func (m *Machine) SetReg(r int, v Word) {
	m.registers[r] = v
}

// SP returns the stack pointer, which aliases R15.
func (m *Machine) SP() Word {
	return m.registers[SPRegister]
}

// Text returns the code segment.
func (m *Machine) Text() []uint32 {
	return m.text
}

// Data returns the data segment.
func (m *Machine) Data() []Word {
	return m.data
}

// DataEnd returns the exclusive upper bound of the data region.
func (m *Machine) DataEnd() uint32 {
	return m.dataend
}
