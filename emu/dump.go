package emu

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Diagnostic printing: registers, data, disassembled program, and the
// memory dump used to snapshot a machine image. The debugger dispatches
// to these; they are also usable on their own.

// PrintCPU writes the general registers, PC and CC.
func (m *Machine) PrintCPU(w io.Writer) {
	fmt.Fprintf(w, "\n### REGISTERS ###\n")
	for i := 0; i < NRegisters; i++ {
		if i%3 == 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprintf(w, "R%02d : 0x%08x (%d)\t ", i, uint32(m.registers[i]), m.registers[i])
		if i%3 == 2 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\nPC : 0x%08x (%d) | CC : %s\n", m.pc, m.pc, m.cc)
}

// PrintData writes the data segment in hexadecimal and decimal.
func (m *Machine) PrintData(w io.Writer) {
	fmt.Fprintf(w, "\n### DATA ###\n")
	for i, v := range m.data {
		if i%3 == 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprintf(w, "0x%04x : 0x%08x %d\t ", i, uint32(v), v)
		if i%3 == 2 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\nData size : %d\nData end : 0x%08x (%d)\n",
		len(m.data), m.dataend, m.dataend)
}

// PrintProgram writes the code segment in symbolic form, one instruction
// per line, preceded by its address and raw encoding.
func (m *Machine) PrintProgram(w io.Writer) {
	fmt.Fprintf(w, "\n### PROGRAM ###\n")
	for i, raw := range m.text {
		fmt.Fprintf(w, "\t0x%04x : 0x%08x %s\n", i, raw, m.decoder.Decode(raw))
	}
	fmt.Fprintf(w, "\nProgram size : %d\n", len(m.text))
}

// PrintImage writes a copy-pastable textual image of the text and data
// segments.
func (m *Machine) PrintImage(w io.Writer) {
	fmt.Fprintf(w, "Instruction text[] = {\n")
	for i, raw := range m.text {
		if i%4 == 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprintf(w, "0x%08x, ", raw)
		if i%4 == 3 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\n};\nunsigned textsize = %d\n\n", len(m.text))

	fmt.Fprintf(w, "Word data[] = {\n")
	for i, v := range m.data {
		if i%4 == 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprintf(w, "0x%08x, ", uint32(v))
		if i%4 == 3 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\n};\nunsigned datasize = %d\nunsigned dataend = %d\n",
		len(m.data), m.dataend)
}

// WriteBinary writes the machine image in the binary program format:
// little-endian header (textsize, datasize, dataend), then the raw
// instruction words, then the data words. The loader reads this layout
// back.
func (m *Machine) WriteBinary(w io.Writer) error {
	header := []uint32{uint32(len(m.text)), uint32(len(m.data)), m.dataend}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.text); err != nil {
		return fmt.Errorf("write text segment: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, m.data); err != nil {
		return fmt.Errorf("write data segment: %w", err)
	}
	return nil
}

// DumpMemory writes the textual image to stdout and a binary image to
// dump.bin.
func (m *Machine) DumpMemory() error {
	m.PrintImage(m.stdout)

	f, err := os.Create("dump.bin")
	if err != nil {
		return fmt.Errorf("create dump.bin: %w", err)
	}
	defer func() { _ = f.Close() }()

	return m.WriteBinary(f)
}
