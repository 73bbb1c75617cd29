// Package loader provides binary program loading for the SimProc
// machine.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/fabienpinel/simproc/emu"
)

// Program represents a loaded program image ready for execution.
type Program struct {
	// Text contains the raw instruction words.
	Text []uint32

	// Data contains the initial data segment, including the stack region.
	Data []emu.Word

	// DataEnd is the exclusive upper bound of the writable data region.
	DataEnd uint32
}

// Load reads a binary program file and returns a Program ready for
// Machine.LoadProgram.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open program file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read parses a binary program image: a little-endian header of three
// unsigned 32-bit integers (textsize, datasize, dataend), then textsize
// raw instruction words, then datasize data words. Any short read is
// fatal. When the stack region is smaller than MinStackSize the data
// segment is grown to dataend+MinStackSize with zero-filled cells.
func Read(r io.Reader) (*Program, error) {
	var header struct {
		TextSize uint32
		DataSize uint32
		DataEnd  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if header.TextSize < 1 {
		return nil, fmt.Errorf("empty text segment")
	}
	if header.DataEnd > header.DataSize {
		return nil, fmt.Errorf("dataend %d beyond datasize %d", header.DataEnd, header.DataSize)
	}

	text := make([]uint32, header.TextSize)
	if err := binary.Read(r, binary.LittleEndian, text); err != nil {
		return nil, fmt.Errorf("read text segment: %w", err)
	}

	data := make([]emu.Word, header.DataSize)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("read data segment: %w", err)
	}

	// Guarantee a minimum usable stack above dataend.
	if header.DataSize-header.DataEnd < emu.MinStackSize {
		grown := make([]emu.Word, header.DataEnd+emu.MinStackSize)
		copy(grown, data)
		data = grown
	}

	return &Program{
		Text:    text,
		Data:    data,
		DataEnd: header.DataEnd,
	}, nil
}
