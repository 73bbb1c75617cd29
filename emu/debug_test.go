package emu_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fabienpinel/simproc/emu"
	"github.com/fabienpinel/simproc/insts"
)

var _ = Describe("Interactive debugger", func() {
	var (
		stdoutBuf *bytes.Buffer
		stderrBuf *bytes.Buffer
	)

	BeforeEach(func() {
		stdoutBuf = &bytes.Buffer{}
		stderrBuf = &bytes.Buffer{}
	})

	// runWith runs a two-instruction program (NOP, HALT) in debug mode
	// with the given keystrokes on stdin.
	runWith := func(input string) error {
		m := emu.NewMachine(
			emu.WithStdout(stdoutBuf),
			emu.WithStderr(stderrBuf),
			emu.WithStdin(strings.NewReader(input)),
		)
		m.LoadProgram([]uint32{
			insts.Bare(insts.OpNOP),
			insts.Bare(insts.OpHALT),
		}, make([]emu.Word, 20), 10)
		return m.Run(true)
	}

	It("should prompt once per instruction and step on newline", func() {
		Expect(runWith("\n\n")).To(BeNil())
		Expect(strings.Count(stdoutBuf.String(), "DEBUG? ")).To(Equal(2))
	})

	It("should step on 's'", func() {
		Expect(runWith("ss")).To(BeNil())
		Expect(strings.Count(stdoutBuf.String(), "DEBUG? ")).To(Equal(2))
	})

	It("should leave debug mode permanently on 'c'", func() {
		Expect(runWith("c")).To(BeNil())
		Expect(strings.Count(stdoutBuf.String(), "DEBUG? ")).To(Equal(1))
	})

	It("should leave debug mode on end of input", func() {
		Expect(runWith("")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("DEBUG? "))
		Expect(stderrBuf.String()).To(ContainSubstring("Warning HALT"))
	})

	It("should print the help menu on 'h' and reprompt", func() {
		Expect(runWith("hcc")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("Available commands:"))
		Expect(strings.Count(stdoutBuf.String(), "DEBUG? ")).To(Equal(2))
	})

	It("should dump registers on 'r' without mutating state", func() {
		m := emu.NewMachine(
			emu.WithStdout(stdoutBuf),
			emu.WithStderr(stderrBuf),
			emu.WithStdin(strings.NewReader("r\nc")),
		)
		m.LoadProgram([]uint32{
			insts.Bare(insts.OpNOP),
			insts.Bare(insts.OpHALT),
		}, make([]emu.Word, 20), 10)
		m.SetReg(3, 42)

		Expect(m.Run(true)).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("### REGISTERS ###"))
		Expect(stdoutBuf.String()).To(ContainSubstring("R03 : 0x0000002a (42)"))
		Expect(m.Reg(3)).To(Equal(emu.Word(42)))
	})

	It("should dump the data segment on 'd'", func() {
		Expect(runWith("dc")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("### DATA ###"))
	})

	It("should dump the program on 't' and 'p'", func() {
		Expect(runWith("tc")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("### PROGRAM ###"))

		stdoutBuf.Reset()
		Expect(runWith("pc")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("### PROGRAM ###"))
	})

	It("should dump registers and data on 'm'", func() {
		Expect(runWith("mc")).To(BeNil())
		Expect(stdoutBuf.String()).To(ContainSubstring("### REGISTERS ###"))
		Expect(stdoutBuf.String()).To(ContainSubstring("### DATA ###"))
	})

	It("should ignore unrecognized commands and reprompt", func() {
		Expect(runWith("xcc")).To(BeNil())
		Expect(strings.Count(stdoutBuf.String(), "DEBUG? ")).To(Equal(2))
	})
})
