package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fabienpinel/simproc/insts"
)

var _ = Describe("Rendering", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	render := func(raw uint32) string {
		return decoder.Decode(raw).String()
	}

	It("should render register operations with the register and operand", func() {
		Expect(render(insts.Absolute(insts.OpLOAD, 1, 10))).To(Equal("LOAD R01, @0x000a"))
		Expect(render(insts.Immediate(insts.OpADD, 1, 0))).To(Equal("ADD R01, #0"))
		Expect(render(insts.Immediate(insts.OpSUB, 12, -7))).To(Equal("SUB R12, #-7"))
		Expect(render(insts.Indexed(insts.OpSTORE, 1, 2, 3))).To(Equal("STORE R01, 3[R02]"))
		Expect(render(insts.Indexed(insts.OpADD, 0, 15, -5))).To(Equal("ADD R00, -5[R15]"))
	})

	It("should render branches and calls with the condition tag", func() {
		Expect(render(insts.Absolute(insts.OpBRANCH, uint8(insts.CondGE), 4))).
			To(Equal("BRANCH GE, @0x0004"))
		Expect(render(insts.Absolute(insts.OpCALL, uint8(insts.CondNC), 3))).
			To(Equal("CALL NC, @0x0003"))
	})

	It("should render out-of-range condition tags numerically", func() {
		Expect(render(insts.Absolute(insts.OpBRANCH, 9, 0))).To(Equal("BRANCH ?9, @0x0000"))
	})

	It("should render push and pop with the operand alone", func() {
		Expect(render(insts.Immediate(insts.OpPUSH, 0, 3))).To(Equal("PUSH #3"))
		Expect(render(insts.Absolute(insts.OpPOP, 0, 2))).To(Equal("POP @0x0002"))
	})

	It("should render operand-less opcodes as the bare mnemonic", func() {
		Expect(render(insts.Bare(insts.OpILLOP))).To(Equal("ILLOP"))
		Expect(render(insts.Bare(insts.OpNOP))).To(Equal("NOP"))
		Expect(render(insts.Bare(insts.OpRET))).To(Equal("RET"))
		Expect(render(insts.Bare(insts.OpHALT))).To(Equal("HALT"))
	})

	It("should render unknown opcodes without aborting", func() {
		Expect(render(insts.Absolute(insts.Op(28), 0, 0))).To(Equal("COP_28"))
	})
})
