package insts

import "fmt"

// Mnemonics, indexed by opcode.
var copNames = []string{
	"ILLOP", "NOP", "LOAD", "STORE", "ADD", "SUB",
	"BRANCH", "CALL", "RET", "PUSH", "POP", "HALT",
}

// Condition names, indexed by tag.
var condNames = []string{"NC", "EQ", "NE", "GT", "GE", "LT", "LE"}

// String renders a condition tag. Out-of-range tags render numerically so
// that rendering stays total.
func (c CondTag) String() string {
	if int(c) < len(condNames) {
		return condNames[c]
	}
	return fmt.Sprintf("?%d", uint8(c))
}

// Mnemonic returns the opcode mnemonic. Unknown opcodes render as COP_<n>.
func (op Op) Mnemonic() string {
	if op.Known() {
		return copNames[op]
	}
	return fmt.Sprintf("COP_%d", uint8(op))
}

// String renders the instruction in the disassembly form used by the
// trace, the debugger and the dumper. It never fails.
func (i Instruction) String() string {
	switch i.Op {
	case OpLOAD, OpSTORE, OpADD, OpSUB:
		return fmt.Sprintf("%s R%02d, %s", i.Op.Mnemonic(), i.RegCond, i.operand())
	case OpBRANCH, OpCALL:
		return fmt.Sprintf("%s %s, %s", i.Op.Mnemonic(), CondTag(i.RegCond), i.operand())
	case OpPUSH, OpPOP:
		return fmt.Sprintf("%s %s", i.Op.Mnemonic(), i.operand())
	default:
		// ILLOP, NOP, RET, HALT and unknown opcodes.
		return i.Op.Mnemonic()
	}
}

// operand renders the operand by addressing mode:
// immediate #<value>, indexed <offset>[R<rindex>], absolute @0x<addr>.
func (i Instruction) operand() string {
	switch i.Mode {
	case ModeImmediate:
		return fmt.Sprintf("#%d", i.Value)
	case ModeIndexed:
		return fmt.Sprintf("%d[R%02d]", i.Offset, i.RIndex)
	default:
		return fmt.Sprintf("@0x%04x", i.Address)
	}
}
