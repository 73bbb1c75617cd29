package emu

import "github.com/fabienpinel/simproc/insts"

// Per-opcode execution. Every operation validates its register, its
// addressing mode and any memory access before touching state. addr is
// the code address of the instruction, used for error attribution.

// decodeExecute dispatches one decoded instruction. It returns false when
// the machine must stop (HALT), and a non-nil error on any fatal
// condition.
func (m *Machine) decodeExecute(instr insts.Instruction, addr uint32) (bool, error) {
	switch instr.Op {
	case insts.OpILLOP:
		return false, errAt(ErrIllegal, addr)
	case insts.OpNOP:
		return true, nil
	case insts.OpLOAD:
		return true, m.load(instr, addr)
	case insts.OpSTORE:
		return true, m.store(instr, addr)
	case insts.OpADD:
		return true, m.add(instr, addr)
	case insts.OpSUB:
		return true, m.sub(instr, addr)
	case insts.OpBRANCH:
		return true, m.branch(instr, addr)
	case insts.OpCALL:
		return true, m.call(instr, addr)
	case insts.OpRET:
		return true, m.ret(instr, addr)
	case insts.OpPUSH:
		return true, m.push(instr, addr)
	case insts.OpPOP:
		return true, m.pop(instr, addr)
	case insts.OpHALT:
		m.warnHalt(addr)
		return false, nil
	default:
		return false, errAt(ErrUnknown, addr)
	}
}

// checkImmediate rejects the immediate mode on operations that forbid it.
func (m *Machine) checkImmediate(instr insts.Instruction, addr uint32) error {
	if instr.Mode == insts.ModeImmediate {
		return errAt(ErrImmediate, addr)
	}
	return nil
}

// checkRegister validates a register index.
func (m *Machine) checkRegister(reg uint8, addr uint32) error {
	if reg >= NRegisters {
		return errAt(ErrIllegal, addr)
	}
	return nil
}

// resolveAddress computes the effective data address of a non-immediate
// instruction and validates it against the data region. The arithmetic is
// done in int64 so that rindex + offset cannot wrap before the bounds
// check. Must not be called on immediate-mode instructions.
func (m *Machine) resolveAddress(instr insts.Instruction, addr uint32) (uint32, error) {
	var effective int64
	if instr.Mode == insts.ModeIndexed {
		effective = int64(m.registers[instr.RIndex]) + int64(instr.Offset)
	} else {
		effective = int64(instr.Address)
	}
	if effective < 0 || effective >= int64(m.dataend) {
		return 0, errAt(ErrSegData, addr)
	}
	return uint32(effective), nil
}

// checkStack validates a stack slot against [dataend, datasize).
func (m *Machine) checkStack(sp int64, addr uint32) error {
	if sp < int64(m.dataend) || sp >= int64(len(m.data)) {
		return errAt(ErrSegStack, addr)
	}
	return nil
}

// conditionHolds tests a condition tag against the current condition
// code. The tests are equality checks on the CC value, so with CC still
// undefined only NC and NE hold.
func (m *Machine) conditionHolds(tag uint8, addr uint32) (bool, error) {
	switch insts.CondTag(tag) {
	case insts.CondNC:
		return true, nil
	case insts.CondEQ:
		return m.cc == CCZ, nil
	case insts.CondNE:
		return m.cc != CCZ, nil
	case insts.CondGT:
		return m.cc == CCP, nil
	case insts.CondGE:
		return m.cc == CCP || m.cc == CCZ, nil
	case insts.CondLT:
		return m.cc == CCN, nil
	case insts.CondLE:
		return m.cc == CCN || m.cc == CCZ, nil
	default:
		return false, errAt(ErrCondition, addr)
	}
}

// updateCC sets the condition code from the signed value just written to
// register reg.
func (m *Machine) updateCC(reg uint8) {
	v := m.registers[reg]
	switch {
	case v < 0:
		m.cc = CCN
	case v > 0:
		m.cc = CCP
	default:
		m.cc = CCZ
	}
}

// load implements LOAD: R <- Val (immediate) or R <- Data[Addr].
func (m *Machine) load(instr insts.Instruction, addr uint32) error {
	if err := m.checkRegister(instr.RegCond, addr); err != nil {
		return err
	}
	if instr.Mode == insts.ModeImmediate {
		m.registers[instr.RegCond] = Word(instr.Value)
	} else {
		a, err := m.resolveAddress(instr, addr)
		if err != nil {
			return err
		}
		m.registers[instr.RegCond] = m.data[a]
	}
	m.updateCC(instr.RegCond)
	return nil
}

// store implements STORE: Data[Addr] <- R. Immediate mode is forbidden
// and the condition code is untouched.
func (m *Machine) store(instr insts.Instruction, addr uint32) error {
	if err := m.checkRegister(instr.RegCond, addr); err != nil {
		return err
	}
	if err := m.checkImmediate(instr, addr); err != nil {
		return err
	}
	a, err := m.resolveAddress(instr, addr)
	if err != nil {
		return err
	}
	m.data[a] = m.registers[instr.RegCond]
	return nil
}

// add implements ADD: R <- (R) + Val or R <- (R) + Data[Addr].
func (m *Machine) add(instr insts.Instruction, addr uint32) error {
	if err := m.checkRegister(instr.RegCond, addr); err != nil {
		return err
	}
	if instr.Mode == insts.ModeImmediate {
		m.registers[instr.RegCond] += Word(instr.Value)
	} else {
		a, err := m.resolveAddress(instr, addr)
		if err != nil {
			return err
		}
		m.registers[instr.RegCond] += m.data[a]
	}
	m.updateCC(instr.RegCond)
	return nil
}

// sub implements SUB: R <- (R) - Val or R <- (R) - Data[Addr].
func (m *Machine) sub(instr insts.Instruction, addr uint32) error {
	if err := m.checkRegister(instr.RegCond, addr); err != nil {
		return err
	}
	if instr.Mode == insts.ModeImmediate {
		m.registers[instr.RegCond] -= Word(instr.Value)
	} else {
		a, err := m.resolveAddress(instr, addr)
		if err != nil {
			return err
		}
		m.registers[instr.RegCond] -= m.data[a]
	}
	m.updateCC(instr.RegCond)
	return nil
}

// branch implements BRANCH: PC <- Addr when the condition holds.
func (m *Machine) branch(instr insts.Instruction, addr uint32) error {
	if err := m.checkImmediate(instr, addr); err != nil {
		return err
	}
	taken, err := m.conditionHolds(instr.RegCond, addr)
	if err != nil {
		return err
	}
	if taken {
		a, err := m.resolveAddress(instr, addr)
		if err != nil {
			return err
		}
		m.pc = a
	}
	return nil
}

// call implements CALL: when the condition holds, push the return
// address (PC was already incremented at fetch, so it is the natural
// fall-through) and jump.
func (m *Machine) call(instr insts.Instruction, addr uint32) error {
	if err := m.checkImmediate(instr, addr); err != nil {
		return err
	}
	taken, err := m.conditionHolds(instr.RegCond, addr)
	if err != nil {
		return err
	}
	if !taken {
		return nil
	}
	sp := int64(m.registers[SPRegister])
	if err := m.checkStack(sp, addr); err != nil {
		return err
	}
	a, err := m.resolveAddress(instr, addr)
	if err != nil {
		return err
	}
	m.data[sp] = Word(m.pc)
	m.registers[SPRegister]--
	m.pc = a
	return nil
}

// ret implements RET: pop the return address into PC. RET is never
// encoded immediate; a set immediate flag is an encoding error.
func (m *Machine) ret(instr insts.Instruction, addr uint32) error {
	if err := m.checkImmediate(instr, addr); err != nil {
		return err
	}
	sp := int64(m.registers[SPRegister]) + 1
	if err := m.checkStack(sp, addr); err != nil {
		return err
	}
	m.registers[SPRegister]++
	m.pc = uint32(m.data[sp])
	return nil
}

// push implements PUSH: Data[(SP)] <- Val or Data[Addr], then
// SP <- (SP) - 1. Overflow manifests on the next push, when the pre-check
// fails.
func (m *Machine) push(instr insts.Instruction, addr uint32) error {
	sp := int64(m.registers[SPRegister])
	if err := m.checkStack(sp, addr); err != nil {
		return err
	}
	var v Word
	if instr.Mode == insts.ModeImmediate {
		v = Word(instr.Value)
	} else {
		a, err := m.resolveAddress(instr, addr)
		if err != nil {
			return err
		}
		v = m.data[a]
	}
	m.data[sp] = v
	m.registers[SPRegister]--
	return nil
}

// pop implements POP: SP <- (SP) + 1, then Data[Addr] <- Data[(SP)].
// Underflow manifests on the post-increment check.
func (m *Machine) pop(instr insts.Instruction, addr uint32) error {
	if err := m.checkImmediate(instr, addr); err != nil {
		return err
	}
	sp := int64(m.registers[SPRegister]) + 1
	if err := m.checkStack(sp, addr); err != nil {
		return err
	}
	a, err := m.resolveAddress(instr, addr)
	if err != nil {
		return err
	}
	m.registers[SPRegister]++
	m.data[a] = m.data[sp]
	return nil
}
