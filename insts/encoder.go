package insts

// Encoding constructors build raw instruction words from the decoded
// views. Program fixtures and tests use them in place of an assembler.

// Absolute encodes an instruction in the absolute view: both mode flags
// clear, payload holds the data address.
func Absolute(op Op, regcond uint8, address uint32) uint32 {
	return encodePrefix(op, regcond) | (address & payloadMask)
}

// Indexed encodes an instruction in the indexed view: the indexed flag
// set, payload holds the index register and the signed offset.
func Indexed(op Op, regcond uint8, rindex uint8, offset int32) uint32 {
	payload := (uint32(rindex&rindexMask) << rindexShift) |
		(uint32(offset) & offsetMask)
	return encodePrefix(op, regcond) | indexedBit | payload
}

// Immediate encodes an instruction in the immediate view: the immediate
// flag set, payload holds the signed value.
func Immediate(op Op, regcond uint8, value int32) uint32 {
	return encodePrefix(op, regcond) | immediateBit | (uint32(value) & payloadMask)
}

// Bare encodes an instruction that takes no operand (NOP, RET, HALT,
// ILLOP). The absolute view with a zero payload.
func Bare(op Op) uint32 {
	return encodePrefix(op, 0)
}

func encodePrefix(op Op, regcond uint8) uint32 {
	return (uint32(op&copMask) << copShift) |
		(uint32(regcond&regcondMask) << regcondShift)
}
