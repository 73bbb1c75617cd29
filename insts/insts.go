// Package insts provides instruction definitions, decoding and rendering
// for the SimProc virtual machine.
//
// This package implements decoding of raw 32-bit instruction words into
// structured instruction representations. It supports:
//   - Computation: ADD, SUB with immediate, absolute or indexed operands
//   - Memory transfer: LOAD, STORE, PUSH, POP
//   - Control transfer: BRANCH, CALL, RET with condition tags
//   - Machine control: NOP, HALT, ILLOP
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(insts.Absolute(insts.OpLOAD, 2, 10))
//	fmt.Printf("Op: %v, Reg: %d, Addr: %d\n", inst.Op, inst.RegCond, inst.Address)
package insts
