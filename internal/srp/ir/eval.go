package ir

import (
	"errors"
	"fmt"

	"github.com/eigerco/srp/internal/srp"
)

// DataMemory is guest data memory as seen by evaluated loads and stores.
type DataMemory interface {
	Load8(addr uint32, mode srp.Mode) (uint8, error)
	Load32(addr uint32, mode srp.Mode) (uint32, error)
	Store8(addr uint32, value uint8, mode srp.Mode) error
	Store32(addr uint32, value uint32, mode srp.Mode) error
}

var ErrUndefinedTemp = errors.New("read of undefined temporary")

// EvalError reports the op an evaluation stopped at.
type EvalError struct {
	Index int    // op index in the block
	PC    uint32 // guest pc of the owning instruction
	Op    Op
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("op %d at pc=0x%08x (%s): %v", e.Index, e.PC, e.Op, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

type evaluator struct {
	regs  *srp.RegisterFile
	mem   DataMemory
	temps map[int]uint32
}

// Eval runs block against regs and mem. Registers and memory written by ops
// before a failing op keep their new values.
func Eval(block *Block, regs *srp.RegisterFile, mem DataMemory) error {
	e := &evaluator{regs: regs, mem: mem, temps: make(map[int]uint32)}
	for i, op := range block.Ops {
		if err := e.exec(op); err != nil {
			pc, _ := block.RestorePC(i)
			return &EvalError{Index: i, PC: pc, Op: op, Err: err}
		}
	}
	return nil
}

func (e *evaluator) get(v Value) (uint32, error) {
	if v.IsTemp() {
		value, ok := e.temps[v.ID()]
		if !ok {
			return 0, ErrUndefinedTemp
		}
		return value, nil
	}
	return e.regs.Get(v.Reg())
}

func (e *evaluator) set(v Value, value uint32) error {
	if v.IsTemp() {
		e.temps[v.ID()] = value
		return nil
	}
	return e.regs.Set(v.Reg(), value)
}

func (e *evaluator) exec(op Op) error {
	switch op.Kind {
	case InsnStart:
		// temporaries never cross instruction boundaries
		clear(e.temps)
		return nil
	case MovImm:
		return e.set(op.Dst, op.Imm)
	}

	src, err := e.get(op.Src)
	if err != nil {
		return err
	}
	switch op.Kind {
	case Mov:
		return e.set(op.Dst, src)
	case AndImm:
		return e.set(op.Dst, src&op.Imm)
	case Load8s:
		b, err := e.mem.Load8(src, op.Mode)
		if err != nil {
			return err
		}
		return e.set(op.Dst, uint32(int32(int8(b))))
	case Load32:
		w, err := e.mem.Load32(src, op.Mode)
		if err != nil {
			return err
		}
		return e.set(op.Dst, w)
	case Store8, Store32:
		addr, err := e.get(op.Dst)
		if err != nil {
			return err
		}
		if op.Kind == Store8 {
			return e.mem.Store8(addr, uint8(src), op.Mode)
		}
		return e.mem.Store32(addr, src, op.Mode)
	}
	return fmt.Errorf("unknown op kind %s", op.Kind)
}
