package srp

import (
	"errors"
	"fmt"
)

// ErrDecode matches every failure to decode a single instruction.
var ErrDecode = errors.New("decode failure")

// ErrUnrecognizedLength is returned when the top nibble of the fetched word maps to no instruction length.
type ErrUnrecognizedLength struct {
	PC   uint32
	Word uint32
}

func (e *ErrUnrecognizedLength) Error() string {
	return fmt.Sprintf("unrecognized instruction length: pc=0x%08x word=0x%08x nibble=0x%x", e.PC, e.Word, e.Word>>28)
}

func (e *ErrUnrecognizedLength) Is(target error) bool { return target == ErrDecode }

// ErrUnrecognizedOpcode is returned when the length was classified but the
// selector is not in that length's table.
type ErrUnrecognizedOpcode struct {
	PC       uint32
	Word     uint32
	Length   int
	Selector byte
}

func (e *ErrUnrecognizedOpcode) Error() string {
	return fmt.Sprintf("unrecognized opcode: pc=0x%08x word=0x%08x length=%d selector=0x%02x", e.PC, e.Word, e.Length, e.Selector)
}

func (e *ErrUnrecognizedOpcode) Is(target error) bool { return target == ErrDecode }

// ErrInvalidRegister is returned when a register index falls outside the register file.
type ErrInvalidRegister struct {
	Index uint32
}

func (e *ErrInvalidRegister) Error() string {
	return fmt.Sprintf("invalid register index: %d", e.Index)
}

// ErrRegisterField is returned by Decode when an instruction's register
// field holds an invalid index. It wraps the *ErrInvalidRegister.
type ErrRegisterField struct {
	PC    uint32
	Field byte // 'A' or 'B'
	Err   *ErrInvalidRegister
}

func (e *ErrRegisterField) Error() string {
	return fmt.Sprintf("register field %c at pc=0x%08x: %v", e.Field, e.PC, e.Err)
}

func (e *ErrRegisterField) Unwrap() error { return e.Err }

func (e *ErrRegisterField) Is(target error) bool { return target == ErrDecode }

// ErrFetch is returned when the code fetcher cannot supply the word at Addr.
type ErrFetch struct {
	Addr uint32
	Err  error
}

func (e *ErrFetch) Error() string {
	return fmt.Sprintf("code fetch at 0x%08x: %v", e.Addr, e.Err)
}

func (e *ErrFetch) Unwrap() error { return e.Err }

func (e *ErrFetch) Is(target error) bool { return target == ErrDecode }
