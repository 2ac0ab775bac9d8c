package srp

import (
	"fmt"
	"strings"
)

const (
	NumGeneralRegs = 60
	NumRegs        = 64
)

// Reg is an index into the register file.
type Reg byte

// Control register slots following the general registers.
const (
	IRQ Reg = 60 // interrupt mask
	PSW Reg = 61
	SP  Reg = 62
	PC  Reg = 63
)

// regNames are the assembler names of every slot. General registers are
// named after their byte offset in the register bank.
var regNames = [NumRegs]string{
	"R00", "R04", "R08", "R0c", "R10", "R14", "R18", "R1c", "R20", "R24", "R28", "R2c",
	"R30", "R34", "R38", "R3c", "R40", "R44", "R48", "R4c", "R50", "R54", "R58", "R5c",
	"R60", "R64", "R68", "R6c", "R70", "R74", "R78", "R7c", "R80", "R84", "R88", "R8c",
	"R90", "R94", "R98", "R9c", "Ra0", "Ra4", "Ra8", "Rac", "Rb0", "Rb4", "Rb8", "Rbc",
	"Rc0", "Rc4", "Rc8", "Rcc", "Rd0", "Rd4", "Rd8", "Rdc", "Re0", "Re4", "Re8", "Rec",
	"IRQ", "PSW", "SP", "PC",
}

func (r Reg) String() string {
	if !r.Valid() {
		return fmt.Sprintf("R?%d", byte(r))
	}
	return regNames[r]
}

// Valid reports whether r addresses one of the register file slots.
func (r Reg) Valid() bool {
	return int(r) < NumRegs
}

// RegByName resolves an assembler name, case-insensitively.
func RegByName(name string) (Reg, bool) {
	for i, n := range regNames {
		if strings.EqualFold(n, name) {
			return Reg(i), true
		}
	}
	return 0, false
}

// RegisterFile is the architectural register state of one guest processor.
type RegisterFile struct {
	slots [NumRegs]uint32
}

func (f *RegisterFile) Get(r Reg) (uint32, error) {
	if !r.Valid() {
		return 0, &ErrInvalidRegister{Index: uint32(r)}
	}
	return f.slots[r], nil
}

func (f *RegisterFile) Set(r Reg, value uint32) error {
	if !r.Valid() {
		return &ErrInvalidRegister{Index: uint32(r)}
	}
	f.slots[r] = value
	return nil
}

func (f *RegisterFile) PSW() uint32 { return f.slots[PSW] }
func (f *RegisterFile) SP() uint32  { return f.slots[SP] }
func (f *RegisterFile) PC() uint32  { return f.slots[PC] }

func (f *RegisterFile) SetPC(pc uint32) { f.slots[PC] = pc }

// Reset zeroes every slot.
func (f *RegisterFile) Reset() {
	f.slots = [NumRegs]uint32{}
}

func (f *RegisterFile) String() string {
	var sb strings.Builder
	// a strings.Builder never fails to write
	_ = DumpState(&sb, f)
	return sb.String()
}
