package srp

import "fmt"

// CodeFetcher supplies guest code words. The word at addr holds the byte at
// addr in bits 31..24.
type CodeFetcher interface {
	FetchCode(addr uint32) (uint32, error)
}

// Instruction is one decoded guest instruction.
type Instruction struct {
	PC       uint32
	Word     uint32
	Length   int
	Selector Selector
	A        byte   // bits 23..16
	B        byte   // bits 15..8
	Ext      uint32 // code word at PC+2, six-byte instructions only
	HasExt   bool

	op *opcode
}

func (in Instruction) RegA() Reg { return Reg(in.A) }
func (in Instruction) RegB() Reg { return Reg(in.B) }

// Mnemonic is the assembler name of the instruction.
func (in Instruction) Mnemonic() string {
	if in.op == nil {
		return "???"
	}
	return in.op.name
}

// Decode reads and decodes the instruction at pc without emitting anything.
func Decode(code CodeFetcher, pc uint32) (Instruction, error) {
	word, err := code.FetchCode(pc)
	if err != nil {
		return Instruction{}, &ErrFetch{Addr: pc, Err: err}
	}
	length, err := InstructionLength(word)
	if err != nil {
		return Instruction{}, &ErrUnrecognizedLength{PC: pc, Word: word}
	}
	in := Instruction{
		PC:       pc,
		Word:     word,
		Length:   length,
		Selector: Selector(word >> 24),
		A:        byte(word >> 16),
		B:        byte(word >> 8),
	}
	in.op = lookup(length, in.Selector)
	if in.op == nil {
		return Instruction{}, &ErrUnrecognizedOpcode{PC: pc, Word: word, Length: length, Selector: byte(in.Selector)}
	}
	if length == 6 {
		ext, err := code.FetchCode(pc + 2)
		if err != nil {
			return Instruction{}, &ErrFetch{Addr: pc + 2, Err: err}
		}
		in.Ext, in.HasExt = ext, true
	}
	if in.op.regs&regA != 0 && !in.RegA().Valid() {
		return Instruction{}, &ErrRegisterField{PC: pc, Field: 'A', Err: &ErrInvalidRegister{Index: uint32(in.A)}}
	}
	if in.op.regs&regB != 0 && !in.RegB().Valid() {
		return Instruction{}, &ErrRegisterField{PC: pc, Field: 'B', Err: &ErrInvalidRegister{Index: uint32(in.B)}}
	}
	return in, nil
}

func (in Instruction) String() string {
	name := in.Mnemonic()
	if in.op == nil {
		return fmt.Sprintf("%s 0x%08x", name, in.Word)
	}
	switch in.op.format {
	case formatRegReg:
		return fmt.Sprintf("%s %s, %s", name, in.RegA(), in.RegB())
	case formatLoad, formatStore:
		return fmt.Sprintf("%s %s, [%s]", name, in.RegA(), in.RegB())
	case formatRegImm:
		return fmt.Sprintf("%s %s, 0x%02x", name, in.RegA(), in.B)
	case formatAbsImm:
		return fmt.Sprintf("%s [0x%02x], 0x%02x", name, in.A, in.B)
	case formatIndImm:
		return fmt.Sprintf("%s [%s], 0x%02x", name, in.RegA(), in.B)
	case formatLoadAbs:
		return fmt.Sprintf("%s %s, [0x%02x]", name, in.RegA(), in.B)
	case formatStoreAbs:
		return fmt.Sprintf("%s %s, [0x%02x]", name, in.RegB(), in.B)
	case formatRegExt:
		return fmt.Sprintf("%s %s, 0x%08x", name, in.RegA(), in.Ext)
	case formatAbsExt:
		return fmt.Sprintf("%s [0x%02x], 0x%08x", name, in.A, in.Ext)
	case formatIndExt:
		return fmt.Sprintf("%s [%s], 0x%08x", name, in.RegA(), in.Ext)
	case formatLoadExt, formatStoreExt:
		return fmt.Sprintf("%s %s, [0x%08x]", name, in.RegA(), in.Ext)
	case formatPlainField:
		return fmt.Sprintf("%s 0x%02x", name, in.A)
	}
	return name
}
