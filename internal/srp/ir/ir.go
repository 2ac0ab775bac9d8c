// Package ir holds the recorded form of the intermediate representation the
// srp translator emits, plus a reference evaluator for it.
package ir

import (
	"fmt"
	"strings"

	"github.com/eigerco/srp/internal/srp"
)

type Kind uint8

const (
	InsnStart Kind = iota
	Mov
	MovImm
	AndImm
	Load8s
	Load32
	Store8
	Store32
)

var kindNames = [...]string{
	InsnStart: "insn_start",
	Mov:       "mov_i32",
	MovImm:    "movi_i32",
	AndImm:    "andi_i32",
	Load8s:    "qemu_ld8s",
	Load32:    "qemu_ld32u",
	Store8:    "qemu_st8",
	Store32:   "qemu_st32",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsMemory reports whether the op accesses guest memory.
func (k Kind) IsMemory() bool {
	return k >= Load8s && k <= Store32
}

// Value is an op operand: a guest register or a temporary.
type Value struct {
	temp bool
	idx  int
}

func Global(r srp.Reg) Value { return Value{idx: int(r)} }
func Temp(id int) Value      { return Value{temp: true, idx: id} }

func (v Value) IsTemp() bool { return v.temp }
func (v Value) Reg() srp.Reg { return srp.Reg(v.idx) }
func (v Value) ID() int      { return v.idx }

func (v Value) String() string {
	if v.temp {
		return fmt.Sprintf("tmp%d", v.idx)
	}
	return srp.Reg(v.idx).String()
}

// Op is one IR operation. The fields used depend on Kind:
//
//	mov_i32     Dst = Src
//	movi_i32    Dst = Imm
//	andi_i32    Dst = Src & Imm
//	qemu_ld*    Dst = mem[Src]
//	qemu_st*    mem[Dst] = Src
//	insn_start  PC
type Op struct {
	Kind Kind
	Dst  Value
	Src  Value
	Imm  uint32
	Mode srp.Mode
	PC   uint32
}

func (o Op) String() string {
	switch o.Kind {
	case InsnStart:
		return fmt.Sprintf(" ---- 0x%08x", o.PC)
	case Mov:
		return fmt.Sprintf(" %s %s,%s", o.Kind, o.Dst, o.Src)
	case MovImm:
		return fmt.Sprintf(" %s %s,$0x%x", o.Kind, o.Dst, o.Imm)
	case AndImm:
		return fmt.Sprintf(" %s %s,%s,$0x%x", o.Kind, o.Dst, o.Src, o.Imm)
	case Load8s, Load32:
		return fmt.Sprintf(" %s %s,%s,%s", o.Kind, o.Dst, o.Src, o.Mode)
	case Store8, Store32:
		return fmt.Sprintf(" %s %s,%s,%s", o.Kind, o.Src, o.Dst, o.Mode)
	}
	return " " + o.Kind.String()
}

// Block is the IR of one translation unit.
type Block struct {
	PC  uint32
	Ops []Op
}

// Listing renders the block one op per line.
func (b *Block) Listing() string {
	var sb strings.Builder
	for _, op := range b.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RestorePC returns the guest pc of the instruction that emitted the op at index.
func (b *Block) RestorePC(index int) (uint32, bool) {
	if index < 0 || index >= len(b.Ops) {
		return 0, false
	}
	for i := index; i >= 0; i-- {
		if b.Ops[i].Kind == InsnStart {
			return b.Ops[i].PC, true
		}
	}
	return 0, false
}

// Instructions splits the block at insn_start markers.
func (b *Block) Instructions() [][]Op {
	var out [][]Op
	for _, op := range b.Ops {
		if op.Kind == InsnStart {
			out = append(out, nil)
		}
		if len(out) == 0 {
			continue
		}
		out[len(out)-1] = append(out[len(out)-1], op)
	}
	return out
}
