package srp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var errOutsideCode = errors.New("outside code")

// codeBytes is guest code starting at address 0.
type codeBytes []byte

func (c codeBytes) FetchCode(addr uint32) (uint32, error) {
	if uint64(addr) >= uint64(len(c)) {
		return 0, errOutsideCode
	}
	var w [4]byte
	copy(w[:], c[addr:])
	return binary.BigEndian.Uint32(w[:]), nil
}

func program(insns ...[]byte) codeBytes {
	var c codeBytes
	for _, in := range insns {
		c = append(c, in...)
	}
	return c
}

func insn3(s Selector, a, b byte) []byte {
	return []byte{byte(s), a, b}
}

func insn6(s Selector, a byte, ext uint32) []byte {
	return binary.BigEndian.AppendUint32([]byte{byte(s), a}, ext)
}

// recorder is an Emitter that keeps a text line per call.
type recorder struct {
	lines []string
}

var _ Emitter = &recorder{}

func (r *recorder) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// body drops the insn_start markers.
func (r *recorder) body() []string {
	var out []string
	for _, l := range r.lines {
		if !strings.HasPrefix(l, "insn_start") {
			out = append(out, l)
		}
	}
	return out
}

func (r *recorder) InsnStart(pc uint32) { r.add("insn_start 0x%x", pc) }
func (r *recorder) MoveReg(dst Reg, src Reg) { r.add("mov %s, %s", dst, src) }
func (r *recorder) MoveRegImm(dst Reg, imm uint32) { r.add("movi %s, 0x%x", dst, imm) }
func (r *recorder) LoadReg(dst Temp, src Reg) { r.add("ld_reg %s, %s", dst, src) }
func (r *recorder) StoreReg(dst Reg, src Temp) { r.add("st_reg %s, %s", dst, src) }
func (r *recorder) MoveImm(dst Temp, imm uint32) { r.add("movi %s, 0x%x", dst, imm) }
func (r *recorder) AndImm(dst, src Temp, imm uint32) { r.add("andi %s, %s, 0x%x", dst, src, imm) }
func (r *recorder) Load8s(dst, addr Temp, mode Mode) { r.add("ld8s %s, %s, %s", dst, addr, mode) }
func (r *recorder) Load32(dst, addr Temp, mode Mode) { r.add("ld32 %s, %s, %s", dst, addr, mode) }
func (r *recorder) Store8(val, addr Temp, mode Mode) { r.add("st8 %s, %s, %s", val, addr, mode) }
func (r *recorder) Store32(val, addr Temp, mode Mode) { r.add("st32 %s, %s, %s", val, addr, mode) }
