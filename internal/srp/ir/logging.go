package ir

import (
	"github.com/rs/zerolog"

	"github.com/eigerco/srp/internal/srp"
)

// NewLogger wraps an emitter so every call is logged before it is forwarded.
func NewLogger(next srp.Emitter, log *zerolog.Logger) srp.Emitter {
	return &logger{
		next:  next,
		log:   log,
		level: zerolog.DebugLevel,
	}
}

type logger struct {
	next  srp.Emitter
	log   *zerolog.Logger
	level zerolog.Level
	pc    uint32
}

func (l *logger) InsnStart(pc uint32) {
	l.pc = pc
	l.log.WithLevel(l.level).Msgf("0x%08x: insn_start", pc)
	l.next.InsnStart(pc)
}
func (l *logger) MoveReg(dst srp.Reg, src srp.Reg) {
	l.log.WithLevel(l.level).Msgf("0x%08x: mov_i32 %s,%s", l.pc, dst, src)
	l.next.MoveReg(dst, src)
}
func (l *logger) MoveRegImm(dst srp.Reg, imm uint32) {
	l.log.WithLevel(l.level).Msgf("0x%08x: movi_i32 %s,$0x%x", l.pc, dst, imm)
	l.next.MoveRegImm(dst, imm)
}
func (l *logger) LoadReg(dst srp.Temp, src srp.Reg) {
	l.log.WithLevel(l.level).Msgf("0x%08x: mov_i32 %s,%s", l.pc, dst, src)
	l.next.LoadReg(dst, src)
}
func (l *logger) StoreReg(dst srp.Reg, src srp.Temp) {
	l.log.WithLevel(l.level).Msgf("0x%08x: mov_i32 %s,%s", l.pc, dst, src)
	l.next.StoreReg(dst, src)
}
func (l *logger) MoveImm(dst srp.Temp, imm uint32) {
	l.log.WithLevel(l.level).Msgf("0x%08x: movi_i32 %s,$0x%x", l.pc, dst, imm)
	l.next.MoveImm(dst, imm)
}
func (l *logger) AndImm(dst srp.Temp, src srp.Temp, imm uint32) {
	l.log.WithLevel(l.level).Msgf("0x%08x: andi_i32 %s,%s,$0x%x", l.pc, dst, src, imm)
	l.next.AndImm(dst, src, imm)
}
func (l *logger) Load8s(dst srp.Temp, addr srp.Temp, mode srp.Mode) {
	l.log.WithLevel(l.level).Msgf("0x%08x: qemu_ld8s %s,%s,%s", l.pc, dst, addr, mode)
	l.next.Load8s(dst, addr, mode)
}
func (l *logger) Load32(dst srp.Temp, addr srp.Temp, mode srp.Mode) {
	l.log.WithLevel(l.level).Msgf("0x%08x: qemu_ld32u %s,%s,%s", l.pc, dst, addr, mode)
	l.next.Load32(dst, addr, mode)
}
func (l *logger) Store8(val srp.Temp, addr srp.Temp, mode srp.Mode) {
	l.log.WithLevel(l.level).Msgf("0x%08x: qemu_st8 %s,%s,%s", l.pc, val, addr, mode)
	l.next.Store8(val, addr, mode)
}
func (l *logger) Store32(val srp.Temp, addr srp.Temp, mode srp.Mode) {
	l.log.WithLevel(l.level).Msgf("0x%08x: qemu_st32 %s,%s,%s", l.pc, val, addr, mode)
	l.next.Store32(val, addr, mode)
}
