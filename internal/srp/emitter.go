package srp

// Mode is the access-mode tag carried by every guest memory operation.
type Mode uint8

const (
	ModeSupervisor Mode = iota
	ModeUser
)

func (m Mode) String() string {
	if m == ModeUser {
		return "user"
	}
	return "kernel"
}

// Emitter is implemented by the IR-consuming backend. The translator calls it
// in emission order; temporaries passed to it are live for the duration of the
// current instruction only.
type Emitter interface {
	InsnStart(pc uint32)
	MoveReg(dst Reg, src Reg)
	MoveRegImm(dst Reg, imm uint32)
	LoadReg(dst Temp, src Reg)
	StoreReg(dst Reg, src Temp)
	MoveImm(dst Temp, imm uint32)
	AndImm(dst Temp, src Temp, imm uint32)
	Load8s(dst Temp, addr Temp, mode Mode)
	Load32(dst Temp, addr Temp, mode Mode)
	Store8(val Temp, addr Temp, mode Mode)
	Store32(val Temp, addr Temp, mode Mode)
}

func (f *Frame) moveReg(dst, src Reg) {
	f.emit.MoveReg(dst, src)
}

func (f *Frame) moveRegImm(dst Reg, imm uint32) {
	f.emit.MoveRegImm(dst, imm)
}

// loadReg returns a new temporary holding the value of r.
func (f *Frame) loadReg(r Reg) Temp {
	t := f.newTemp()
	f.emit.LoadReg(t, r)
	return t
}

func (f *Frame) storeReg(r Reg, t Temp) {
	f.emit.StoreReg(r, f.check(t))
}

// imm returns a new temporary holding a constant.
func (f *Frame) imm(v uint32) Temp {
	t := f.newTemp()
	f.emit.MoveImm(t, v)
	return t
}

func (f *Frame) andImm(t Temp, v uint32) {
	f.emit.AndImm(f.check(t), t, v)
}

// The four memory primitives below are the only way handlers reach guest
// memory, so every access carries the context's mode.

func (f *Frame) load8s(addr Temp) Temp {
	t := f.newTemp()
	f.emit.Load8s(t, f.check(addr), f.ctx.Mode())
	return t
}

func (f *Frame) load32(addr Temp) Temp {
	t := f.newTemp()
	f.emit.Load32(t, f.check(addr), f.ctx.Mode())
	return t
}

func (f *Frame) store8(val, addr Temp) {
	f.emit.Store8(f.check(val), f.check(addr), f.ctx.Mode())
}

func (f *Frame) store32(val, addr Temp) {
	f.emit.Store32(f.check(val), f.check(addr), f.ctx.Mode())
}
