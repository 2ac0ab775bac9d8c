package ir

import "github.com/eigerco/srp/internal/srp"

var _ srp.Emitter = &Builder{}

// Builder records emitted operations into a Block.
type Builder struct {
	block Block
}

func NewBuilder(pc uint32) *Builder {
	return &Builder{block: Block{PC: pc}}
}

// Block returns the ops recorded so far.
func (b *Builder) Block() *Block { return &b.block }

// Reset discards the recorded ops and starts a new block at pc.
func (b *Builder) Reset(pc uint32) {
	b.block = Block{PC: pc}
}

func (b *Builder) add(op Op) {
	b.block.Ops = append(b.block.Ops, op)
}

func (b *Builder) InsnStart(pc uint32) {
	b.add(Op{Kind: InsnStart, PC: pc})
}

func (b *Builder) MoveReg(dst srp.Reg, src srp.Reg) {
	b.add(Op{Kind: Mov, Dst: Global(dst), Src: Global(src)})
}

func (b *Builder) MoveRegImm(dst srp.Reg, imm uint32) {
	b.add(Op{Kind: MovImm, Dst: Global(dst), Imm: imm})
}

func (b *Builder) LoadReg(dst srp.Temp, src srp.Reg) {
	b.add(Op{Kind: Mov, Dst: Temp(dst.ID()), Src: Global(src)})
}

func (b *Builder) StoreReg(dst srp.Reg, src srp.Temp) {
	b.add(Op{Kind: Mov, Dst: Global(dst), Src: Temp(src.ID())})
}

func (b *Builder) MoveImm(dst srp.Temp, imm uint32) {
	b.add(Op{Kind: MovImm, Dst: Temp(dst.ID()), Imm: imm})
}

func (b *Builder) AndImm(dst srp.Temp, src srp.Temp, imm uint32) {
	b.add(Op{Kind: AndImm, Dst: Temp(dst.ID()), Src: Temp(src.ID()), Imm: imm})
}

func (b *Builder) Load8s(dst srp.Temp, addr srp.Temp, mode srp.Mode) {
	b.add(Op{Kind: Load8s, Dst: Temp(dst.ID()), Src: Temp(addr.ID()), Mode: mode})
}

func (b *Builder) Load32(dst srp.Temp, addr srp.Temp, mode srp.Mode) {
	b.add(Op{Kind: Load32, Dst: Temp(dst.ID()), Src: Temp(addr.ID()), Mode: mode})
}

func (b *Builder) Store8(val srp.Temp, addr srp.Temp, mode srp.Mode) {
	b.add(Op{Kind: Store8, Dst: Temp(addr.ID()), Src: Temp(val.ID()), Mode: mode})
}

func (b *Builder) Store32(val srp.Temp, addr srp.Temp, mode srp.Mode) {
	b.add(Op{Kind: Store32, Dst: Temp(addr.ID()), Src: Temp(val.ID()), Mode: mode})
}
