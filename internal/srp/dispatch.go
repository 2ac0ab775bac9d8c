package srp

func emitNothing(*Frame, *Instruction) {}

// movb ra, rb: ra = rb & 0xff
func emitMoveMasked(f *Frame, in *Instruction) {
	t := f.loadReg(in.RegB())
	f.andImm(t, 0xff)
	f.storeReg(in.RegA(), t)
}

// ldb ra, [rb]
func emitLoadByte(f *Frame, in *Instruction) {
	addr := f.loadReg(in.RegB())
	f.storeReg(in.RegA(), f.load8s(addr))
}

// stb ra, [rb]
func emitStoreByte(f *Frame, in *Instruction) {
	val := f.loadReg(in.RegA())
	addr := f.loadReg(in.RegB())
	f.store8(val, addr)
}

// mov ra, rb
func emitMoveReg(f *Frame, in *Instruction) {
	f.moveReg(in.RegA(), in.RegB())
}

// ldw ra, [rb]
func emitLoadWord(f *Frame, in *Instruction) {
	addr := f.loadReg(in.RegB())
	f.storeReg(in.RegA(), f.load32(addr))
}

// stw ra, [rb]
func emitStoreWord(f *Frame, in *Instruction) {
	val := f.loadReg(in.RegA())
	addr := f.loadReg(in.RegB())
	f.store32(val, addr)
}

// ldi ra, b
func emitLoadImm(f *Frame, in *Instruction) {
	f.moveRegImm(in.RegA(), uint32(in.B))
}

// stib [a], b: the address is the literal value of field A
func emitStoreImmByteAbs(f *Frame, in *Instruction) {
	val := f.imm(uint32(in.B))
	addr := f.imm(uint32(in.A))
	f.store8(val, addr)
}

// stib [ra], b
func emitStoreImmByteInd(f *Frame, in *Instruction) {
	val := f.imm(uint32(in.B))
	addr := f.loadReg(in.RegA())
	f.store8(val, addr)
}

// ldw ra, [b]
func emitLoadWordAbs(f *Frame, in *Instruction) {
	addr := f.imm(uint32(in.B))
	f.storeReg(in.RegA(), f.load32(addr))
}

// stw rb, [b]: field B is both the literal address and the value register
func emitStoreWordAbs(f *Frame, in *Instruction) {
	addr := f.imm(uint32(in.B))
	val := f.loadReg(in.RegB())
	f.store32(val, addr)
}

// ldi ra, ext
func emitLoadImmExt(f *Frame, in *Instruction) {
	f.moveRegImm(in.RegA(), in.Ext)
}

// stiw [a], ext
func emitStoreImmWordAbs(f *Frame, in *Instruction) {
	addr := f.imm(uint32(in.A))
	val := f.imm(in.Ext)
	f.store32(val, addr)
}

// stiw [ra], ext
func emitStoreImmWordInd(f *Frame, in *Instruction) {
	addr := f.loadReg(in.RegA())
	val := f.imm(in.Ext)
	f.store32(val, addr)
}

// ldw ra, [ext]
func emitLoadWordExt(f *Frame, in *Instruction) {
	addr := f.imm(in.Ext)
	f.storeReg(in.RegA(), f.load32(addr))
}

// stw ra, [ext]
func emitStoreWordExt(f *Frame, in *Instruction) {
	addr := f.imm(in.Ext)
	val := f.loadReg(in.RegA())
	f.store32(val, addr)
}

// ldb ra, [ext]
func emitLoadByteExt(f *Frame, in *Instruction) {
	addr := f.imm(in.Ext)
	f.storeReg(in.RegA(), f.load8s(addr))
}

// stb ra, [ext]
func emitStoreByteExt(f *Frame, in *Instruction) {
	addr := f.imm(in.Ext)
	val := f.loadReg(in.RegA())
	f.store8(val, addr)
}
