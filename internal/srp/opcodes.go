package srp

// Selector is the opcode byte held in bits 31..24 of a code word.
type Selector byte

// Three-byte instructions: selector, field A, field B.
const (
	MoveMasked      Selector = 0x17 // movb
	LoadByte        Selector = 0x1C // ldb
	LoadByteAlt     Selector = 0x1E
	StoreByte       Selector = 0x1D // stb
	StoreByteAlt    Selector = 0x1F
	MoveReg         Selector = 0x27 // mov
	LoadWord        Selector = 0x2C // ldw
	LoadWordAlt     Selector = 0x2E
	StoreWord       Selector = 0x2D // stw
	StoreWordAlt    Selector = 0x2F
	LoadImm         Selector = 0x37 // ldi
	StoreImmByteAbs Selector = 0x38 // stib [a]
	StoreImmByteAlt Selector = 0x3A
	StoreImmByteInd Selector = 0x39 // stib [ra]
	StoreImmByteIAl Selector = 0x3B
	LoadWordAbs     Selector = 0x3C // ldw [b]
	LoadWordAbsAlt  Selector = 0x3E
	StoreWordAbs    Selector = 0x3D // stw rb, [b]
	StoreWordAbsAlt Selector = 0x3F
)

// Six-byte instructions: selector, field A, then a 32-bit operand in the following code word.
const (
	LoadImmExt         Selector = 0x47 // ldi
	StoreImmWordAbs    Selector = 0x48 // stiw [a]
	StoreImmWordAbsAlt Selector = 0x4A
	StoreImmWordInd    Selector = 0x49 // stiw [ra]
	StoreImmWordIndAlt Selector = 0x4B
	LoadWordExt        Selector = 0x4C // ldw [ext]
	LoadWordExtAlt     Selector = 0x4E
	StoreWordExt       Selector = 0x4D // stw [ext]
	StoreWordExtAlt    Selector = 0x4F
	LoadByteExt        Selector = 0x5C // ldb [ext]
	LoadByteExtAlt     Selector = 0x5E
	StoreByteExt       Selector = 0x5D // stb [ext]
	StoreByteExtAlt    Selector = 0x5F
)

// format selects how an instruction's operands are printed.
type format uint8

const (
	formatNone       format = iota
	formatRegReg            // op ra, rb
	formatLoad              // op ra, [rb]
	formatStore             // op ra, [rb]
	formatRegImm            // op ra, b
	formatAbsImm            // op [a], b
	formatIndImm            // op [ra], b
	formatLoadAbs           // op ra, [b]
	formatStoreAbs          // op ra, [b]
	formatRegExt            // op ra, ext
	formatAbsExt            // op [a], ext
	formatIndExt            // op [ra], ext
	formatLoadExt           // op ra, [ext]
	formatStoreExt          // op ra, [ext]
	formatPlainField        // op a
)

// operand fields that must name a valid register
const (
	regA uint8 = 1 << iota
	regB
)

type opcode struct {
	name   string
	format format
	regs   uint8
	emit   func(f *Frame, in *Instruction)
}

var (
	// length 1 words carry no operands
	opNop = &opcode{name: "nop", format: formatNone, emit: emitNothing}
	// length 2 words only carry field A; nothing is emitted for them
	opShort = &opcode{name: "nop.2", format: formatPlainField, emit: emitNothing}
)

var (
	table3 [256]*opcode
	table6 [256]*opcode
)

func registerOp(table *[256]*opcode, op *opcode, selectors ...Selector) {
	for _, s := range selectors {
		if table[s] != nil {
			panic("srp: selector registered twice: " + op.name)
		}
		table[s] = op
	}
}

func init() {
	registerOp(&table3, &opcode{name: "movb", format: formatRegReg, regs: regA | regB, emit: emitMoveMasked}, MoveMasked)
	registerOp(&table3, &opcode{name: "ldb", format: formatLoad, regs: regA | regB, emit: emitLoadByte}, LoadByte, LoadByteAlt)
	registerOp(&table3, &opcode{name: "stb", format: formatStore, regs: regA | regB, emit: emitStoreByte}, StoreByte, StoreByteAlt)
	registerOp(&table3, &opcode{name: "mov", format: formatRegReg, regs: regA | regB, emit: emitMoveReg}, MoveReg)
	registerOp(&table3, &opcode{name: "ldw", format: formatLoad, regs: regA | regB, emit: emitLoadWord}, LoadWord, LoadWordAlt)
	registerOp(&table3, &opcode{name: "stw", format: formatStore, regs: regA | regB, emit: emitStoreWord}, StoreWord, StoreWordAlt)
	registerOp(&table3, &opcode{name: "ldi", format: formatRegImm, regs: regA, emit: emitLoadImm}, LoadImm)
	registerOp(&table3, &opcode{name: "stib", format: formatAbsImm, emit: emitStoreImmByteAbs}, StoreImmByteAbs, StoreImmByteAlt)
	registerOp(&table3, &opcode{name: "stib", format: formatIndImm, regs: regA, emit: emitStoreImmByteInd}, StoreImmByteInd, StoreImmByteIAl)
	registerOp(&table3, &opcode{name: "ldw", format: formatLoadAbs, regs: regA, emit: emitLoadWordAbs}, LoadWordAbs, LoadWordAbsAlt)
	registerOp(&table3, &opcode{name: "stw", format: formatStoreAbs, regs: regB, emit: emitStoreWordAbs}, StoreWordAbs, StoreWordAbsAlt)

	registerOp(&table6, &opcode{name: "ldi", format: formatRegExt, regs: regA, emit: emitLoadImmExt}, LoadImmExt)
	registerOp(&table6, &opcode{name: "stiw", format: formatAbsExt, emit: emitStoreImmWordAbs}, StoreImmWordAbs, StoreImmWordAbsAlt)
	registerOp(&table6, &opcode{name: "stiw", format: formatIndExt, regs: regA, emit: emitStoreImmWordInd}, StoreImmWordInd, StoreImmWordIndAlt)
	registerOp(&table6, &opcode{name: "ldw", format: formatLoadExt, regs: regA, emit: emitLoadWordExt}, LoadWordExt, LoadWordExtAlt)
	registerOp(&table6, &opcode{name: "stw", format: formatStoreExt, regs: regA, emit: emitStoreWordExt}, StoreWordExt, StoreWordExtAlt)
	registerOp(&table6, &opcode{name: "ldb", format: formatLoadExt, regs: regA, emit: emitLoadByteExt}, LoadByteExt, LoadByteExtAlt)
	registerOp(&table6, &opcode{name: "stb", format: formatStoreExt, regs: regA, emit: emitStoreByteExt}, StoreByteExt, StoreByteExtAlt)
}

// lookup finds the handler of a selector within a length bucket.
// Lengths 4 and 5 have no handlers.
func lookup(length int, s Selector) *opcode {
	switch length {
	case 1:
		return opNop
	case 2:
		return opShort
	case 3:
		return table3[s]
	case 6:
		return table6[s]
	}
	return nil
}

// Known reports whether the selector has a handler in the given length bucket.
func Known(length int, s Selector) bool {
	return lookup(length, s) != nil
}
