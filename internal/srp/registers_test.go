package srp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionLength(t *testing.T) {
	want := map[uint32]int{
		0x0: 1, 0x1: 3, 0x2: 3, 0x3: 3, 0x4: 6, 0x5: 6, 0x6: 2,
		0xB: 4, 0xC: 3, 0xD: 5, 0xE: 2, 0xF: 2,
	}
	for nibble := uint32(0); nibble < 16; nibble++ {
		length, err := InstructionLength(nibble<<28 | 0x00ABCDEF)
		if l, ok := want[nibble]; ok {
			require.NoError(t, err, "nibble 0x%x", nibble)
			assert.Equal(t, l, length, "nibble 0x%x", nibble)
			continue
		}
		var lengthErr *ErrUnrecognizedLength
		require.ErrorAs(t, err, &lengthErr, "nibble 0x%x", nibble)
		assert.Zero(t, length)
	}
}

func TestRegisterFile_GetSet(t *testing.T) {
	var regs RegisterFile
	require.NoError(t, regs.Set(0, 1))
	require.NoError(t, regs.Set(59, 2))
	require.NoError(t, regs.Set(PC, 0x1000))

	v, err := regs.Get(59)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)
	assert.Equal(t, uint32(0x1000), regs.PC())

	err = regs.Set(64, 1)
	var regErr *ErrInvalidRegister
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, uint32(64), regErr.Index)
	_, err = regs.Get(200)
	require.ErrorAs(t, err, &regErr)
	assert.NotErrorIs(t, err, ErrDecode, "a register file access is not a decode failure")

	regs.Reset()
	v, err = regs.Get(0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestReg_Names(t *testing.T) {
	assert.Equal(t, "R00", Reg(0).String())
	assert.Equal(t, "R04", Reg(1).String())
	assert.Equal(t, "R40", Reg(16).String())
	assert.Equal(t, "R50", Reg(20).String())
	assert.Equal(t, "Rec", Reg(59).String())
	assert.Equal(t, "IRQ", IRQ.String())
	assert.Equal(t, "PC", PC.String())
	assert.Equal(t, "R?64", Reg(64).String())

	seen := map[string]bool{}
	for i := 0; i < NumRegs; i++ {
		name := Reg(i).String()
		assert.False(t, seen[name], "duplicate register name %s", name)
		seen[name] = true

		r, ok := RegByName(name)
		require.True(t, ok)
		assert.Equal(t, Reg(i), r)
	}
	r, ok := RegByName("psw")
	require.True(t, ok)
	assert.Equal(t, PSW, r)
	_, ok = RegByName("R99")
	assert.False(t, ok)
}
