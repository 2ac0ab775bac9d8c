package ir

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/srp/internal/guest"
	"github.com/eigerco/srp/internal/srp"
)

const (
	codeBase = 0x1000
	ramSize  = 0x2000
)

func insn3(s srp.Selector, a, b byte) []byte {
	return []byte{byte(s), a, b}
}

func insn6(s srp.Selector, a byte, ext uint32) []byte {
	return binary.BigEndian.AppendUint32([]byte{byte(s), a}, ext)
}

// newMachine maps ram at 0 and places code at codeBase.
func newMachine(t *testing.T, code ...[]byte) *guest.Memory {
	t.Helper()
	mem := guest.NewMemory(0, ramSize)
	var image []byte
	for _, c := range code {
		image = append(image, c...)
	}
	require.NoError(t, mem.LoadImage(codeBase, image))
	return mem
}

// translate builds the IR of n instructions starting at codeBase.
func translate(t *testing.T, mem *guest.Memory, n int, user bool) *Block {
	t.Helper()
	b := NewBuilder(codeBase)
	tr := srp.NewTranslator(mem, b)
	insns, err := tr.Translate(srp.NewContext(codeBase, user), srp.MaxInstructions(n))
	require.NoError(t, err)
	require.Len(t, insns, n)
	require.Zero(t, tr.Arena().Live())
	return b.Block()
}
