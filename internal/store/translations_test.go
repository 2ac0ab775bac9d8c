package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/srp/pkg/db/pebble"
)

func newStore(t *testing.T) *Translations {
	t.Helper()
	kv, err := pebble.NewMemKVStore()
	require.NoError(t, err)
	s := NewTranslations(kv)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func movRecord(pc uint32) Record {
	return Record{
		PC:       pc,
		Code:     []byte{0x27, 0x00, 0x01},
		Mnemonic: "mov",
		Length:   3,
		Listing:  " ---- 0x00001000\n mov_i32 R00,R04\n",
	}
}

func TestPutGet(t *testing.T) {
	s := newStore(t)
	rec := movRecord(0x1000)
	require.NoError(t, s.Put(rec))

	got, err := s.Get(0x1000, rec.Code)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = s.Get(0x1000, []byte{0x27, 0x00, 0x02})
	assert.ErrorIs(t, err, ErrTranslationNotFound)
	_, err = s.Get(0x1003, rec.Code)
	assert.ErrorIs(t, err, ErrTranslationNotFound)
}

func TestPutEmptyListing(t *testing.T) {
	s := newStore(t)
	rec := Record{PC: 4, Code: []byte{0x00}, Mnemonic: "nop", Length: 1}
	require.NoError(t, s.Put(rec))

	got, err := s.Get(4, rec.Code)
	require.NoError(t, err)
	assert.Equal(t, "nop", got.Mnemonic)
	assert.Empty(t, got.Listing)
}

func TestForPC(t *testing.T) {
	s := newStore(t)

	first := movRecord(0x1000)
	rewritten := first
	rewritten.Code = []byte{0x37, 0x00, 0x2a}
	rewritten.Mnemonic = "ldi"
	rewritten.Listing = " ---- 0x00001000\n movi_i32 R00,$0x2a\n"
	neighbour := movRecord(0x1001)

	require.NoError(t, s.PutAll([]Record{first, rewritten, neighbour}))

	records, err := s.ForPC(0x1000)
	require.NoError(t, err)
	require.Len(t, records, 2)
	var names []string
	for _, r := range records {
		assert.Equal(t, uint32(0x1000), r.PC)
		names = append(names, r.Mnemonic)
	}
	assert.ElementsMatch(t, []string{"mov", "ldi"}, names)

	records, err = s.ForPC(0x2000)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestForPCTopOfAddressSpace(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put(movRecord(0xffffffff)))

	records, err := s.ForPC(0xffffffff)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClosed(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Put(movRecord(0)), ErrTranslationsClosed)
	assert.ErrorIs(t, s.PutAll(nil), ErrTranslationsClosed)
	_, err := s.Get(0, nil)
	assert.ErrorIs(t, err, ErrTranslationsClosed)
	_, err = s.ForPC(0)
	assert.ErrorIs(t, err, ErrTranslationsClosed)
}

func TestMakeKey(t *testing.T) {
	key := translationKey(0x01020304, []byte{0x00})
	require.Len(t, key, 1+4+32)
	assert.Equal(t, []byte{prefixTranslation, 1, 2, 3, 4}, key[:5])
	assert.NotEqual(t, key, translationKey(0x01020304, []byte{0x01}))
	assert.Equal(t, "translation", PrefixToString(key[0]))
	assert.Equal(t, "unknown", PrefixToString(0xff))
}
