package store

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/srp/pkg/db"
	"github.com/eigerco/srp/pkg/db/pebble"
	"github.com/eigerco/srp/pkg/log"
)

var (
	ErrTranslationNotFound = errors.New("translation not found")
	ErrTranslationsClosed  = errors.New("translation store is closed")
)

// Record is the stored translation of one guest instruction.
type Record struct {
	PC       uint32
	Code     []byte // instruction bytes as fetched
	Mnemonic string
	Length   int
	Listing  string // IR listing, one op per line
}

// Translations logs translated instructions keyed by pc and a digest of
// their code, so rewritten code at the same pc gets its own entry.
type Translations struct {
	db     db.KVStore
	closed atomic.Bool
}

func NewTranslations(db db.KVStore) *Translations {
	return &Translations{db: db}
}

func pcBytes(pc uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, pc)
}

func translationKey(pc uint32, code []byte) []byte {
	digest := blake2b.Sum256(code)
	return makeKey(prefixTranslation, pcBytes(pc), digest[:])
}

// the value layout is: mnemonic, length, code as hex, then the listing
func encodeRecord(r Record) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%d\n%x\n", r.Mnemonic, r.Length, r.Code)
	sb.WriteString(r.Listing)
	return []byte(sb.String())
}

func decodeRecord(pc uint32, value []byte) (Record, error) {
	parts := strings.SplitN(string(value), "\n", 4)
	if len(parts) != 4 {
		return Record{}, fmt.Errorf("malformed record at pc=0x%08x", pc)
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("record length: %w", err)
	}
	code, err := hex.DecodeString(parts[2])
	if err != nil {
		return Record{}, fmt.Errorf("record code: %w", err)
	}
	return Record{PC: pc, Code: code, Mnemonic: parts[0], Length: length, Listing: parts[3]}, nil
}

// Put stores r, replacing an earlier record for the same pc and code.
func (t *Translations) Put(r Record) error {
	if t.closed.Load() {
		return ErrTranslationsClosed
	}
	if err := t.db.Put(translationKey(r.PC, r.Code), encodeRecord(r)); err != nil {
		return fmt.Errorf("store translation: %w", err)
	}
	return nil
}

// PutAll stores the records of one translation unit atomically.
func (t *Translations) PutAll(records []Record) error {
	if t.closed.Load() {
		return ErrTranslationsClosed
	}

	batch := t.db.NewBatch()
	defer batch.Close() //nolint:errcheck

	for _, r := range records {
		if err := batch.Put(translationKey(r.PC, r.Code), encodeRecord(r)); err != nil {
			return fmt.Errorf("store translation: %w", err)
		}
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}
	log.Store.Debug().Int("records", len(records)).Msg("translation unit stored")
	return nil
}

// Get returns the record for the instruction bytes code at pc.
func (t *Translations) Get(pc uint32, code []byte) (Record, error) {
	if t.closed.Load() {
		return Record{}, ErrTranslationsClosed
	}

	value, err := t.db.Get(translationKey(pc, code))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Record{}, ErrTranslationNotFound
		}
		return Record{}, fmt.Errorf("get translation: %w", err)
	}
	return decodeRecord(pc, value)
}

// ForPC returns every recorded version of the instruction at pc, ordered by
// code digest. Unreadable entries are logged and skipped.
func (t *Translations) ForPC(pc uint32) ([]Record, error) {
	if t.closed.Load() {
		return nil, ErrTranslationsClosed
	}

	start := makeKey(prefixTranslation, pcBytes(pc))
	end := makeKey(prefixTranslation, pcBytes(pc+1))
	if pc == ^uint32(0) {
		end = []byte{prefixTranslation + 1}
	}
	iter, err := t.db.NewIterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	var records []Record
	for iter.Next() {
		value, err := iter.Value()
		if err != nil {
			log.Store.Warn().Err(err).Uint32("pc", pc).Msg("read translation from iterator")
			continue
		}
		r, err := decodeRecord(pc, value)
		if err != nil {
			log.Store.Warn().Err(err).Hex("key", iter.Key()).Msg("parse translation")
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// Close closes the translation store and its database
func (t *Translations) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	return t.db.Close()
}
