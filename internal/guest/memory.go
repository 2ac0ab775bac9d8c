// Package guest provides a flat big-endian RAM for running translated SRP code
// outside a full machine model.
package guest

import (
	"encoding/binary"
	"fmt"

	"github.com/eigerco/srp/internal/srp"
)

// ErrOutOfRange an access touched bytes outside the RAM.
type ErrOutOfRange struct {
	Addr uint32
	Size int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("address out of range: addr=0x%08x size=%d", e.Addr, e.Size)
}

// ErrAccessViolation a user-mode access reached supervisor memory.
type ErrAccessViolation struct {
	Addr uint32
	Mode srp.Mode
}

func (e *ErrAccessViolation) Error() string {
	return fmt.Sprintf("access violation: addr=0x%08x mode=%s", e.Addr, e.Mode)
}

// Memory is RAM mapped at Base. Addresses at or above the supervisor
// boundary are only reachable by supervisor accesses.
type Memory struct {
	base        uint32
	data        []byte
	protectFrom uint64
}

func NewMemory(base uint32, size int) *Memory {
	return &Memory{base: base, data: make([]byte, size), protectFrom: 1 << 32}
}

// ProtectFrom makes [addr, end of RAM) supervisor-only.
func (m *Memory) ProtectFrom(addr uint32) {
	m.protectFrom = uint64(addr)
}

func (m *Memory) Base() uint32 { return m.base }
func (m *Memory) Size() int    { return len(m.data) }

// slice returns the n bytes at addr, checking range and, for data accesses, mode.
func (m *Memory) slice(addr uint32, n int, mode srp.Mode, data bool) ([]byte, error) {
	start := uint64(addr)
	end := start + uint64(n)
	if start < uint64(m.base) || end > uint64(m.base)+uint64(len(m.data)) {
		return nil, &ErrOutOfRange{Addr: addr, Size: n}
	}
	if data && mode == srp.ModeUser && end > m.protectFrom {
		return nil, &ErrAccessViolation{Addr: addr, Mode: mode}
	}
	off := start - uint64(m.base)
	return m.data[off : off+uint64(n)], nil
}

// LoadImage copies image into RAM at addr.
func (m *Memory) LoadImage(addr uint32, image []byte) error {
	s, err := m.slice(addr, len(image), srp.ModeSupervisor, false)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	copy(s, image)
	return nil
}

// Read copies len(buf) bytes at addr into buf, ignoring protection.
func (m *Memory) Read(addr uint32, buf []byte) error {
	s, err := m.slice(addr, len(buf), srp.ModeSupervisor, false)
	if err != nil {
		return err
	}
	copy(buf, s)
	return nil
}

// FetchCode implements srp.CodeFetcher. Code fetches are not mode checked.
// Bytes past the end of RAM read as zero as long as addr itself is mapped.
func (m *Memory) FetchCode(addr uint32) (uint32, error) {
	if s, err := m.slice(addr, 4, srp.ModeSupervisor, false); err == nil {
		return binary.BigEndian.Uint32(s), nil
	}
	s, err := m.slice(addr, 1, srp.ModeSupervisor, false)
	if err != nil {
		return 0, err
	}
	// the tail of RAM: pad the word
	var w [4]byte
	copy(w[:], s[:cap(s)])
	return binary.BigEndian.Uint32(w[:]), nil
}

func (m *Memory) Load8(addr uint32, mode srp.Mode) (uint8, error) {
	s, err := m.slice(addr, 1, mode, true)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (m *Memory) Load32(addr uint32, mode srp.Mode) (uint32, error) {
	s, err := m.slice(addr, 4, mode, true)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(s), nil
}

func (m *Memory) Store8(addr uint32, value uint8, mode srp.Mode) error {
	s, err := m.slice(addr, 1, mode, true)
	if err != nil {
		return err
	}
	s[0] = value
	return nil
}

func (m *Memory) Store32(addr uint32, value uint32, mode srp.Mode) error {
	s, err := m.slice(addr, 4, mode, true)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(s, value)
	return nil
}
