package srp

import "fmt"

// Temp is a short-lived IR operand. It is only valid inside the Frame that created it.
type Temp struct {
	id    int
	frame uint64
}

// ID is the backend-visible slot of the temporary. Slots are reused across frames.
func (t Temp) ID() int { return t.id }

func (t Temp) String() string { return fmt.Sprintf("tmp%d", t.id) }

// Arena hands out temporaries and tracks how many are live.
type Arena struct {
	live   int
	serial uint64
	open   *Frame
}

func NewArena() *Arena {
	return &Arena{}
}

// Live is the number of temporaries allocated and not yet released.
func (a *Arena) Live() int { return a.live }

// begin opens the frame of one decode step. Frames do not nest.
func (a *Arena) begin() *Frame {
	if a.open != nil {
		panic("srp: temporary frame already open")
	}
	a.serial++
	f := &Frame{arena: a, serial: a.serial, base: a.live}
	a.open = f
	return f
}

// Frame scopes the temporaries of a single instruction. Handlers can only
// allocate from it; the driver releases everything by closing it.
type Frame struct {
	arena  *Arena
	serial uint64
	base   int
	count  int
	closed bool

	ctx  *Context
	emit Emitter
}

func (f *Frame) newTemp() Temp {
	if f.closed {
		panic("srp: allocation from a closed frame")
	}
	t := Temp{id: f.count, frame: f.serial}
	f.count++
	f.arena.live++
	return t
}

// check panics if t was not allocated by this open frame.
func (f *Frame) check(t Temp) Temp {
	if f.closed || t.frame != f.serial || t.id >= f.count {
		panic(fmt.Sprintf("srp: %s used outside its frame", t))
	}
	return t
}

// close releases every temporary of the frame and returns how many there were.
func (f *Frame) close() int {
	if f.closed {
		panic("srp: frame closed twice")
	}
	f.closed = true
	f.arena.live -= f.count
	f.arena.open = nil
	if f.arena.live != f.base {
		panic(fmt.Sprintf("srp: temporary leak: live=%d want=%d", f.arena.live, f.base))
	}
	return f.count
}
