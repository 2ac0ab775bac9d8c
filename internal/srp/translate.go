package srp

import "fmt"

// JumpState records how the current translation unit ends.
type JumpState uint8

const (
	JumpNext   JumpState = iota // continue with the next instruction
	JumpJump                    // the pc was changed dynamically
	JumpUpdate                  // cpu state was modified dynamically
	JumpTB                      // the unit ended with a direct jump to another unit
)

// State of the driver for the instruction in flight.
type State uint8

const (
	StateFetching State = iota
	StateDispatching
	StateEmitted
	StateError
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateDispatching:
		return "dispatching"
	case StateEmitted:
		return "emitted"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Context is the per-unit translation state.
type Context struct {
	PCStart    uint32
	PC         uint32
	Jump       JumpState
	CondJump   bool // the current instruction has been conditionally skipped
	CondLabel  int  // label jumped to when the instruction is skipped
	SingleStep bool
	User       bool // generated accesses are checked as user mode

	State State
	Count int // instructions emitted in this unit
}

// NewContext starts a translation unit at pc.
func NewContext(pc uint32, user bool) *Context {
	return &Context{PCStart: pc, PC: pc, User: user, Jump: JumpNext}
}

// Mode is the access-mode tag for memory operations emitted in this unit.
func (c *Context) Mode() Mode {
	if c.User {
		return ModeUser
	}
	return ModeSupervisor
}

// Translator decodes guest instructions and feeds their IR to an Emitter.
type Translator struct {
	code  CodeFetcher
	emit  Emitter
	arena *Arena
}

func NewTranslator(code CodeFetcher, emit Emitter) *Translator {
	return &Translator{code: code, emit: emit, arena: NewArena()}
}

// Arena exposes the temporary arena, mainly so callers can check Live.
func (t *Translator) Arena() *Arena { return t.arena }

// Step translates exactly the instruction at ctx.PC. On failure nothing is
// emitted and ctx.PC is unchanged.
func (t *Translator) Step(ctx *Context) (Instruction, error) {
	ctx.State = StateFetching
	in, err := Decode(t.code, ctx.PC)
	if err != nil {
		ctx.State = StateError
		return in, err
	}

	ctx.State = StateDispatching
	t.emit.InsnStart(in.PC)
	f := t.arena.begin()
	f.ctx, f.emit = ctx, t.emit
	in.op.emit(f, &in)
	f.close()

	ctx.State = StateEmitted
	ctx.PC += uint32(in.Length)
	ctx.Count++
	return in, nil
}

// Limit decides whether Translate may continue after count instructions.
type Limit interface {
	Continue(ctx *Context, count int) bool
}

// LimitFunc adapts a function to Limit.
type LimitFunc func(ctx *Context, count int) bool

func (f LimitFunc) Continue(ctx *Context, count int) bool { return f(ctx, count) }

// SingleInstruction ends every unit after one instruction.
var SingleInstruction Limit = MaxInstructions(1)

// MaxInstructions allows up to n instructions per unit.
func MaxInstructions(n int) Limit {
	return LimitFunc(func(_ *Context, count int) bool { return count < n })
}

// Translate calls Step until the limit declines, the unit ends with a jump,
// single stepping is enabled or an instruction fails. It returns the decoded
// instructions in order; on error they are the ones emitted before the failure.
func (t *Translator) Translate(ctx *Context, limit Limit) ([]Instruction, error) {
	var out []Instruction
	for {
		in, err := t.Step(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, in)
		if ctx.Jump != JumpNext || ctx.SingleStep || !limit.Continue(ctx, len(out)) {
			return out, nil
		}
	}
}
