package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/eigerco/srp/internal/guest"
	"github.com/eigerco/srp/internal/srp"
	"github.com/eigerco/srp/internal/srp/ir"
	"github.com/eigerco/srp/internal/store"
	"github.com/eigerco/srp/pkg/db/pebble"
	"github.com/eigerco/srp/pkg/log"
)

type options struct {
	image    string
	base     uint32
	pc       uint32
	ramSize  int
	protect  uint32
	max      int
	units    int
	regs     []string
	user     bool
	exec     bool
	verbose  bool
	dbPath   string
	logLevel string
	logType  string
}

// uint32Flag accepts decimal, 0x hex or 0 octal.
type uint32Flag struct {
	v   *uint32
	set *bool
}

func (f uint32Flag) String() string {
	if f.v == nil {
		return "0"
	}
	return fmt.Sprintf("0x%x", *f.v)
}

func (f uint32Flag) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	*f.v = uint32(n)
	if f.set != nil {
		*f.set = true
	}
	return nil
}

func parseFlags(args []string) (options, error) {
	var (
		opts       options
		pcSet      bool
		protectSet bool
	)
	fs := flag.NewFlagSet("srptrace", flag.ContinueOnError)
	fs.StringVar(&opts.image, "image", "", "raw guest image to translate")
	fs.Var(uint32Flag{v: &opts.base}, "base", "guest address the image is loaded at")
	fs.Var(uint32Flag{v: &opts.pc, set: &pcSet}, "pc", "address of the first instruction, defaults to -base")
	fs.IntVar(&opts.ramSize, "ram", 0, "guest ram size in bytes, defaults to the image size")
	fs.Var(uint32Flag{v: &opts.protect, set: &protectSet}, "protect", "first supervisor-only address")
	fs.IntVar(&opts.max, "max", 1, "maximum instructions per translation unit")
	fs.IntVar(&opts.units, "units", 1, "translation units to translate back to back")
	fs.Func("reg", "initial register value as name=value, repeatable", func(s string) error {
		opts.regs = append(opts.regs, s)
		return nil
	})
	fs.BoolVar(&opts.user, "user", false, "translate memory accesses as user mode")
	fs.BoolVar(&opts.exec, "exec", false, "evaluate the translated ops and dump the registers")
	fs.BoolVar(&opts.verbose, "verbose", false, "dump the decoded instructions")
	fs.StringVar(&opts.dbPath, "db", "", "directory of a translation log to record into")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	fs.StringVar(&opts.logType, "log-type", "console", "log output, console or json")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.image == "" {
		return opts, errors.New("-image is required")
	}
	if opts.max < 1 {
		return opts, errors.New("-max must be at least 1")
	}
	if opts.units < 1 {
		return opts, errors.New("-units must be at least 1")
	}
	if !pcSet {
		opts.pc = opts.base
	}
	if !protectSet {
		opts.protect = ^uint32(0)
	}
	return opts, nil
}

// main translates guest code and prints its IR.
// go run ./cmd/srptrace -image code.bin -base 0x1000 -max 16 -exec
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	level, err := log.ParseLogLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logType, err := log.ParseLoggerType(opts.logType)
	if err != nil {
		return err
	}
	log.Init(log.Options{LogLevel: level, Type: logType})

	regs := &srp.RegisterFile{}
	if err := applyRegs(regs, opts.regs); err != nil {
		return err
	}

	image, err := os.ReadFile(opts.image)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	mem := guest.NewMemory(opts.base, max(opts.ramSize, len(image)))
	if err := mem.LoadImage(opts.base, image); err != nil {
		return err
	}
	if opts.protect != ^uint32(0) {
		mem.ProtectFrom(opts.protect)
	}
	log.Root.Debug().Uint32("base", mem.Base()).Int("size", mem.Size()).Msg("guest ram mapped")

	var translations *store.Translations
	if opts.dbPath != "" {
		kv, err := pebble.NewKVStore(opts.dbPath)
		if err != nil {
			return fmt.Errorf("open translation log: %w", err)
		}
		translations = store.NewTranslations(kv)
		defer translations.Close() //nolint:errcheck
	}

	builder := ir.NewBuilder(opts.pc)
	var emit srp.Emitter = builder
	if level <= zerolog.DebugLevel {
		emit = ir.NewLogger(builder, &log.Translator)
	}
	tr := srp.NewTranslator(mem, emit)
	regs.SetPC(opts.pc)

	pc := opts.pc
	for unit := 0; unit < opts.units; unit++ {
		builder.Reset(pc)
		ctx := srp.NewContext(pc, opts.user)
		insns, err := tr.Translate(ctx, srp.MaxInstructions(opts.max))
		block := builder.Block()
		fmt.Fprint(stdout, block.Listing())
		if err != nil {
			log.Root.Error().Err(err).Uint32("pc", ctx.PC).Int("translated", len(insns)).Msg("translation stopped")
			return fmt.Errorf("translate at 0x%08x: %w", ctx.PC, err)
		}
		log.Root.Info().Uint32("pc", pc).Int("instructions", len(insns)).Int("ops", len(block.Ops)).Msg("translated")

		if opts.verbose {
			fmt.Fprint(stdout, spew.Sdump(insns))
		}
		if translations != nil {
			if err := record(translations, mem, insns, block); err != nil {
				return err
			}
		}
		if opts.exec {
			if err := ir.Eval(block, regs, mem); err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			regs.SetPC(ctx.PC)
		}
		pc = ctx.PC
	}

	if opts.exec {
		return srp.DumpState(stdout, regs)
	}
	return nil
}

// applyRegs sets the initial registers from name=value pairs.
func applyRegs(regs *srp.RegisterFile, pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("-reg %q: want name=value", pair)
		}
		r, ok := srp.RegByName(name)
		if !ok {
			return fmt.Errorf("-reg %q: unknown register %q", pair, name)
		}
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return fmt.Errorf("-reg %q: %w", pair, err)
		}
		if err := regs.Set(r, uint32(v)); err != nil {
			return err
		}
	}
	return nil
}

// record stores each translated instruction with its own slice of the listing.
func record(translations *store.Translations, mem *guest.Memory, insns []srp.Instruction, block *ir.Block) error {
	perInsn := block.Instructions()
	if len(perInsn) != len(insns) {
		return fmt.Errorf("block has %d instructions, decoded %d", len(perInsn), len(insns))
	}
	records := make([]store.Record, len(insns))
	for i, in := range insns {
		code := make([]byte, in.Length)
		if err := mem.Read(in.PC, code); err != nil {
			return fmt.Errorf("read code at 0x%08x: %w", in.PC, err)
		}
		unit := &ir.Block{PC: in.PC, Ops: perInsn[i]}
		records[i] = store.Record{
			PC:       in.PC,
			Code:     code,
			Mnemonic: in.Mnemonic(),
			Length:   in.Length,
			Listing:  unit.Listing(),
		}
	}
	return translations.PutAll(records)
}
