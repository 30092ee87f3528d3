package interpreter

import (
	"hash/fnv"
	"io"
	"log/slog"

	"github.com/agenthands/asa/pkg/compiler/lexer"
	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/core/value"
	"github.com/agenthands/asa/pkg/stdlib"
)

// DefaultMaxCallDepth bounds recursion when Options.MaxCallDepth is zero.
const DefaultMaxCallDepth = 512

// Options configures an Interpreter. The zero value is usable.
type Options struct {
	Stdout       io.Writer    // where print writes; nil discards
	Logger       *slog.Logger // nil discards
	MaxCallDepth int          // nested user calls allowed; 0 means DefaultMaxCallDepth
	MaxSteps     int          // node evaluations per Exec; 0 means unlimited
}

// frame holds one activation's bindings, keyed by variable handle.
type frame map[uint64]value.Value

// Interpreter evaluates syntax trees against its own call stack. The global
// frame lives as long as the interpreter, so successive Exec calls share
// top-level bindings.
type Interpreter struct {
	stack []frame
	names map[uint64]string // handle -> spelling

	host     *stdlib.Host
	log      *slog.Logger
	maxDepth int
	maxSteps int
	steps    int

	jump lexer.Token // last break/continue, for reporting strays
}

func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	depth := opts.MaxCallDepth
	if depth <= 0 {
		depth = DefaultMaxCallDepth
	}
	return &Interpreter{
		stack:    []frame{{}},
		names:    make(map[uint64]string),
		host:     &stdlib.Host{Out: out},
		log:      logger,
		maxDepth: depth,
		maxSteps: opts.MaxSteps,
	}
}

// Reset drops every binding and returns to a single empty global frame.
func (in *Interpreter) Reset() {
	in.stack = in.stack[:0]
	in.stack = append(in.stack, frame{})
	in.names = make(map[uint64]string)
	in.steps = 0
}

// Depth returns the number of live frames, the global frame included.
func (in *Interpreter) Depth() int {
	return len(in.stack)
}

// Handle maps an identifier spelling to its variable handle (FNV-1a 64).
func Handle(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// handle returns name's handle and remembers the spelling. Two spellings
// hashing to the same handle are rejected.
func (in *Interpreter) handle(name string) (uint64, error) {
	h := Handle(name)
	if prev, ok := in.names[h]; ok {
		if prev != name {
			return 0, errs.New(errs.NameCollision, "%q and %q share handle %#x", prev, name, h)
		}
		return h, nil
	}
	in.names[h] = name
	return h, nil
}

// lookup searches frames innermost first.
func (in *Interpreter) lookup(h uint64) (value.Value, bool) {
	for i := len(in.stack) - 1; i >= 0; i-- {
		if v, ok := in.stack[i][h]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// bind stores a copy of v in the innermost frame.
func (in *Interpreter) bind(h uint64, v value.Value) {
	in.stack[len(in.stack)-1][h] = v.Clone()
}

// GetVariable returns a copy of the binding visible for name.
func (in *Interpreter) GetVariable(name string) (value.Value, bool) {
	v, ok := in.lookup(Handle(name))
	if !ok || in.names[Handle(name)] != name {
		return value.Value{}, false
	}
	return v.Clone(), true
}

func (in *Interpreter) pushFrame(name string) {
	in.stack = append(in.stack, frame{})
	in.log.Debug("push stack frame",
		slog.String("function", name),
		slog.Int("stack-size", len(in.stack)))
}

func (in *Interpreter) popFrame(name string) {
	in.stack[len(in.stack)-1] = nil
	in.stack = in.stack[:len(in.stack)-1]
	in.log.Debug("pop stack frame",
		slog.String("function", name),
		slog.Int("stack-size", len(in.stack)))
}
