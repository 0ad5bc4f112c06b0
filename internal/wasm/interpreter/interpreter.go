// Package interpreter builds a runnable Store from a decoded Module
// and evaluates exported functions over a typed operand stack, per
// spec.md §4.5-§4.6.
package interpreter

import (
	"encoding/binary"
	"fmt"

	"github.com/ralphmorton/muon/api"
	"github.com/ralphmorton/muon/internal/wasm"
)

// stackOverflowSignal is the panic value frameStack.push raises when
// callStackCeiling is exceeded; Engine.Call recovers exactly this
// value and reports ErrStackOverflow, letting any other panic (a
// genuine programmer error) propagate.
type stackOverflowSignal struct{}

// Engine is the stack-machine interpreter of spec.md §4.6: an operand
// stack, a frame stack, and a reference to the Store and host externs
// it services calls against. Not safe for concurrent use (spec.md §5).
type Engine struct {
	store   *Store
	externs api.Externs

	operands []api.Value
	frames   *frameStack
}

// NewEngine constructs an Engine over store, dispatching host calls
// through externs. initialStackCapacity pre-allocates the operand
// stack's backing array to that many slots; 0 leaves it to grow from
// nil on first push.
func NewEngine(store *Store, externs api.Externs, initialStackCapacity int) *Engine {
	e := &Engine{store: store, externs: externs, frames: newFrameStack()}
	if initialStackCapacity > 0 {
		e.operands = make([]api.Value, 0, initialStackCapacity)
	}
	return e
}

// Call looks up name in the store's export map and invokes it with
// args, per spec.md §4.6. On any error, both stacks are reset to
// empty before the error is returned (spec.md §5, §7).
func (e *Engine) Call(name string, args []api.Value) (result *api.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.reset()
			if _, ok := r.(stackOverflowSignal); ok {
				err = ErrStackOverflow
				return
			}
			panic(r)
		}
	}()
	defer e.reset()

	idx, ok := e.store.ExportIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchExport, name)
	}
	if int(idx) >= len(e.store.Funcs) {
		return nil, fmt.Errorf("%w: index %d", ErrNoSuchFunction, idx)
	}
	fn := e.store.Funcs[idx]

	for _, a := range args {
		e.pushOperand(a)
	}

	if !fn.Internal {
		return e.callExtern(fn)
	}

	if err := e.enterFrame(fn); err != nil {
		return nil, err
	}
	if err := e.run(); err != nil {
		return nil, err
	}

	if len(e.operands) > 0 {
		v := e.operands[len(e.operands)-1]
		return &v, nil
	}
	return nil, nil
}

func (e *Engine) reset() {
	e.operands = e.operands[:0]
	e.frames = newFrameStack()
}

func (e *Engine) pushOperand(v api.Value) {
	e.operands = append(e.operands, v)
}

func (e *Engine) popOperand() (api.Value, error) {
	if len(e.operands) == 0 {
		return api.Value{}, ErrStackEmpty
	}
	v := e.operands[len(e.operands)-1]
	e.operands = e.operands[:len(e.operands)-1]
	return v, nil
}

func (e *Engine) truncateTo(height int) {
	e.operands = e.operands[:height]
}

// run is the evaluation loop of spec.md §4.6.2: strictly sequential,
// single-threaded, driven entirely by the topmost frame's program
// counter until the frame stack empties.
func (e *Engine) run() error {
	for {
		if e.frames.empty() {
			return nil
		}
		fr := e.frames.top()
		fr.pc++
		if fr.pc >= len(fr.code.Instructions) {
			// Safety net; well-formed code always hits End first.
			e.unwindFrame(e.frames.pop())
			continue
		}
		if err := e.dispatch(fr, fr.code.Instructions[fr.pc]); err != nil {
			return err
		}
	}
}

func (e *Engine) dispatch(fr *frame, ins wasm.Instruction) error {
	switch ins.Opcode {
	case wasm.OpcodeLocalGet:
		if int(ins.Index) >= len(fr.locals) {
			return fmt.Errorf("%w: index %d", ErrMissingLocal, ins.Index)
		}
		e.pushOperand(fr.locals[ins.Index])
		return nil

	case wasm.OpcodeLocalSet:
		v, err := e.popOperand()
		if err != nil {
			return err
		}
		if int(ins.Index) >= len(fr.locals) {
			return fmt.Errorf("%w: index %d", ErrMissingLocal, ins.Index)
		}
		fr.locals[ins.Index] = v
		return nil

	case wasm.OpcodeI32Const:
		e.pushOperand(api.I32(ins.I32Const))
		return nil

	case wasm.OpcodeI32Add:
		r, err := e.popOperand()
		if err != nil {
			return err
		}
		l, err := e.popOperand()
		if err != nil {
			return err
		}
		li, ok1 := l.I32()
		ri, ok2 := r.I32()
		if !ok1 || !ok2 {
			return fmt.Errorf("%w: i32.add on %s, %s", ErrTypeMismatch, l, r)
		}
		e.pushOperand(api.I32(li + ri)) // wraps modulo 2^32, as Go int32 arithmetic does
		return nil

	case wasm.OpcodeI32Store:
		return e.execI32Store(ins)

	case wasm.OpcodeCall:
		return e.execCall(ins.Index)

	case wasm.OpcodeEnd:
		e.unwindFrame(e.frames.pop())
		return nil

	default:
		return fmt.Errorf("%w: opcode 0x%x", ErrUnimplemented, ins.Opcode)
	}
}

func (e *Engine) execI32Store(ins wasm.Instruction) error {
	valV, err := e.popOperand()
	if err != nil {
		return err
	}
	addrV, err := e.popOperand()
	if err != nil {
		return err
	}
	val, ok := valV.I32()
	if !ok {
		return fmt.Errorf("%w: i32.store value %s", ErrTypeMismatch, valV)
	}
	addr, ok := addrV.I32()
	if !ok {
		return fmt.Errorf("%w: i32.store address %s", ErrTypeMismatch, addrV)
	}
	if len(e.store.Memories) == 0 {
		return fmt.Errorf("%w: no memory 0", wasm.ErrNoSuchMemory)
	}
	mem := e.store.Memories[0]
	effAddr := uint64(uint32(addr)) + uint64(ins.MemArg.Offset)
	end := effAddr + 4
	if end > uint64(len(mem.Bytes)) {
		return fmt.Errorf("%w: i32.store at %d", wasm.ErrMemoryAddressOutOfRange, effAddr)
	}
	binary.LittleEndian.PutUint32(mem.Bytes[effAddr:end], uint32(val))
	return nil
}

func (e *Engine) execCall(idx wasm.Index) error {
	if int(idx) >= len(e.store.Funcs) {
		return fmt.Errorf("%w: index %d", ErrNoSuchFunction, idx)
	}
	fn := e.store.Funcs[idx]
	if fn.Internal {
		return e.enterFrame(fn)
	}
	result, err := e.callExternValue(fn)
	if err != nil {
		return err
	}
	if result != nil {
		e.pushOperand(*result)
	}
	return nil
}

// callExtern pops the arguments for fn from the operand stack,
// invokes the host bridge, and returns its result directly — used for
// a top-level Call where fn itself is external (spec.md §4.6 step 4).
func (e *Engine) callExtern(fn Func) (*api.Value, error) {
	return e.callExternValue(fn)
}

func (e *Engine) callExternValue(fn Func) (*api.Value, error) {
	hostFn, ok := e.externs.Lookup(fn.Module, fn.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchExtern, fn.Module, fn.Name)
	}
	ft := FuncType(e.store.Module, fn)
	args := make([]api.Value, len(ft.Params))
	for i := len(ft.Params) - 1; i >= 0; i-- {
		v, err := e.popOperand()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return hostFn(args)
}

// enterFrame pushes a new frame for internal function fn, per spec.md
// §4.6.1: parameters are popped off the operand stack in argument
// order and placed at locals[0:len(params)], followed by zero-valued
// locals per the function's local declarations.
func (e *Engine) enterFrame(fn Func) error {
	ft := FuncType(e.store.Module, fn)
	code := CodeOf(e.store.Module, fn)

	locals := make([]api.Value, len(ft.Params)+code.NumLocals())
	for i := len(ft.Params) - 1; i >= 0; i-- {
		v, err := e.popOperand()
		if err != nil {
			return err
		}
		locals[i] = v
	}

	li := len(ft.Params)
	for _, decl := range code.Locals {
		zero, ok := api.ZeroValue(decl.Type)
		if !ok {
			return fmt.Errorf("%w: local type 0x%x", wasm.ErrUnknownType, decl.Type)
		}
		for n := uint32(0); n < decl.Count; n++ {
			locals[li] = zero
			li++
		}
	}

	f := newFrame(code, len(ft.Results), len(e.operands), locals)
	e.frames.push(f)
	return nil
}

// unwindFrame implements spec.md §4.6.4: the frame has already been
// popped from the frame stack; this reconciles the operand stack
// against the frame's result arity.
func (e *Engine) unwindFrame(f *frame) {
	if f.arity == 1 {
		v := e.operands[len(e.operands)-1]
		e.truncateTo(f.sp)
		e.pushOperand(v)
		return
	}
	e.truncateTo(f.sp)
}
