package interpreter

import (
	"github.com/ralphmorton/muon/api"
	"github.com/ralphmorton/muon/internal/wasm"
)

// frame is the activation record for one in-progress call (spec.md §3
// "Frame"). pc starts at -1 so the dispatch loop can unconditionally
// pre-increment before fetching.
type frame struct {
	pc     int
	sp     int // operand stack height at frame entry
	code   *wasm.Code
	arity  int
	locals []api.Value
}

func newFrame(code *wasm.Code, arity, sp int, locals []api.Value) *frame {
	return &frame{pc: -1, sp: sp, code: code, arity: arity, locals: locals}
}

const initialFrameStackHeight = 16

// callStackCeiling bounds call depth; exceeding it panics, caught at
// the Call boundary and reported as ErrStackOverflow. Declared as a
// var, not a const, so tests can lower it the way
// wasm/naivevm/vm_stack_test.go lowers callStackHeightLimit.
var callStackCeiling = 8192

// SetCallStackCeiling overrides the call-depth limit enforced by every
// Engine's frame stack. Exported so embedders can tune it via
// muon.WithCallStackCeiling without reaching into this package.
func SetCallStackCeiling(n int) {
	callStackCeiling = n
}

// frameStack is a growable stack of *frame, addressed by sp as the
// index of the top element (-1 when empty), per
// wasm/naivevm/vm_stack_test.go's push/grow/overflow discipline.
type frameStack struct {
	stack []*frame
	sp    int
}

func newFrameStack() *frameStack {
	return &frameStack{stack: make([]*frame, initialFrameStackHeight), sp: -1}
}

func (s *frameStack) push(f *frame) {
	s.sp++
	if s.sp >= callStackCeiling {
		panic(stackOverflowSignal{})
	}
	if s.sp >= len(s.stack) {
		grown := make([]*frame, len(s.stack)*2)
		copy(grown, s.stack)
		s.stack = grown
	}
	s.stack[s.sp] = f
}

func (s *frameStack) pop() *frame {
	f := s.stack[s.sp]
	s.stack[s.sp] = nil
	s.sp--
	return f
}

func (s *frameStack) top() *frame {
	return s.stack[s.sp]
}

func (s *frameStack) empty() bool {
	return s.sp < 0
}
