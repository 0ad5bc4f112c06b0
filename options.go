package muon

import "github.com/ralphmorton/muon/internal/wasm/interpreter"

// RuntimeConfig collects the options passed to New.
type RuntimeConfig struct {
	callStackCeiling     int
	initialStackCapacity int
}

func newRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{}
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption func(*RuntimeConfig)

// WithCallStackCeiling overrides the maximum call-stack depth before
// execution reports ErrStackOverflow (spec.md §4.6, §7). The default
// is 8192. The ceiling is process-wide rather than per-Runtime,
// matching the package-level limit the interpreter enforces.
func WithCallStackCeiling(n int) RuntimeOption {
	return func(c *RuntimeConfig) { c.callStackCeiling = n }
}

// WithInitialStackCapacity pre-allocates the operand stack's backing
// array to n slots, avoiding incremental growth for call graphs known
// to run deep. Purely a performance knob; observable behavior is
// identical either way.
func WithInitialStackCapacity(n int) RuntimeOption {
	return func(c *RuntimeConfig) { c.initialStackCapacity = n }
}

func (c *RuntimeConfig) apply() {
	if c.callStackCeiling > 0 {
		interpreter.SetCallStackCeiling(c.callStackCeiling)
	}
}
