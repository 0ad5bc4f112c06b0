// Package muon is a minimal WebAssembly runtime: it decodes a binary
// module, instantiates it against host-provided externs, and runs its
// exported functions over a small instruction subset (i32 arithmetic,
// locals, linear memory stores, and function calls).
package muon

import (
	"fmt"
	"io"

	"github.com/ralphmorton/muon/api"
	"github.com/ralphmorton/muon/internal/wasm/binary"
	"github.com/ralphmorton/muon/internal/wasm/interpreter"
)

// Runtime is one decoded, instantiated module, ready to have its
// exported functions called.
type Runtime struct {
	engine *interpreter.Engine
}

// New decodes the binary module read from r and instantiates it,
// resolving its imports against externs. Host functions not present
// in externs surface as ErrNoSuchExtern the first time execution
// reaches a Call instruction that targets them, not at construction
// time.
func New(r io.Reader, externs api.Externs, opts ...RuntimeOption) (*Runtime, error) {
	cfg := newRuntimeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.apply()

	m, err := binary.DecodeModule(r)
	if err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}

	store, err := interpreter.BuildStore(m)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	if externs == nil {
		externs = api.Externs{}
	}

	return &Runtime{engine: interpreter.NewEngine(store, externs, cfg.initialStackCapacity)}, nil
}

// Call invokes the exported function name with args. A nil result
// with a nil error means the function returned no value.
func (r *Runtime) Call(name string, args ...api.Value) (*api.Value, error) {
	return r.engine.Call(name, args)
}
