package interpreter

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// Func is a resolved entry of the function index space (spec.md §3
// "Func"): either Internal, backed by this module's own code, or
// External, backed by a host-provided extern.
type Func struct {
	Internal bool

	TypeIndex wasm.Index // valid for both kinds
	CodeIndex wasm.Index // valid when Internal

	Module string // valid when !Internal
	Name   string // valid when !Internal
}

// MemoryInstance is one instantiated linear memory.
type MemoryInstance struct {
	Bytes []byte
	Max   *uint32
}

// Store is the runtime-instantiated counterpart of a decoded Module
// (spec.md §3 "Store"): resolved functions, materialized memories, and
// an export-name lookup.
type Store struct {
	Module *wasm.Module

	Funcs       []Func
	Memories    []*MemoryInstance
	ExportIndex map[string]wasm.Index
}

// BuildStore resolves m's function index space, allocates and
// initializes its linear memories, and records its exports, per
// spec.md §4.5.
func BuildStore(m *wasm.Module) (*Store, error) {
	if err := validatePrerequisites(m); err != nil {
		return nil, err
	}

	s := &Store{Module: m, ExportIndex: map[string]wasm.Index{}}

	// Step 1: imports, in order, become External funcs.
	for _, imp := range m.ImportSection {
		if imp.Type != wasm.ExternTypeFunc {
			continue // unreachable for this subset's decoder, but defensive
		}
		if int(imp.DescFunc) >= len(m.TypeSection) {
			return nil, fmt.Errorf("%w: import %s.%s type index %d", wasm.ErrNoSuchFuncType, imp.Module, imp.Name, imp.DescFunc)
		}
		s.Funcs = append(s.Funcs, Func{
			Internal:  false,
			TypeIndex: imp.DescFunc,
			Module:    imp.Module,
			Name:      imp.Name,
		})
	}

	// Step 2: locally defined functions, in code order.
	for i, code := range m.CodeSection {
		_ = code
		if i >= len(m.FunctionSection) {
			return nil, fmt.Errorf("%w: code entry %d has no function section entry", wasm.ErrNoSuchFunc, i)
		}
		typeIdx := m.FunctionSection[i]
		if int(typeIdx) >= len(m.TypeSection) {
			return nil, fmt.Errorf("%w: function %d type index %d", wasm.ErrNoSuchFuncType, i, typeIdx)
		}
		s.Funcs = append(s.Funcs, Func{
			Internal:  true,
			TypeIndex: typeIdx,
			CodeIndex: wasm.Index(i),
		})
	}

	// Step 3: memories.
	for _, mt := range m.MemorySection {
		s.Memories = append(s.Memories, &MemoryInstance{
			Bytes: make([]byte, uint64(mt.Min)*wasm.PageSize),
			Max:   mt.Max,
		})
	}

	// Step 4: exports.
	for name, exp := range m.ExportSection {
		if exp.Type != wasm.ExternTypeFunc {
			continue
		}
		s.ExportIndex[name] = exp.Index
	}

	// Step 5: data segments.
	for _, seg := range m.DataSection {
		if int(seg.MemoryIndex) >= len(s.Memories) {
			return nil, fmt.Errorf("%w: segment targets memory %d", wasm.ErrNoSuchMemory, seg.MemoryIndex)
		}
		mem := s.Memories[seg.MemoryIndex]
		end := uint64(seg.Offset) + uint64(len(seg.Init))
		if end > uint64(len(mem.Bytes)) {
			return nil, fmt.Errorf("%w: segment [%d, %d) exceeds memory size %d", wasm.ErrMemoryAddressOutOfRange, seg.Offset, end, len(mem.Bytes))
		}
		copy(mem.Bytes[seg.Offset:], seg.Init)
	}

	return s, nil
}

// validatePrerequisites enforces the structural consistency a Runtime
// needs at construction time (spec.md §7 "Runtime missing-prerequisite
// errors"). A module with functions but no way to resolve or execute
// them, or with no exports at all (meaning nothing could ever be
// called through this library's one entry point), fails fast here
// rather than surfacing confusing link errors later.
func validatePrerequisites(m *wasm.Module) error {
	if len(m.FunctionSection) > 0 && m.TypeSection == nil {
		return wasm.ErrMissingTypeSection
	}
	if len(m.CodeSection) > 0 && m.FunctionSection == nil {
		return wasm.ErrMissingFunctionSection
	}
	if len(m.FunctionSection) > 0 && m.CodeSection == nil {
		return wasm.ErrMissingCodeSection
	}
	if m.ExportSection == nil {
		return wasm.ErrMissingExportSection
	}
	return nil
}

// FuncType resolves f's signature against the owning module.
func FuncType(m *wasm.Module, f Func) *wasm.FuncType {
	return m.TypeSection[f.TypeIndex]
}

// CodeOf resolves an Internal func's body against the owning module.
func CodeOf(m *wasm.Module, f Func) *wasm.Code {
	return m.CodeSection[f.CodeIndex]
}
