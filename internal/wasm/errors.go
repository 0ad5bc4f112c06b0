package wasm

import "errors"

// Decode errors (spec.md §7 "Decode errors").
var (
	ErrInvalidModuleHeader = errors.New("invalid module header")
	ErrUnknownSection      = errors.New("unknown section")
	ErrUnknownType         = errors.New("unknown value type")
	ErrUnknownInstruction  = errors.New("unknown instruction")
	ErrInvalidTypeSection     = errors.New("invalid type section")
	ErrInvalidImportSection   = errors.New("invalid import section")
	ErrInvalidFunctionSection = errors.New("invalid function section")
	ErrInvalidExportSection   = errors.New("invalid export section")
	ErrInvalidCodeSection     = errors.New("invalid code section")
	ErrInvalidCode            = errors.New("invalid code")
	ErrUnexpectedEOF          = errors.New("unexpected end of input")
	ErrDuplicateSection       = errors.New("duplicate section")
)

// Link/construction errors (spec.md §7 "Link/construction errors").
var (
	ErrNoSuchFuncType        = errors.New("no such function type")
	ErrNoSuchFunc            = errors.New("no such function")
	ErrNoSuchMemory          = errors.New("no such memory")
	ErrMemoryAddressOutOfRange = errors.New("memory address out of range")
)

// Missing-prerequisite errors, enforced at Runtime construction
// (spec.md §7 "Runtime missing-prerequisite errors").
var (
	ErrMissingTypeSection     = errors.New("missing type section")
	ErrMissingFunctionSection = errors.New("missing function section")
	ErrMissingExportSection   = errors.New("missing export section")
	ErrMissingCodeSection     = errors.New("missing code section")
)
