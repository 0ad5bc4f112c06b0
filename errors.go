package muon

import (
	"github.com/ralphmorton/muon/internal/wasm"
	"github.com/ralphmorton/muon/internal/wasm/interpreter"
)

// Errors embedders can usefully test for with errors.Is, re-exported
// from the internal packages that define them so callers never need
// to import internal/wasm or internal/wasm/interpreter directly.
var (
	// Decode errors.
	ErrInvalidModuleHeader = wasm.ErrInvalidModuleHeader
	ErrUnknownSection      = wasm.ErrUnknownSection
	ErrUnknownType         = wasm.ErrUnknownType
	ErrUnknownInstruction  = wasm.ErrUnknownInstruction
	ErrDuplicateSection    = wasm.ErrDuplicateSection
	ErrUnexpectedEOF       = wasm.ErrUnexpectedEOF

	// Link/construction errors.
	ErrNoSuchFuncType          = wasm.ErrNoSuchFuncType
	ErrNoSuchFunc              = wasm.ErrNoSuchFunc
	ErrNoSuchMemory            = wasm.ErrNoSuchMemory
	ErrMemoryAddressOutOfRange = wasm.ErrMemoryAddressOutOfRange

	// Runtime missing-prerequisite errors.
	ErrMissingTypeSection     = wasm.ErrMissingTypeSection
	ErrMissingFunctionSection = wasm.ErrMissingFunctionSection
	ErrMissingExportSection   = wasm.ErrMissingExportSection
	ErrMissingCodeSection     = wasm.ErrMissingCodeSection

	// Execution errors.
	ErrNoSuchExport  = interpreter.ErrNoSuchExport
	ErrNoSuchExtern  = interpreter.ErrNoSuchExtern
	ErrStackOverflow = interpreter.ErrStackOverflow
	ErrTypeMismatch  = interpreter.ErrTypeMismatch
)
