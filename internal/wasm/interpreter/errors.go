package interpreter

import "errors"

// Execution errors (spec.md §7 "Runtime missing-prerequisite errors" /
// "Execution errors").
var (
	ErrMissingLocal    = errors.New("missing local")
	ErrStackEmpty      = errors.New("operand stack empty")
	ErrFramesEmpty     = errors.New("frame stack empty")
	ErrNoSuchExport    = errors.New("no such export")
	ErrNoSuchExtern    = errors.New("no such extern")
	ErrNoSuchFunction  = errors.New("no such function")
	ErrStackOverflow   = errors.New("call stack overflow")
	ErrUnimplemented   = errors.New("instruction not implemented")
	ErrTypeMismatch    = errors.New("operand type mismatch")
)
