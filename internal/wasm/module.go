// Package wasm holds the decoded representation of a WebAssembly binary
// module: the data shapes internal/wasm/binary produces and
// internal/wasm/interpreter consumes.
package wasm

import "fmt"

// Index is a position in one of a module's index spaces (types,
// functions). The function index space is the concatenation of
// imported functions (in import order) followed by locally defined
// functions (in code order).
type Index = uint32

// ValueType is a value's numeric kind, as encoded on the wire.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

// ValueTypeName returns the Wasm text-format name of t, or "unknown".
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	}
	return "unknown"
}

// ExternType classifies an import or export. Only ExternTypeFunc is
// recognized by this runtime's decoder.
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// FuncType is a function signature: an ordered parameter list and an
// ordered result list.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

func (t *FuncType) String() string {
	return fmt.Sprintf("%s_%s", valueTypesString(t.Params), valueTypesString(t.Results))
}

func valueTypesString(types []ValueType) string {
	if len(types) == 0 {
		return "null"
	}
	s := ""
	for _, v := range types {
		s += ValueTypeName(v)
	}
	return s
}

// Import is a single entry of the import section. Only function
// imports (Type == ExternTypeFunc) are supported; any other Type is
// rejected at decode time.
type Import struct {
	Module   string
	Name     string
	Type     ExternType
	DescFunc Index // index into Module.TypeSection, valid when Type == ExternTypeFunc
}

// Export is a single entry of the export section. Only function
// exports (Type == ExternTypeFunc) are supported.
type Export struct {
	Name string
	Type ExternType
	Index Index // index into the function index space
}

// Local declares Count consecutive locals of Type inside a function
// body, immediately following the function's parameters.
type Local struct {
	Count uint32
	Type  ValueType
}

// Opcode identifies an instruction.
type Opcode = byte

const (
	OpcodeLocalGet Opcode = 0x20
	OpcodeLocalSet Opcode = 0x21
	OpcodeI32Store Opcode = 0x36
	OpcodeI32Const Opcode = 0x41
	OpcodeI32Add   Opcode = 0x6a
	OpcodeCall     Opcode = 0x10
	OpcodeEnd      Opcode = 0x0b
)

// MemArg is the alignment/offset pair carried by a memory instruction.
type MemArg struct {
	Align  uint32
	Offset uint32
}

// Instruction is one decoded instruction. Opcode determines which of
// the payload fields, if any, is meaningful; this is the native-Go
// discriminated union recommended for this subset (see spec.md §9).
type Instruction struct {
	Opcode     Opcode
	Index      Index  // LocalGet, LocalSet, Call
	I32Const   int32  // I32Const
	MemArg     MemArg // I32Store
}

// Code is one entry of the code section: a function body's local
// declarations and instruction stream. Instructions always ends with
// exactly one trailing End.
type Code struct {
	Locals       []Local
	Instructions []Instruction
}

// NumLocals returns the number of local variable slots declared by
// Locals (not including function parameters).
func (c *Code) NumLocals() int {
	n := 0
	for _, l := range c.Locals {
		n += int(l.Count)
	}
	return n
}

// MemoryType is a linear memory descriptor: a minimum size and an
// optional maximum, both in 64KiB pages.
type MemoryType struct {
	Min uint32
	Max *uint32 // nil when absent
}

// PageSize is the fixed size, in bytes, of one unit of linear memory.
const PageSize = 65536

// DataSegment describes bytes to be copied into a memory at
// instantiation time.
type DataSegment struct {
	MemoryIndex Index
	Offset      uint32
	Init        []byte
}

// Module is the aggregate result of decoding a Wasm binary. A nil
// section field means the section was absent from the binary; this is
// distinct from a non-nil, zero-length section.
type Module struct {
	Version uint32

	TypeSection     []*FuncType
	ImportSection   []*Import
	FunctionSection []Index // index into TypeSection, one per locally-defined function
	MemorySection   []*MemoryType
	ExportSection   map[string]*Export
	CodeSection     []*Code
	DataSection     []*DataSegment
}

// ImportFuncCount returns the number of function imports.
func (m *Module) ImportFuncCount() int {
	n := 0
	for _, imp := range m.ImportSection {
		if imp.Type == ExternTypeFunc {
			n++
		}
	}
	return n
}
