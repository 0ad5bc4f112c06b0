// Package api defines the embedder-facing contract of the muon
// runtime: typed values and the host-function shape the runtime calls
// into for imports.
package api

import "fmt"

// ValueType is a value's numeric kind, using the same wire encoding as
// internal/wasm so embedders never need to import internal packages.
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

// Value is a tagged numeric value as defined by spec.md §3: exactly
// one of the four fields is meaningful, selected by Type.
type Value struct {
	Type ValueType

	i32 int32
	i64 int64
	f32 float32
	f64 float64
}

// I32 constructs an i32 Value.
func I32(v int32) Value { return Value{Type: ValueTypeI32, i32: v} }

// I64 constructs an i64 Value.
func I64(v int64) Value { return Value{Type: ValueTypeI64, i64: v} }

// F32 constructs an f32 Value.
func F32(v float32) Value { return Value{Type: ValueTypeF32, f32: v} }

// F64 constructs an f64 Value.
func F64(v float64) Value { return Value{Type: ValueTypeF64, f64: v} }

// ZeroValue returns the default ("zero of the type") Value for t, or
// the ok=false if t is not a recognized ValueType.
func ZeroValue(t ValueType) (Value, bool) {
	switch t {
	case ValueTypeI32:
		return I32(0), true
	case ValueTypeI64:
		return I64(0), true
	case ValueTypeF32:
		return F32(0), true
	case ValueTypeF64:
		return F64(0), true
	}
	return Value{}, false
}

// I32 returns the value's payload interpreted as i32, and whether Type
// was actually ValueTypeI32 — the "as_i32" accessor from spec.md §6.
func (v Value) I32() (int32, bool) {
	if v.Type != ValueTypeI32 {
		return 0, false
	}
	return v.i32, true
}

// I64 returns the value's payload interpreted as i64, and whether Type
// was actually ValueTypeI64.
func (v Value) I64() (int64, bool) {
	if v.Type != ValueTypeI64 {
		return 0, false
	}
	return v.i64, true
}

// F32 returns the value's payload interpreted as f32, and whether Type
// was actually ValueTypeF32.
func (v Value) F32() (float32, bool) {
	if v.Type != ValueTypeF32 {
		return 0, false
	}
	return v.f32, true
}

// F64 returns the value's payload interpreted as f64, and whether Type
// was actually ValueTypeF64.
func (v Value) F64() (float64, bool) {
	if v.Type != ValueTypeF64 {
		return 0, false
	}
	return v.f64, true
}

func (v Value) String() string {
	switch v.Type {
	case ValueTypeI32:
		return fmt.Sprintf("i32:%d", v.i32)
	case ValueTypeI64:
		return fmt.Sprintf("i64:%d", v.i64)
	case ValueTypeF32:
		return fmt.Sprintf("f32:%v", v.f32)
	case ValueTypeF64:
		return fmt.Sprintf("f64:%v", v.f64)
	default:
		return "invalid"
	}
}
