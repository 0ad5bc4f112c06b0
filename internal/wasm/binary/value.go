package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

func decodeValueType(c *reader) (wasm.ValueType, error) {
	b, err := c.takeU8()
	if err != nil {
		return 0, err
	}
	switch b {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return b, nil
	default:
		return 0, fmt.Errorf("%w: 0x%x", wasm.ErrUnknownType, b)
	}
}

func decodeValueTypes(c *reader) ([]wasm.ValueType, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	types := make([]wasm.ValueType, n)
	for i := range types {
		t, err := decodeValueType(c)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}
