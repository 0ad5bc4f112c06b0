package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// funcTypeForm is the leading byte of every function type, per
// spec.md §3.
const funcTypeForm = 0x60

func decodeFuncType(c *reader) (*wasm.FuncType, error) {
	form, err := c.takeU8()
	if err != nil {
		return nil, err
	}
	if form != funcTypeForm {
		return nil, fmt.Errorf("%w: expected function type form 0x60, got 0x%x", wasm.ErrInvalidTypeSection, form)
	}

	params, err := decodeValueTypes(c)
	if err != nil {
		return nil, fmt.Errorf("%w: params: %v", wasm.ErrInvalidTypeSection, err)
	}
	results, err := decodeValueTypes(c)
	if err != nil {
		return nil, fmt.Errorf("%w: results: %v", wasm.ErrInvalidTypeSection, err)
	}
	return &wasm.FuncType{Params: params, Results: results}, nil
}

func decodeTypeSection(c *reader) ([]*wasm.FuncType, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidTypeSection, err)
	}
	types := make([]*wasm.FuncType, n)
	for i := range types {
		t, err := decodeFuncType(c)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}
