package binary

import "github.com/ralphmorton/muon/internal/wasm"

func decodeLocal(c *reader) (wasm.Local, error) {
	count, err := c.takeULEB32()
	if err != nil {
		return wasm.Local{}, err
	}
	t, err := decodeValueType(c)
	if err != nil {
		return wasm.Local{}, err
	}
	return wasm.Local{Count: count, Type: t}, nil
}

func decodeLocals(c *reader) ([]wasm.Local, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	locals := make([]wasm.Local, n)
	for i := range locals {
		l, err := decodeLocal(c)
		if err != nil {
			return nil, err
		}
		locals[i] = l
	}
	return locals, nil
}
