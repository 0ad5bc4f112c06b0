package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

func decodeMemoryType(c *reader) (*wasm.MemoryType, error) {
	flag, err := c.takeU8()
	if err != nil {
		return nil, err
	}
	min, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	mt := &wasm.MemoryType{Min: min}
	if flag != 0 {
		max, err := c.takeULEB32()
		if err != nil {
			return nil, err
		}
		mt.Max = &max
	}
	return mt, nil
}

func decodeMemorySection(c *reader) ([]*wasm.MemoryType, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	mems := make([]*wasm.MemoryType, n)
	for i := range mems {
		m, err := decodeMemoryType(c)
		if err != nil {
			return nil, fmt.Errorf("memory %d: %w", i, err)
		}
		mems[i] = m
	}
	return mems, nil
}
