package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

func decodeExport(c *reader) (*wasm.Export, error) {
	name, err := c.takeName()
	if err != nil {
		return nil, err
	}
	kind, err := c.takeU8()
	if err != nil {
		return nil, err
	}
	if kind != wasm.ExternTypeFunc {
		return nil, fmt.Errorf("%w: unsupported export kind 0x%x for %s", wasm.ErrInvalidExportSection, kind, name)
	}
	idx, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	return &wasm.Export{Name: name, Type: wasm.ExternTypeFunc, Index: idx}, nil
}

func decodeExportSection(c *reader) (map[string]*wasm.Export, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidExportSection, err)
	}
	exports := make(map[string]*wasm.Export, n)
	for i := uint32(0); i < n; i++ {
		exp, err := decodeExport(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidExportSection, err)
		}
		if _, dup := exports[exp.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate export name %q", wasm.ErrInvalidExportSection, exp.Name)
		}
		exports[exp.Name] = exp
	}
	return exports, nil
}
