package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

func decodeImport(c *reader) (*wasm.Import, error) {
	mod, err := c.takeName()
	if err != nil {
		return nil, err
	}
	name, err := c.takeName()
	if err != nil {
		return nil, err
	}
	kind, err := c.takeU8()
	if err != nil {
		return nil, err
	}
	if kind != wasm.ExternTypeFunc {
		return nil, fmt.Errorf("%w: unsupported import kind 0x%x for %s.%s", wasm.ErrInvalidImportSection, kind, mod, name)
	}
	typeIdx, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	return &wasm.Import{Module: mod, Name: name, Type: wasm.ExternTypeFunc, DescFunc: typeIdx}, nil
}

func decodeImportSection(c *reader) ([]*wasm.Import, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidImportSection, err)
	}
	imports := make([]*wasm.Import, n)
	for i := range imports {
		imp, err := decodeImport(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidImportSection, err)
		}
		imports[i] = imp
	}
	return imports, nil
}
