package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// decodeConstExprOffset decodes the constant-expression form this
// subset supports for a data segment's offset: i32.const <n>; end
// (spec.md §4.2 "Segment").
func decodeConstExprOffset(c *reader) (uint32, error) {
	op, err := c.takeU8()
	if err != nil {
		return 0, err
	}
	if op != wasm.OpcodeI32Const {
		return 0, fmt.Errorf("unsupported constant expression opcode 0x%x", op)
	}
	offset, err := c.takeSLEB32()
	if err != nil {
		return 0, err
	}
	end, err := c.takeU8()
	if err != nil {
		return 0, err
	}
	if end != wasm.OpcodeEnd {
		return 0, fmt.Errorf("constant expression missing terminating end, got 0x%x", end)
	}
	return uint32(offset), nil
}

func decodeDataSegment(c *reader) (*wasm.DataSegment, error) {
	memIdx, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	offset, err := decodeConstExprOffset(c)
	if err != nil {
		return nil, err
	}
	n, err := c.takeULEB32()
	if err != nil {
		return nil, err
	}
	init, err := c.take(int(n))
	if err != nil {
		return nil, err
	}
	return &wasm.DataSegment{MemoryIndex: memIdx, Offset: offset, Init: init}, nil
}

func decodeDataSection(c *reader) ([]*wasm.DataSegment, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("invalid data section: %w", err)
	}
	segs := make([]*wasm.DataSegment, n)
	for i := range segs {
		s, err := decodeDataSegment(c)
		if err != nil {
			return nil, fmt.Errorf("invalid data section: segment %d: %w", i, err)
		}
		segs[i] = s
	}
	return segs, nil
}
