package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// decodeInstruction reads one opcode byte and its operands, per
// spec.md §4.2's instruction table.
func decodeInstruction(c *reader) (wasm.Instruction, error) {
	op, err := c.takeU8()
	if err != nil {
		return wasm.Instruction{}, err
	}

	switch op {
	case wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeCall:
		idx, err := c.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Opcode: op, Index: idx}, nil

	case wasm.OpcodeI32Store:
		align, err := c.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, err
		}
		offset, err := c.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Opcode: op, MemArg: wasm.MemArg{Align: align, Offset: offset}}, nil

	case wasm.OpcodeI32Const:
		v, err := c.takeSLEB32()
		if err != nil {
			return wasm.Instruction{}, err
		}
		return wasm.Instruction{Opcode: op, I32Const: v}, nil

	case wasm.OpcodeI32Add, wasm.OpcodeEnd:
		return wasm.Instruction{Opcode: op}, nil

	default:
		return wasm.Instruction{}, fmt.Errorf("%w: 0x%x", wasm.ErrUnknownInstruction, op)
	}
}

// decodeInstructions reads instructions until (and including) the
// first End, as a function body's instruction stream always
// terminates with exactly one trailing End (spec.md §3).
func decodeInstructions(c *reader) ([]wasm.Instruction, error) {
	var ins []wasm.Instruction
	for {
		i, err := decodeInstruction(c)
		if err != nil {
			return nil, err
		}
		ins = append(ins, i)
		if i.Opcode == wasm.OpcodeEnd {
			return ins, nil
		}
	}
}
