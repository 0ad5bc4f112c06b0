package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralphmorton/muon/internal/wasm"
)

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		exp   wasm.Instruction
	}{
		{"local.get", []byte{wasm.OpcodeLocalGet, 0x05}, wasm.Instruction{Opcode: wasm.OpcodeLocalGet, Index: 5}},
		{"local.set", []byte{wasm.OpcodeLocalSet, 0x02}, wasm.Instruction{Opcode: wasm.OpcodeLocalSet, Index: 2}},
		{"call", []byte{wasm.OpcodeCall, 0x01}, wasm.Instruction{Opcode: wasm.OpcodeCall, Index: 1}},
		{"i32.const positive", []byte{wasm.OpcodeI32Const, 0x05}, wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32Const: 5}},
		{"i32.const negative", []byte{wasm.OpcodeI32Const, 0x7f}, wasm.Instruction{Opcode: wasm.OpcodeI32Const, I32Const: -1}},
		{"i32.add", []byte{wasm.OpcodeI32Add}, wasm.Instruction{Opcode: wasm.OpcodeI32Add}},
		{"end", []byte{wasm.OpcodeEnd}, wasm.Instruction{Opcode: wasm.OpcodeEnd}},
		{
			"i32.store",
			[]byte{wasm.OpcodeI32Store, 0x02, 0x04},
			wasm.Instruction{Opcode: wasm.OpcodeI32Store, MemArg: wasm.MemArg{Align: 2, Offset: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newReader(bytesReader(tt.input))
			ins, err := decodeInstruction(c)
			require.NoError(t, err)
			require.Equal(t, tt.exp, ins)
		})
	}
}

func TestDecodeInstruction_unknownOpcode(t *testing.T) {
	c := newReader(bytesReader([]byte{0xff}))
	_, err := decodeInstruction(c)
	require.ErrorIs(t, err, wasm.ErrUnknownInstruction)
}

func TestDecodeInstructions_stopsAtEnd(t *testing.T) {
	input := []byte{
		wasm.OpcodeLocalGet, 0x00,
		wasm.OpcodeEnd,
		wasm.OpcodeI32Add, // trailing instruction; absent from the result only if the loop stops at End
	}
	c := newReader(bytesReader(input))
	ins, err := decodeInstructions(c)
	require.NoError(t, err)
	require.Equal(t, []wasm.Instruction{
		{Opcode: wasm.OpcodeLocalGet, Index: 0},
		{Opcode: wasm.OpcodeEnd},
	}, ins)
}
