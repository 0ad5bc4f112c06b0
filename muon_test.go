package muon_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralphmorton/muon"
	"github.com/ralphmorton/muon/api"
	"github.com/ralphmorton/muon/internal/leb128"
	"github.com/ralphmorton/muon/internal/wasm/binary"
	"github.com/ralphmorton/muon/internal/wasm/interpreter"
)

// The helpers below hand-assemble raw module bytes the way
// internal/wasm/binary's own decoder tests do, so the scenarios below
// exercise the public API end to end exactly as an embedder would.

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func uleb(v uint32) []byte { return leb128.EncodeUint32(v) }
func sleb(v int32) []byte  { return leb128.EncodeInt32(v) }

func section(id byte, payload []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(payload)))...)
	return append(out, payload...)
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), []byte(s)...)
}

// typeSection encodes one func type per entry.
func typeSection(entries ...[2][]byte) []byte {
	payload := uleb(uint32(len(entries)))
	for _, e := range entries {
		payload = append(payload, 0x60)
		payload = append(payload, e[0]...) // params
		payload = append(payload, e[1]...) // results
	}
	return section(0x01, payload)
}

func valueTypes(types ...byte) []byte {
	out := uleb(uint32(len(types)))
	return append(out, types...)
}

func functionSection(typeIdxs ...uint32) []byte {
	payload := uleb(uint32(len(typeIdxs)))
	for _, t := range typeIdxs {
		payload = append(payload, uleb(t)...)
	}
	return section(0x03, payload)
}

func exportSection(entries map[string]uint32) []byte {
	payload := uleb(uint32(len(entries)))
	for n, idx := range entries {
		payload = append(payload, name(n)...)
		payload = append(payload, 0x00) // func kind
		payload = append(payload, uleb(idx)...)
	}
	return section(0x07, payload)
}

func importFuncSection(mod, item string, typeIdx uint32) []byte {
	payload := uleb(1)
	payload = append(payload, name(mod)...)
	payload = append(payload, name(item)...)
	payload = append(payload, 0x00) // func kind
	payload = append(payload, uleb(typeIdx)...)
	return section(0x02, payload)
}

func codeSection(bodies ...[]byte) []byte {
	payload := uleb(uint32(len(bodies)))
	for _, b := range bodies {
		payload = append(payload, uleb(uint32(len(b)))...)
		payload = append(payload, b...)
	}
	return section(0x0a, payload)
}

// body assembles a code entry with no locals and the given instruction bytes.
func body(instructions ...[]byte) []byte {
	out := uleb(0) // zero local-decl groups
	for _, ins := range instructions {
		out = append(out, ins...)
	}
	return out
}

func localGet(i uint32) []byte { return append([]byte{0x20}, uleb(i)...) }
func call(i uint32) []byte     { return append([]byte{0x10}, uleb(i)...) }

var i32Add = []byte{0x6a}
var end = []byte{0x0b}

func memorySection(min uint32) []byte {
	payload := uleb(1)
	payload = append(payload, 0x00) // no max
	payload = append(payload, uleb(min)...)
	return section(0x05, payload)
}

func dataSection(memIdx, offset uint32, init []byte) []byte {
	payload := uleb(1)
	payload = append(payload, uleb(memIdx)...)
	payload = append(payload, 0x41) // i32.const
	payload = append(payload, sleb(int32(offset))...)
	payload = append(payload, 0x0b) // end
	payload = append(payload, uleb(uint32(len(init)))...)
	payload = append(payload, init...)
	return section(0x0b, payload)
}

func assemble(sections ...[]byte) []byte {
	out := append([]byte{}, header()...)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

// addModuleBytes encodes scenario 1 from spec.md §8: add(i32, i32) -> i32.
func addModuleBytes() []byte {
	return assemble(
		typeSection([2][]byte{valueTypes(0x7f, 0x7f), valueTypes(0x7f)}),
		functionSection(0),
		exportSection(map[string]uint32{"add": 0}),
		codeSection(body(localGet(0), localGet(1), i32Add, end)),
	)
}

func TestAdd(t *testing.T) {
	r, err := muon.New(bytes.NewReader(addModuleBytes()), nil)
	require.NoError(t, err)

	result, err := r.Call("add", api.I32(1), api.I32(2))
	require.NoError(t, err)
	v, ok := result.I32()
	require.True(t, ok)
	require.Equal(t, int32(3), v)

	result, err = r.Call("add", api.I32(-1), api.I32(1))
	require.NoError(t, err)
	v, ok = result.I32()
	require.True(t, ok)
	require.Equal(t, int32(0), v)
}

// doublerModuleBytes encodes scenario 2: call_doubler self-calls a
// local function.
func doublerModuleBytes() []byte {
	return assemble(
		typeSection(
			[2][]byte{valueTypes(0x7f), valueTypes(0x7f)},
			[2][]byte{valueTypes(0x7f, 0x7f), valueTypes(0x7f)},
		),
		functionSection(0, 0),
		exportSection(map[string]uint32{"call_doubler": 0}),
		codeSection(
			body(localGet(0), call(1), end),
			body(localGet(0), localGet(0), i32Add, end),
		),
	)
}

func TestDoublerSelfCall(t *testing.T) {
	r, err := muon.New(bytes.NewReader(doublerModuleBytes()), nil)
	require.NoError(t, err)

	result, err := r.Call("call_doubler", api.I32(2))
	require.NoError(t, err)
	v, ok := result.I32()
	require.True(t, ok)
	require.Equal(t, int32(4), v)
}

// hostAddModuleBytes encodes scenario 3 and 5: an imported env.add,
// wrapped by an exported call_add.
func hostAddModuleBytes() []byte {
	return assemble(
		typeSection([2][]byte{valueTypes(0x7f), valueTypes(0x7f)}),
		importFuncSection("env", "add", 0),
		functionSection(0),
		exportSection(map[string]uint32{"call_add": 1}),
		codeSection(body(localGet(0), call(0), end)),
	)
}

func TestHostImport(t *testing.T) {
	externs := api.Externs{
		"env": {
			"add": func(args []api.Value) (*api.Value, error) {
				v, ok := args[0].I32()
				require.True(t, ok)
				r := api.I32(v + 1)
				return &r, nil
			},
		},
	}

	r, err := muon.New(bytes.NewReader(hostAddModuleBytes()), externs)
	require.NoError(t, err)

	result, err := r.Call("call_add", api.I32(2))
	require.NoError(t, err)
	v, ok := result.I32()
	require.True(t, ok)
	require.Equal(t, int32(3), v)
}

func TestUnknownExportResetsState(t *testing.T) {
	r, err := muon.New(bytes.NewReader(addModuleBytes()), nil)
	require.NoError(t, err)

	_, err = r.Call("nope")
	require.ErrorIs(t, err, muon.ErrNoSuchExport)

	result, err := r.Call("add", api.I32(5), api.I32(6))
	require.NoError(t, err)
	v, ok := result.I32()
	require.True(t, ok)
	require.Equal(t, int32(11), v)
}

func TestMissingImportYieldsNoSuchExtern(t *testing.T) {
	r, err := muon.New(bytes.NewReader(hostAddModuleBytes()), api.Externs{})
	require.NoError(t, err)

	_, err = r.Call("call_add", api.I32(2))
	require.ErrorIs(t, err, muon.ErrNoSuchExtern)
}

// TestDataSegmentInitialization exercises scenario 6 directly against
// the internal store-building step, since the public Runtime does not
// expose raw memory contents to embedders.
func TestDataSegmentInitialization(t *testing.T) {
	b := assemble(
		memorySection(1),
		exportSection(map[string]uint32{}),
		dataSection(0, 16, []byte{0xDE, 0xAD, 0xBE, 0xEF}),
	)

	m, err := binary.DecodeModule(bytes.NewReader(b))
	require.NoError(t, err)

	store, err := interpreter.BuildStore(m)
	require.NoError(t, err)
	require.Len(t, store.Memories, 1)
	require.Equal(t, 65536, len(store.Memories[0].Bytes))
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, store.Memories[0].Bytes[16:20])
}

func TestRuntimeOptions(t *testing.T) {
	r, err := muon.New(
		bytes.NewReader(addModuleBytes()),
		nil,
		muon.WithCallStackCeiling(128),
		muon.WithInitialStackCapacity(64),
	)
	require.NoError(t, err)

	result, err := r.Call("add", api.I32(4), api.I32(5))
	require.NoError(t, err)
	v, ok := result.I32()
	require.True(t, ok)
	require.Equal(t, int32(9), v)
}
