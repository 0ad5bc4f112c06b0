package binary

import "bytes"

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// section wraps a pre-encoded section payload with its id and LEB128
// length prefix, for hand-assembling test inputs the way
// internal/wasm/binary/decoder_test.go builds them in the teacher.
func section(id byte, payload []byte) []byte {
	out := []byte{id}
	out = append(out, encodeULEB32(uint32(len(payload)))...)
	return append(out, payload...)
}

func encodeULEB32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}
