// Package leb128 implements the LEB128 variable-width integer encoding
// used throughout the WebAssembly binary format.
package leb128

import (
	"fmt"
	"io"
)

// maxVarintLen32/64 bound how many continuation bytes a well-formed
// encoding of a 32/64-bit quantity may use, so decoding can reject
// malformed streams instead of looping forever.
const (
	maxVarintLen32 = 5
	maxVarintLen64 = 10
)

// DecodeUint32 reads an unsigned LEB128-encoded uint32 from r.
func DecodeUint32(r io.Reader) (uint32, error) {
	v, err := decodeUnsigned(r, 32, maxVarintLen32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// DecodeUint64 reads an unsigned LEB128-encoded uint64 from r.
func DecodeUint64(r io.Reader) (uint64, error) {
	return decodeUnsigned(r, 64, maxVarintLen64)
}

// DecodeInt32 reads a signed LEB128-encoded int32 from r.
func DecodeInt32(r io.Reader) (int32, error) {
	v, err := decodeSigned(r, 32, maxVarintLen32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeInt64 reads a signed LEB128-encoded int64 from r.
func DecodeInt64(r io.Reader) (int64, error) {
	return decodeSigned(r, 64, maxVarintLen64)
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return b[0], nil
}

func decodeUnsigned(r io.Reader, size uint, maxLen int) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; ; i++ {
		if i >= maxLen {
			return 0, fmt.Errorf("leb128: uint%d overflows after %d bytes", size, maxLen)
		}
		b, err := readByte(r)
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if size < 64 && result>>size != 0 {
				return 0, fmt.Errorf("leb128: uint%d overflow", size)
			}
			return result, nil
		}
		shift += 7
	}
}

func decodeSigned(r io.Reader, size uint, maxLen int) (int64, error) {
	var result int64
	var shift uint
	var b byte
	var err error
	for i := 0; ; i++ {
		if i >= maxLen {
			return 0, fmt.Errorf("leb128: int%d overflows after %d bytes", size, maxLen)
		}
		b, err = readByte(r)
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign-extend from the final group's high data bit if width isn't
	// yet exhausted.
	if shift < 64 && (b&0x40) != 0 {
		result |= -1 << shift
	}
	if shift < size {
		return result, nil
	}
	// Validate that any bits beyond the target width are a consistent
	// sign extension.
	if size < 64 {
		sign := int64(-1) << size
		if result&sign != 0 && result&sign != sign {
			return 0, fmt.Errorf("leb128: int%d overflow", size)
		}
	}
	return result, nil
}

// EncodeUint32 returns the unsigned LEB128 encoding of v.
func EncodeUint32(v uint32) []byte {
	return encodeUnsigned(uint64(v))
}

// EncodeUint64 returns the unsigned LEB128 encoding of v.
func EncodeUint64(v uint64) []byte {
	return encodeUnsigned(v)
}

func encodeUnsigned(v uint64) []byte {
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

// EncodeInt32 returns the signed LEB128 encoding of v.
func EncodeInt32(v int32) []byte {
	return encodeSigned(int64(v))
}

// EncodeInt64 returns the signed LEB128 encoding of v.
func EncodeInt64(v int64) []byte {
	return encodeSigned(v)
}

func encodeSigned(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			out = append(out, b)
			return out
		}
		out = append(out, b|0x80)
	}
}
