// Package binary implements the streaming decoder for the WebAssembly
// binary format subset described by spec.md §4.1-§4.4.
package binary

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ralphmorton/muon/internal/leb128"
	"github.com/ralphmorton/muon/internal/wasm"
)

// reader is the abstract byte source of spec.md §4.1: a cursor that
// can take a fixed number of bytes, peek one byte without consuming
// it, and decode the wire's fixed-width and LEB128 integer forms.
type reader struct {
	r *bufio.Reader
}

func newReader(r io.Reader) *reader {
	return &reader{r: bufio.NewReader(r)}
}

func (c *reader) take(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return buf, nil
}

// peekByte returns the next byte without consuming it, or ok=false at
// end of stream.
func (c *reader) peekByte() (byte, bool) {
	b, err := c.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (c *reader) takeU8() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return b, nil
}

func (c *reader) takeU32LE() (uint32, error) {
	buf, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

func (c *reader) takeULEB32() (uint32, error) {
	v, err := leb128.DecodeUint32(c.r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return v, nil
}

func (c *reader) takeSLEB32() (int32, error) {
	v, err := leb128.DecodeInt32(c.r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return v, nil
}

// takeName reads a length-prefixed UTF-8 string: a LEB128 u32 byte
// count followed by that many bytes.
func (c *reader) takeName() (string, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return "", err
	}
	buf, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// atEOF reports whether the reader has no more bytes available.
func (c *reader) atEOF() bool {
	_, err := c.r.Peek(1)
	return err != nil
}

// bufioReaderFromLimited wraps the next n bytes of c's underlying
// stream in a fresh *bufio.Reader, so a section payload decoder can
// only ever read within its own section's bounds.
func bufioReaderFromLimited(c *reader, n int64) *bufio.Reader {
	return bufio.NewReader(io.LimitReader(c.r, n))
}
