package binary

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ralphmorton/muon/internal/wasm"
)

// Magic is the 4-byte WebAssembly binary header: the string "\0asm".
var Magic = []byte{0x00, 0x61, 0x73, 0x6d}

const expectedVersion = 1

// DecodeModule decodes r as a WebAssembly binary module, per spec.md
// §4.4. It consumes sections until end of stream; it does not require
// the presence of any particular section (spec.md §3 "the absence of
// a section is semantically distinct from an empty section").
func DecodeModule(r io.Reader) (*wasm.Module, error) {
	c := newReader(r)

	magic, err := c.take(4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidModuleHeader, err)
	}
	if !bytes.Equal(magic, Magic) {
		return nil, fmt.Errorf("%w: bad magic number", wasm.ErrInvalidModuleHeader)
	}

	version, err := c.takeU32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidModuleHeader, err)
	}
	if version != expectedVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", wasm.ErrInvalidModuleHeader, version)
	}

	m := &wasm.Module{Version: version}

	seen := map[byte]bool{}
	for !c.atEOF() {
		id, err := decodeSection(c, m)
		if err != nil {
			return nil, err
		}
		if id != sectionIDCustom {
			if seen[id] {
				return nil, fmt.Errorf("%w: id 0x%x", wasm.ErrDuplicateSection, id)
			}
			seen[id] = true
		}
	}

	return m, nil
}
