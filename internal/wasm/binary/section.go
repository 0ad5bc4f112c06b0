package binary

import (
	"fmt"
	"io"

	"github.com/ralphmorton/muon/internal/wasm"
)

// Section IDs, per spec.md §4.3.
const (
	sectionIDCustom   = 0x00
	sectionIDType     = 0x01
	sectionIDImport   = 0x02
	sectionIDFunction = 0x03
	sectionIDMemory   = 0x05
	sectionIDExport   = 0x07
	sectionIDCode     = 0x0a
	sectionIDData     = 0x0b
)

// decodeSection reads one section header (id, length) and dispatches
// to the matching payload decoder, writing the result into m. It
// returns the section ID read, so the caller can enforce "at most
// once per section".
func decodeSection(c *reader, m *wasm.Module) (byte, error) {
	id, err := c.takeU8()
	if err != nil {
		return 0, err
	}

	size, err := c.takeULEB32()
	if err != nil {
		return 0, err
	}

	// The section length bounds the payload reader: custom sections are
	// skipped by it, typed payload decoders cannot read past it, and any
	// bytes they leave unread are drained below.
	payload := &reader{r: bufioReaderFromLimited(c, int64(size))}

	switch id {
	case sectionIDCustom:
		if _, err := io.CopyN(io.Discard, payload.r, int64(size)); err != nil {
			return 0, fmt.Errorf("section custom: %w", err)
		}
	case sectionIDType:
		types, err := decodeTypeSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section type: %w", err)
		}
		m.TypeSection = types
	case sectionIDImport:
		imports, err := decodeImportSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section import: %w", err)
		}
		m.ImportSection = imports
	case sectionIDFunction:
		idxs, err := decodeFunctionSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section function: %w", err)
		}
		m.FunctionSection = idxs
	case sectionIDMemory:
		mems, err := decodeMemorySection(payload)
		if err != nil {
			return 0, fmt.Errorf("section memory: %w", err)
		}
		m.MemorySection = mems
	case sectionIDExport:
		exports, err := decodeExportSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section export: %w", err)
		}
		m.ExportSection = exports
	case sectionIDCode:
		codes, err := decodeCodeSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section code: %w", err)
		}
		m.CodeSection = codes
	case sectionIDData:
		data, err := decodeDataSection(payload)
		if err != nil {
			return 0, fmt.Errorf("section data: %w", err)
		}
		m.DataSection = data
	default:
		return 0, fmt.Errorf("%w: id 0x%x", wasm.ErrUnknownSection, id)
	}

	// Drain any bytes the payload decoder didn't consume, so a
	// section that decodes short doesn't desynchronize the cursor for
	// whatever follows (the length prefix exists for exactly this
	// skip-purpose, per spec.md §4.3).
	io.Copy(io.Discard, payload.r) //nolint:errcheck

	return id, nil
}
