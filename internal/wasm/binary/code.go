package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// decodeCode reads one code-section entry: a body-size prefix (read
// and ignored, per spec.md §4.3), then locals then instructions.
func decodeCode(c *reader) (*wasm.Code, error) {
	if _, err := c.takeULEB32(); err != nil { // body size, ignored
		return nil, err
	}
	locals, err := decodeLocals(c)
	if err != nil {
		return nil, fmt.Errorf("%w: locals: %v", wasm.ErrInvalidCode, err)
	}
	ins, err := decodeInstructions(c)
	if err != nil {
		return nil, fmt.Errorf("%w: instructions: %v", wasm.ErrInvalidCode, err)
	}
	return &wasm.Code{Locals: locals, Instructions: ins}, nil
}

func decodeCodeSection(c *reader) ([]*wasm.Code, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidCodeSection, err)
	}
	codes := make([]*wasm.Code, n)
	for i := range codes {
		code, err := decodeCode(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidCodeSection, err)
		}
		codes[i] = code
	}
	return codes, nil
}
