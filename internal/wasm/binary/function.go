package binary

import (
	"fmt"

	"github.com/ralphmorton/muon/internal/wasm"
)

// decodeFunctionSection reads the prefix-counted list of type indices
// that pairs one-to-one, in order, with the code section's entries.
func decodeFunctionSection(c *reader) ([]wasm.Index, error) {
	n, err := c.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidFunctionSection, err)
	}
	idxs := make([]wasm.Index, n)
	for i := range idxs {
		idx, err := c.takeULEB32()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidFunctionSection, err)
		}
		idxs[i] = idx
	}
	return idxs, nil
}
