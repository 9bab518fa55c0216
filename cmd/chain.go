package cmd

import (
	"fmt"

	"github.com/Beastly713/matryoshka/pkg/engine"
	"github.com/Beastly713/matryoshka/pkg/imageio"
)

func seedChain(seeds []string) [][]byte {
	chain := make([][]byte, len(seeds))
	for i, s := range seeds {
		chain[i] = []byte(s)
	}
	return chain
}

// openAtDeepestLevel builds an engine over pm and walks it to the last
// seed of the chain. Earlier levels are replayed by extracting them, so
// the deepest level sees exactly the pixels those levels consumed.
func openAtDeepestLevel(pm *imageio.Pixmap, seeds []string, raw bool) (*engine.Engine, error) {
	eng, err := engine.New(pm, seedChain(seeds), engine.Config{RawSeed: raw})
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(seeds)-1; i++ {
		if _, err := eng.Extract(); err != nil {
			return nil, fmt.Errorf("failed to replay level %d: %w", i+1, err)
		}
		if err := eng.Next(); err != nil {
			return nil, err
		}
	}
	return eng, nil
}
