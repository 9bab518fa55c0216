package cmd

import (
	"fmt"
	"os"

	"github.com/Beastly713/matryoshka/pkg/engine"
	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/spf13/cobra"
)

var (
	extractOutPath string
	extractRawSeed bool
	extractAll     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [image] [seed...]",
	Short: "Recover a hidden payload",
	Long: `Extract recovers the payload hidden under the last seed of the chain,
replaying earlier levels along the way. With --all, every level's payload
is emitted in chain order instead of just the deepest one.

The payload is written to stdout unless -o is given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, seeds := args[0], args[1:]

		pm, err := imageio.Load(imagePath)
		if err != nil {
			return err
		}

		eng, err := engine.New(pm, seedChain(seeds), engine.Config{RawSeed: extractRawSeed})
		if err != nil {
			return err
		}

		var out []byte
		for i := 0; i < len(seeds); i++ {
			data, err := eng.Extract()
			if err != nil {
				return fmt.Errorf("extract failed at level %d: %w", i+1, err)
			}
			if extractAll {
				out = append(out, data...)
			} else {
				out = data
			}
			if i < len(seeds)-1 {
				if err := eng.Next(); err != nil {
					return err
				}
			}
		}

		if extractOutPath == "" {
			if _, err := os.Stdout.Write(out); err != nil {
				return err
			}
		} else {
			if err := os.WriteFile(extractOutPath, out, 0644); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
		}

		// Status goes to stderr so a stdout payload stays clean.
		fmt.Fprintf(os.Stderr, "%s recovered %d bytes from level %d\n", successColor("Done:"), len(out), eng.Level())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutPath, "output", "o", "", "File to write the payload to (default stdout)")
	extractCmd.Flags().BoolVar(&extractRawSeed, "raw-seed", false, "Use seeds directly as generator keys, skipping derivation")
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "Emit every level's payload in chain order")
}
