package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/spf13/cobra"
)

var (
	hideOutPath string
	hidePayload string
	hideRawSeed bool
)

var hideCmd = &cobra.Command{
	Use:   "hide [image] [seed...]",
	Short: "Embed a payload under the last seed of a chain",
	Long: `Hide embeds a payload in the carrier image under the last seed given.
Earlier seeds are replayed first, so nesting a second payload means
repeating the chain prefix:

Example:
  matryoshka hide cover.png seed_0 -p diary.txt -o out.png
  matryoshka hide out.png seed_0 seed_1 -p deeper.txt -o out2.png

The payload is read from the file given with -p, or from stdin.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, seeds := args[0], args[1:]

		// 1. Read the payload
		var data []byte
		var err error
		if hidePayload == "" || hidePayload == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(hidePayload)
		}
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}

		// 2. Decode the carrier
		pm, err := imageio.Load(imagePath)
		if err != nil {
			return err
		}

		// 3. Walk to the deepest chain level
		eng, err := openAtDeepestLevel(pm, seeds, hideRawSeed)
		if err != nil {
			return err
		}

		// 4. Embed
		if err := eng.Hide(data); err != nil {
			return fmt.Errorf("hide failed at level %d: %w", eng.Level(), err)
		}

		// 5. Persist through a lossless encoder
		if err := imageio.Save(hideOutPath, pm); err != nil {
			return err
		}

		fmt.Printf("%s hid %d bytes at level %d in %s\n", successColor("Done:"), len(data), eng.Level(), hideOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hideCmd)

	hideCmd.Flags().StringVarP(&hideOutPath, "output", "o", "", "Stego image to write (png, bmp or tiff)")
	hideCmd.Flags().StringVarP(&hidePayload, "payload", "p", "", "Payload file ('-' or empty reads stdin)")
	hideCmd.Flags().BoolVar(&hideRawSeed, "raw-seed", false, "Use seeds directly as generator keys, skipping derivation")

	hideCmd.MarkFlagRequired("output")
}
