package cmd

import (
	"fmt"

	"github.com/Beastly713/matryoshka/pkg/engine"
	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/spf13/cobra"
)

var (
	coverageOutPath string
	coverageBytes   int
	coverageRawSeed bool
)

var coverageCmd = &cobra.Command{
	Use:   "coverage [image] [seed...]",
	Short: "Visualise which pixels each chain level would touch",
	Long: `Coverage runs the engine in test mode: instead of encoding data, every
pixel a level would visit is painted with that level's marker colour
(red, green, blue, yellow, magenta, cyan, cycling). Each level simulates
a payload of --bytes bytes. Levels never share a pixel, so the marker
sets are disjoint by construction.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, seeds := args[0], args[1:]

		pm, err := imageio.Load(imagePath)
		if err != nil {
			return err
		}

		eng, err := engine.New(pm, seedChain(seeds), engine.Config{RawSeed: coverageRawSeed, TestMode: true})
		if err != nil {
			return err
		}

		payload := make([]byte, coverageBytes)
		for i := 0; i < len(seeds); i++ {
			if err := eng.Hide(payload); err != nil {
				return fmt.Errorf("coverage failed at level %d: %w", i+1, err)
			}
			marker := engine.Marker(i + 1)
			fmt.Printf("level %d: %d pixels marked (%d,%d,%d)\n", i+1, 3*(coverageBytes+1), marker.R, marker.G, marker.B)
			if i < len(seeds)-1 {
				if err := eng.Next(); err != nil {
					return err
				}
			}
		}

		if err := imageio.Save(coverageOutPath, pm); err != nil {
			return err
		}

		fmt.Printf("%s coverage map written to %s\n", successColor("Done:"), coverageOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().StringVarP(&coverageOutPath, "output", "o", "", "Image to write the coverage map to (png, bmp or tiff)")
	coverageCmd.Flags().IntVarP(&coverageBytes, "bytes", "b", 64, "Simulated payload size per level")
	coverageCmd.Flags().BoolVar(&coverageRawSeed, "raw-seed", false, "Use seeds directly as generator keys, skipping derivation")

	coverageCmd.MarkFlagRequired("output")
}
