package cmd

import (
	"fmt"

	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/spf13/cobra"
)

var convertOutPath string

var convertCmd = &cobra.Command{
	Use:   "convert [image]",
	Short: "Re-encode a lossy image as a lossless PNG carrier",
	Long: `Convert decodes an image (typically a JPEG) and re-encodes it as PNG so
it can carry hidden data. A well-compressed JPEG converted this way makes
a good carrier. Output defaults to the input name with a .png extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := imageio.ConvertToPNG(args[0], convertOutPath)
		if err != nil {
			return err
		}
		fmt.Printf("%s converted %s -> %s\n", successColor("Done:"), args[0], out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutPath, "output", "o", "", "Output PNG path (default: input name with .png)")
}
