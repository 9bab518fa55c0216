package cmd

import (
	"fmt"

	"github.com/Beastly713/matryoshka/pkg/imageio"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image]",
	Short: "Report how many payload bytes an image can carry",
	Long: `Capacity prints the upper bound on payload size for a fresh carrier:
one byte needs three pixels, and one byte is withheld for the
end-of-payload sentinel. Nested levels share the same pixel pool, so
deeper levels have correspondingly less room.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pm, err := imageio.Load(args[0])
		if err != nil {
			return err
		}

		capacity := pm.Width()*pm.Height()/3 - 1
		if capacity < 0 {
			capacity = 0
		}
		fmt.Printf("%dx%d pixels: up to %d payload bytes at level 1\n", pm.Width(), pm.Height(), capacity)
		if capacity == 0 {
			fmt.Printf("%s carrier is too small to hold any payload\n", warnColor("Warning:"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
