package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "matryoshka",
	Short: "Hide layered payloads inside lossless images",
	Long: `Matryoshka embeds byte payloads in the pixel data of a lossless image.
A seeded generator picks which pixels carry data, writes use the
LSB-matching rule, and independent payloads can be nested in one carrier
under a chain of seeds: revealing the first k seeds discloses only the
first k payloads.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
