// Command libris runs the smart library server: a catalogued
// collection of PDF books with an AI assistant grounded in the
// catalogue contents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Smart library server",
	Long: `Libris manages a digital book collection: PDF uploads with
optional cover images, substring search, and an AI assistant grounded
in the catalogue contents.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "libris.toml", "path to the TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
