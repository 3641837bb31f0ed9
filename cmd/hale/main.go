package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hale/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hale",
	Short: "Structural toolkit for pipe-delimited clinical messages",
	Long:  `Hale parses, queries and builds pipe-and-delimiter clinical messages`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(timestampCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("lenient", false, "accept \\n and \\r\\n segment terminators")
	rootCmd.PersistentFlags().String("encoding", "", "input encoding (utf8|latin1)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
