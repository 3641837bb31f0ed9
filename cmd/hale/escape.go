package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hale/internal/message"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [text]",
	Short: "Replace escape sequences with their literal characters",
	Long: `Decode translates escape sequences such as \F\ and \X0D\ into the
characters they stand for. Reads stdin when no argument is given`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEscape(cmd, args, message.Separators.Decode)
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Replace separator characters with escape sequences",
	Long: `Encode translates literal separator and control characters into
their escape sequences. Reads stdin when no argument is given`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEscape(cmd, args, message.Separators.Encode)
	},
}

func runEscape(cmd *cobra.Command, args []string, translate func(message.Separators, string) string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), translate(message.DefaultSeparators(), text))
	return nil
}
