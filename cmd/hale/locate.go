package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"hale/internal/hl7fmt"
	"hale/internal/query"
)

var locateCmd = &cobra.Command{
	Use:   "locate [flags] offset file.hl7",
	Short: "Resolve a character offset to its structural path",
	Long: `Locate maps a character offset into the message onto the segment,
field, component and subcomponent containing it`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().Bool("caret", true, "show the segment line with a marker under the offset")
}

func runLocate(cmd *cobra.Command, args []string) error {
	offset, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad offset %q: %w", args[0], err)
	}

	msg, err := parseSource(cmd, args[1])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	cur := query.LocateCursor(msg, offset)
	if cur == nil {
		noteColor(cmd).Fprintf(os.Stderr, "offset %d is outside every segment\n", offset)
		return nil
	}

	if caret, _ := cmd.Flags().GetBool("caret"); caret {
		hl7fmt.Caret(cmd.OutOrStdout(), msg, cur, useColor(cmd, os.Stdout))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), cur)
	return nil
}
