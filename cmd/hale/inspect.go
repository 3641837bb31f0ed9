package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hale/internal/hl7fmt"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.hl7",
	Short: "Parse a message and show its structure",
	Long:  `Inspect parses a message and prints its segment/field/component structure`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "", "output format (pretty|json|msgpack)")
	inspectCmd.Flags().Bool("decode", false, "print escape-decoded values")
	inspectCmd.Flags().Int("max-width", 0, "truncate values to this display width (pretty format)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	msg, err := parseSource(cmd, args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		if format = loadConfig().Output.Format; format == "" {
			format = "pretty"
		}
	}

	switch format {
	case "pretty":
		decode, _ := cmd.Flags().GetBool("decode")
		maxWidth, _ := cmd.Flags().GetInt("max-width")
		hl7fmt.Tree(os.Stdout, msg, hl7fmt.TreeOpts{
			Color:         useColor(cmd, os.Stdout),
			Decode:        decode,
			MaxValueWidth: maxWidth,
		})
		return nil
	case "json":
		return hl7fmt.JSON(os.Stdout, msg)
	case "msgpack":
		return hl7fmt.Msgpack(os.Stdout, msg)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
