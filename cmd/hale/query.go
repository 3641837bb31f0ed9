package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hale/internal/message"
	"hale/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] expression file.hl7",
	Short: "Resolve a location expression against a message",
	Long: `Query resolves a dotted location expression such as PID.5.1 or
IN2[2].4 and prints the value of the node it names`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Bool("decode", false, "print the escape-decoded value")
	queryCmd.Flags().Bool("span", false, "print the node's source span")
}

func runQuery(cmd *cobra.Command, args []string) error {
	q, err := query.Parse(args[0])
	if err != nil {
		return fmt.Errorf("bad expression: %w", err)
	}

	msg, err := parseSource(cmd, args[1])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	node := query.Resolve(msg, q)
	if node == nil {
		// A well-formed expression that matches nothing is not an
		// error; stay quiet on stdout so pipelines see empty output.
		noteColor(cmd).Fprintf(os.Stderr, "no match for %s\n", q)
		return nil
	}

	value := node.RawValue()
	if decode, _ := cmd.Flags().GetBool("decode"); decode {
		value = message.DecodedValue(node, msg.Separators)
	}
	if withSpan, _ := cmd.Flags().GetBool("span"); withSpan {
		b := node.Bounds()
		fmt.Fprintf(cmd.OutOrStdout(), "%d..%d %s\n", b.Start, b.End, value)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
