package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"hale/internal/timestamp"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp [flags] literal",
	Short: "Parse a date-time literal",
	Long:  `Timestamp parses a literal like 20230312195905.1234-0700 and prints its fields`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTimestamp,
}

func init() {
	timestampCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type timestampPayload struct {
	Year        uint16  `json:"year"`
	Month       *uint8  `json:"month,omitempty"`
	Day         *uint8  `json:"day,omitempty"`
	Hour        *uint8  `json:"hour,omitempty"`
	Minute      *uint8  `json:"minute,omitempty"`
	Second      *uint8  `json:"second,omitempty"`
	Microsecond *uint32 `json:"microsecond,omitempty"`
	Offset      string  `json:"offset,omitempty"`
}

func runTimestamp(cmd *cobra.Command, args []string) error {
	ts, err := timestamp.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	switch format {
	case "pretty":
		renderTimestampPretty(cmd, ts)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(timestampJSON(ts))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderTimestampPretty(cmd *cobra.Command, ts timestamp.TimeStamp) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "year:        %d\n", ts.Year)
	if ts.Precision >= timestamp.Month {
		fmt.Fprintf(out, "month:       %d\n", ts.Month)
	}
	if ts.Precision >= timestamp.Day {
		fmt.Fprintf(out, "day:         %d\n", ts.Day)
	}
	if ts.Precision >= timestamp.Hour {
		fmt.Fprintf(out, "hour:        %d\n", ts.Hour)
	}
	if ts.Precision >= timestamp.Minute {
		fmt.Fprintf(out, "minute:      %d\n", ts.Minute)
	}
	if ts.Precision >= timestamp.Second {
		fmt.Fprintf(out, "second:      %d\n", ts.Second)
	}
	if ts.Precision >= timestamp.Subsecond {
		fmt.Fprintf(out, "microsecond: %d\n", ts.Microsecond)
	}
	if ts.HasOffset {
		fmt.Fprintf(out, "offset:      %s\n", ts.Offset)
	}
}

func timestampJSON(ts timestamp.TimeStamp) timestampPayload {
	p := timestampPayload{Year: ts.Year}
	if ts.Precision >= timestamp.Month {
		p.Month = &ts.Month
	}
	if ts.Precision >= timestamp.Day {
		p.Day = &ts.Day
	}
	if ts.Precision >= timestamp.Hour {
		p.Hour = &ts.Hour
	}
	if ts.Precision >= timestamp.Minute {
		p.Minute = &ts.Minute
	}
	if ts.Precision >= timestamp.Second {
		p.Second = &ts.Second
	}
	if ts.Precision >= timestamp.Subsecond {
		p.Microsecond = &ts.Microsecond
	}
	if ts.HasOffset {
		p.Offset = ts.Offset.String()
	}
	return p
}
