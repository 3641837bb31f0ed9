package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"hale/internal/message"
	"hale/internal/parse"
)

// readSource reads the message text from a file, or stdin when path is
// "-". Latin-1 input is transcoded so span offsets stay character
// offsets for the whole single-byte range.
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch enc := inputEncoding(cmd); enc {
	case "", "utf8", "utf-8":
		return string(raw), nil
	case "latin1", "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("failed to transcode %s: %w", path, err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (expected utf8 or latin1)", enc)
	}
}

// parseSource reads and parses a message honoring --lenient.
func parseSource(cmd *cobra.Command, path string) (*message.Message, error) {
	src, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	if lenientMode(cmd) {
		return parse.MessageLenient(src)
	}
	return parse.Message(src)
}
