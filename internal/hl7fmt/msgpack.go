package hl7fmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"hale/internal/message"
)

// Msgpack writes the message dump in msgpack framing, for piping into
// downstream tools without re-parsing the wire text.
func Msgpack(w io.Writer, msg *message.Message) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(Dump(msg))
}
