package server

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec replaces the protojson codec so plain Go structs can travel as
// Connect messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// WithJSONCodec is the codec option shared by handlers and Connect clients.
func WithJSONCodec() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
