package web

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes messages for one WebSocket connection.
type Codec interface {
	Name() string
	// MessageType is the WebSocket frame type the codec writes.
	MessageType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                    { return "json" }
func (jsonCodec) MessageType() int                { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                    { return "msgpack" }
func (msgpackCodec) MessageType() int                { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v any) ([]byte, error)   { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(b []byte, v any) error { return msgpack.Unmarshal(b, v) }

// CodecByName resolves the ?codec= query value. Empty selects JSON.
func CodecByName(name string) (Codec, bool) {
	switch name {
	case "", "json":
		return jsonCodec{}, true
	case "msgpack":
		return msgpackCodec{}, true
	}
	return nil, false
}

// codecForFrame picks the decoder for an incoming frame. Text frames are
// JSON and binary frames are msgpack, whatever the connection writes.
func codecForFrame(messageType int) Codec {
	if messageType == websocket.BinaryMessage {
		return msgpackCodec{}
	}
	return jsonCodec{}
}
