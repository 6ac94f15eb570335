package ws

import "github.com/sessionhub/sessionhub/core"

// MessageType classifies frames sent to WebSocket clients.
type MessageType string

const (
	// MsgEvent carries a single session transition event.
	MsgEvent MessageType = "event"
)

// Message is the wire envelope for all frames.
type Message struct {
	Type  MessageType `json:"type"`
	Event core.Event  `json:"event"`
}
