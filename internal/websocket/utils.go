package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Writer serializes all writes to one connection. gorilla/websocket allows
// at most one concurrent writer per Conn, so every goroutine that sends on
// a connection must share the same Writer.
type Writer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWriter wraps a connection for concurrent use by multiple senders.
func NewWriter(conn *websocket.Conn) *Writer {
	return &Writer{conn: conn}
}

// WriteTyped sends a strongly-typed payload over the WebSocket.
func (w *Writer) WriteTyped(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.conn.WriteJSON(v)
}

// WriteRaw forwards an already-encoded JSON message over the WebSocket.
// Used to relay Redis stream payloads without a decode/encode round trip.
func (w *Writer) WriteRaw(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func (w *Writer) WriteError(errMsg string) error {
	return w.WriteTyped(ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	return conn.ReadJSON(v)
}
