package player

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"encoding/binary"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeTimeout = time.Second

// WebSocketConn abstracts the gorilla websocket connection.
type WebSocketConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// WebSocketChannel carries the integer protocol over a websocket. Every
// value travels as one binary message of exactly four bytes.
type WebSocketChannel struct {
	conn WebSocketConn

	wmu       sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// NewWebSocketChannel wraps conn. The channel owns conn from now on.
func NewWebSocketChannel(conn WebSocketConn) *WebSocketChannel {
	return &WebSocketChannel{conn: conn}
}

// SendInt writes value as a 4-byte binary message.
func (c *WebSocketChannel) SendInt(value int32) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(value))
	return c.conn.WriteMessage(websocket.BinaryMessage, buf[:])
}

// ReceiveInt reads the next message. Anything but a 4-byte binary
// message is a protocol violation.
func (c *WebSocketChannel) ReceiveInt() (int32, error) {
	messageType, data, err := c.conn.ReadMessage()
	if err != nil {
		return 0, err
	}
	if messageType != websocket.BinaryMessage || len(data) != 4 {
		return 0, &apperr.ProtocolError{Op: "frame", Value: len(data), Err: apperr.ErrMalformedFrame}
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

// Close sends a close frame on a best-effort basis and closes the socket.
func (c *WebSocketChannel) Close() error {
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session over"),
			time.Now().Add(closeTimeout))
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
