package player

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
)

// TCPChannel speaks the integer protocol over a stream connection. Each
// value is one 4-byte big-endian write, so a peer sees it immediately.
type TCPChannel struct {
	conn net.Conn

	rmu  sync.Mutex
	rbuf [4]byte

	wmu  sync.Mutex
	wbuf [4]byte

	closeOnce sync.Once
	closeErr  error
}

// NewTCPChannel wraps conn. The channel owns conn from now on.
func NewTCPChannel(conn net.Conn) *TCPChannel {
	return &TCPChannel{conn: conn}
}

// SendInt writes value as a big-endian int32.
func (c *TCPChannel) SendInt(value int32) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	binary.BigEndian.PutUint32(c.wbuf[:], uint32(value))
	_, err := c.conn.Write(c.wbuf[:])
	return err
}

// ReceiveInt blocks until four bytes have arrived.
func (c *TCPChannel) ReceiveInt() (int32, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if _, err := io.ReadFull(c.conn, c.rbuf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(c.rbuf[:])), nil
}

// Close closes the underlying connection once.
func (c *TCPChannel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// RemoteAddr returns the peer address.
func (c *TCPChannel) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
