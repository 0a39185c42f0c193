package player

import (
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/pkg/proto"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPChannel_BigEndianFrames(t *testing.T) {
	server, client := net.Pipe()
	ch := NewTCPChannel(server)
	defer ch.Close()
	defer client.Close()

	go func() {
		_ = ch.SendInt(proto.Continue)
		_ = ch.SendInt(-1)
	}()

	buf := make([]byte, 8)
	_, err := io.ReadFull(client, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 4, 0xff, 0xff, 0xff, 0xff}, buf)
}

func TestTCPChannel_RoundTrip(t *testing.T) {
	a, b := net.Pipe()
	left, right := NewTCPChannel(a), NewTCPChannel(b)
	defer left.Close()
	defer right.Close()

	values := []int32{proto.Player1, 0, 6, -42, 1 << 30}
	go func() {
		for _, v := range values {
			if err := left.SendInt(v); err != nil {
				return
			}
		}
	}()

	for _, want := range values {
		got, err := right.ReceiveInt()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "pipe", right.RemoteAddr())
}

func TestTCPChannel_ReceiveAfterPeerClose(t *testing.T) {
	a, b := net.Pipe()
	ch := NewTCPChannel(a)
	require.NoError(t, b.Close())

	_, err := ch.ReceiveInt()
	require.Error(t, err)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close(), "Close must be idempotent")
}

// fakeWebSocket is an in-memory WebSocketConn.
type fakeWebSocket struct {
	inbound  []wsFrame
	outbound []wsFrame
	closed   bool
}

type wsFrame struct {
	messageType int
	data        []byte
}

func (f *fakeWebSocket) WriteMessage(messageType int, data []byte) error {
	if f.closed {
		return websocket.ErrCloseSent
	}
	f.outbound = append(f.outbound, wsFrame{messageType, append([]byte(nil), data...)})
	return nil
}

func (f *fakeWebSocket) WriteControl(messageType int, data []byte, _ time.Time) error {
	return f.WriteMessage(messageType, data)
}

func (f *fakeWebSocket) ReadMessage() (int, []byte, error) {
	if len(f.inbound) == 0 {
		return 0, nil, io.EOF
	}
	fr := f.inbound[0]
	f.inbound = f.inbound[1:]
	return fr.messageType, fr.data, nil
}

func (f *fakeWebSocket) Close() error {
	f.closed = true
	return nil
}

func TestWebSocketChannel_SendAndReceive(t *testing.T) {
	ws := &fakeWebSocket{inbound: []wsFrame{{websocket.BinaryMessage, []byte{0, 0, 0, 3}}}}
	ch := NewWebSocketChannel(ws)

	require.NoError(t, ch.SendInt(proto.Player2))
	require.Len(t, ws.outbound, 1)
	assert.Equal(t, websocket.BinaryMessage, ws.outbound[0].messageType)
	assert.Equal(t, []byte{0, 0, 0, 2}, ws.outbound[0].data)

	got, err := ch.ReceiveInt()
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)
}

func TestWebSocketChannel_MalformedFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame wsFrame
	}{
		{"text message", wsFrame{websocket.TextMessage, []byte("3")}},
		{"short binary", wsFrame{websocket.BinaryMessage, []byte{0, 3}}},
		{"long binary", wsFrame{websocket.BinaryMessage, []byte{0, 0, 0, 0, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewWebSocketChannel(&fakeWebSocket{inbound: []wsFrame{tt.frame}})
			_, err := ch.ReceiveInt()
			require.Error(t, err)
			assert.True(t, apperr.IsProtocolViolation(err))
			assert.True(t, errors.Is(err, apperr.ErrMalformedFrame))
		})
	}
}

func TestWebSocketChannel_CloseSendsCloseFrame(t *testing.T) {
	ws := &fakeWebSocket{}
	ch := NewWebSocketChannel(ws)

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	require.Len(t, ws.outbound, 1)
	assert.Equal(t, websocket.CloseMessage, ws.outbound[0].messageType)
	assert.True(t, ws.closed)
}

func TestRoleMapping(t *testing.T) {
	assert.Equal(t, game.TokenA, RoleFirst.Token())
	assert.Equal(t, game.TokenB, RoleSecond.Token())
	assert.Equal(t, proto.Player1, RoleFirst.Wire())
	assert.Equal(t, proto.Player2, RoleSecond.Wire())
	assert.Equal(t, RoleFirst, RoleForToken(game.TokenA))
	assert.Equal(t, RoleSecond, RoleForToken(game.TokenB))

	role, err := RoleFromWire(proto.Player2)
	require.NoError(t, err)
	assert.Equal(t, RoleSecond, role)

	_, err = RoleFromWire(7)
	assert.True(t, apperr.IsProtocolViolation(err))
}
