package server

import (
	"context"
	"ctchen222/Connect-Four/internal/api/controller"
	"ctchen222/Connect-Four/internal/api/service"
	"ctchen222/Connect-Four/internal/bot"
	"ctchen222/Connect-Four/internal/client"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/hub"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/internal/repository"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// firstOpen always picks the leftmost open column.
type firstOpen struct{}

func (firstOpen) CalculateNextColumn(b *game.Board, _ game.Token, _ string) int {
	for c := 0; c < b.Columns(); c++ {
		if _, ok := b.LowestOpenRow(c); ok {
			return c
		}
	}
	return -1
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func newTestServer(t *testing.T, repo repository.SessionRepository) (*Server, *hub.Hub) {
	t.Helper()
	h := hub.NewHub(game.DefaultRules(), hub.WithSessionRepository(repo))
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-h.Done()
	})
	return NewServer(h, controller.NewSessionController(service.NewSessionService(repo))), h
}

func get(t *testing.T, handler http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t, repository.NewMemorySessionRepository())

	rec, env := get(t, srv.Engine(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok","live_sessions":0}`, string(env.Extras))
}

func TestServer_WebSocketRejectsBadQuery(t *testing.T) {
	srv, _ := newTestServer(t, repository.NewMemorySessionRepository())

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"unknown mode", "/ws?mode=robot", "mode"},
		{"unknown difficulty", "/ws?mode=bot&difficulty=impossible", "difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, srv.Engine(), tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, string(env.Extras), tt.field+": must satisfy oneof")
		})
	}
}

func TestServer_ListSessions(t *testing.T) {
	repo := repository.NewMemorySessionRepository()
	require.NoError(t, repo.Create(context.Background(), repository.SessionRecord{
		ID:         "s-1",
		Number:     1,
		Mode:       "human",
		FirstAddr:  "10.0.0.1:5000",
		SecondAddr: "10.0.0.2:5000",
		Board:      game.NewBoard(game.DefaultRules()).String(),
		Status:     repository.StatusInProgress,
		StartedAt:  time.Now(),
	}))
	srv, _ := newTestServer(t, repo)

	rec, env := get(t, srv.Engine(), "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count int `json:"count"`
		List  []struct {
			ID        string `json:"id"`
			FirstAddr string `json:"first_addr"`
			Status    string `json:"status"`
		} `json:"list"`
	}
	require.NoError(t, json.Unmarshal(env.Extras, &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "s-1", list.List[0].ID)
	assert.Equal(t, "10.0.0.1:5000", list.List[0].FirstAddr)
	assert.Equal(t, repository.StatusInProgress, list.List[0].Status)

	rec, env = get(t, srv.Engine(), "/api/sessions/s-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = get(t, srv.Engine(), "/api/sessions/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func playAsPeer(ctx context.Context, ch player.Channel) (game.Outcome, error) {
	r := bot.NewBotRenderer(ctx, "peer", bot.DifficultyEasy, 0, firstOpen{})
	c := client.New(ch, game.DefaultRules(), r)
	r.Bind(c)
	defer ch.Close()
	return c.Play(ctx)
}

func TestServer_WebSocketBotSession(t *testing.T) {
	srv, _ := newTestServer(t, repository.NewMemorySessionRepository())
	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?mode=bot&difficulty=medium"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	outcome, err := playAsPeer(ctx, player.NewWebSocketChannel(conn))
	require.NoError(t, err)
	assert.True(t, outcome.Terminal())
}

func TestListener_PairsTCPPeers(t *testing.T) {
	_, h := newTestServer(t, repository.NewMemorySessionRepository())

	l, err := Listen("127.0.0.1:0", h)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- l.Serve(ctx) }()

	peerCtx, peerCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer peerCancel()

	type result struct {
		outcome game.Outcome
		err     error
	}
	results := make(chan result, 2)
	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", l.Addr().String())
		require.NoError(t, err)
		go func() {
			o, err := playAsPeer(peerCtx, player.NewTCPChannel(conn))
			results <- result{o, err}
		}()
	}

	for i := 0; i < 2; i++ {
		select {
		case res := <-results:
			require.NoError(t, res.err)
			assert.Equal(t, game.Outcome{Kind: game.Win, Winner: game.TokenA}, res.outcome)
		case <-peerCtx.Done():
			t.Fatal("peers did not finish")
		}
	}

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
