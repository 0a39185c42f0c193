package hub

import (
	"context"
	"ctchen222/Connect-Four/internal/events"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/hub/types"
	"ctchen222/Connect-Four/internal/match"
	"ctchen222/Connect-Four/internal/repository"
	"ctchen222/Connect-Four/internal/room"
	"ctchen222/Connect-Four/internal/telemetry"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

// Hub accepts registered players, pairs them and runs one room per
// session. It owns every channel it is handed until the session ends.
type Hub struct {
	rules        game.Rules
	register     chan *types.RegistrationRequest
	matchManager *match.MatchManager

	sessions  repository.SessionRepository
	publisher events.Publisher
	metrics   *telemetry.Metrics
	botThink  time.Duration

	counter atomic.Int64

	mu     sync.Mutex
	rooms  map[string]*room.Room
	closed bool
	wg     sync.WaitGroup
	done   chan struct{}
}

type Option func(*Hub)

// WithSessionRepository sets where live sessions are tracked. Defaults to
// an in-memory repository.
func WithSessionRepository(repo repository.SessionRepository) Option {
	return func(h *Hub) { h.sessions = repo }
}

// WithPublisher sets where session events go. Defaults to nowhere.
func WithPublisher(p events.Publisher) Option {
	return func(h *Hub) { h.publisher = p }
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

// WithBotThinkTime sets how long bots pause before each move.
func WithBotThinkTime(d time.Duration) Option {
	return func(h *Hub) { h.botThink = d }
}

// NewHub creates a new hub.
func NewHub(rules game.Rules, opts ...Option) *Hub {
	h := &Hub{
		rules:     rules,
		register:  make(chan *types.RegistrationRequest),
		sessions:  repository.NewMemorySessionRepository(),
		publisher: events.NewNopPublisher(),
		rooms:     make(map[string]*room.Room),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.matchManager = match.NewMatchManager(match.WithFailureHandler(h.PairingFailed))
	return h
}

// Run starts the hub and blocks until ctx is done. On shutdown, players
// still waiting and the channels of every live session are closed, and
// Run returns once all session goroutines have finished.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	go h.matchManager.Run(ctx)
	go h.runMatchedPairs(ctx)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case req := <-h.register:
			if req.Mode == types.ModeBot {
				h.registerBotGame(ctx, req)
			} else {
				h.queuePlayerForMatchmaking(ctx, req)
			}
		}
	}
}

// runMatchedPairs starts a session for every pair the matchmaker emits.
// It runs apart from the registration loop so arrivals never wait on a
// session start.
func (h *Hub) runMatchedPairs(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case pair := <-h.matchManager.MatchedPair():
			h.startSession(ctx, pair[0], pair[1], types.ModeHuman)
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	h.closed = true
	for _, r := range h.rooms {
		for _, p := range r.Players {
			_ = p.Conn.Close()
		}
	}
	h.mu.Unlock()

	// A pair may have been matched after runMatchedPairs stopped. Once the
	// matchmaker is done nothing else lands in its buffer.
	<-h.matchManager.Done()
drain:
	for {
		select {
		case pair := <-h.matchManager.MatchedPair():
			_ = pair[0].Conn.Close()
			_ = pair[1].Conn.Close()
		default:
			break drain
		}
	}

	h.wg.Wait()
	slog.Info("Hub stopped")
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Sessions returns the repository tracking live sessions.
func (h *Hub) Sessions() repository.SessionRepository {
	return h.sessions
}

// Live returns the number of sessions currently running.
func (h *Hub) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
