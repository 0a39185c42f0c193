package match

import (
	"context"
	apperr "ctchen222/Connect-Four/internal/errors"
	"ctchen222/Connect-Four/internal/player"
	"log/slog"
	"sync"
)

// MatchManager pairs players in arrival order. Each player is told its
// role as soon as it is queued: the first waiting player is PLAYER1, the
// next one PLAYER2, and the two are then emitted as a pair.
type MatchManager struct {
	mu              sync.Mutex
	waitingPlayers  []*player.Player
	addPlayerChan   chan *player.Player
	matchedPairChan chan [2]*player.Player
	onFailure       func(error)
	done            chan struct{}
}

type Option func(*MatchManager)

// WithFailureHandler registers fn to be called with every PairingError.
func WithFailureHandler(fn func(error)) Option {
	return func(m *MatchManager) { m.onFailure = fn }
}

func NewMatchManager(opts ...Option) *MatchManager {
	m := &MatchManager{
		waitingPlayers:  make([]*player.Player, 0),
		addPlayerChan:   make(chan *player.Player, 1),
		matchedPairChan: make(chan [2]*player.Player, 1),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run processes arrivals until ctx is done. Players still waiting at that
// point have their channels closed. Once Done is closed no further pair is
// emitted, though one may still sit in the MatchedPair buffer.
func (m *MatchManager) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case <-ctx.Done():
			m.releaseWaiting()
			return

		case p := <-m.addPlayerChan:
			m.enqueue(ctx, p)
		}
	}
}

// Done is closed once Run has returned.
func (m *MatchManager) Done() <-chan struct{} {
	return m.done
}

// AddPlayer hands p to the matchmaker. If ctx is done first, p's channel
// is closed instead.
func (m *MatchManager) AddPlayer(ctx context.Context, p *player.Player) {
	select {
	case m.addPlayerChan <- p:
	case <-ctx.Done():
		_ = p.Conn.Close()
	}
}

func (m *MatchManager) MatchedPair() <-chan [2]*player.Player {
	return m.matchedPairChan
}

// Waiting returns the number of queued players.
func (m *MatchManager) Waiting() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waitingPlayers)
}

// AssignRole fixes the player's role and sends the role value to the peer.
func AssignRole(p *player.Player, role player.Role) error {
	p.Role = role
	if err := p.Conn.SendInt(role.Wire()); err != nil {
		return &apperr.PairingError{Op: "assign", Addr: p.Addr, Err: err}
	}
	return nil
}

func (m *MatchManager) enqueue(ctx context.Context, p *player.Player) {
	m.mu.Lock()
	role := player.RoleFirst
	if len(m.waitingPlayers)%2 == 1 {
		role = player.RoleSecond
	}
	if err := AssignRole(p, role); err != nil {
		m.mu.Unlock()
		m.fail(p, err)
		return
	}
	m.waitingPlayers = append(m.waitingPlayers, p)
	slog.Info("Matchmaker: player queued", "player.id", p.ID, "player.addr", p.Addr, "player.role", role.String())
	m.mu.Unlock()

	m.tryMatchPlayers(ctx)
}

func (m *MatchManager) tryMatchPlayers(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.waitingPlayers) >= 2 {
		first := m.waitingPlayers[0]
		second := m.waitingPlayers[1]
		m.waitingPlayers = m.waitingPlayers[2:]

		select {
		case m.matchedPairChan <- [2]*player.Player{first, second}:
			slog.Info("Matchmaker: matched players", "first.id", first.ID, "second.id", second.ID)
		case <-ctx.Done():
			_ = first.Conn.Close()
			_ = second.Conn.Close()
		}
	}
}

// fail drops a single connection. Other queued players are unaffected.
func (m *MatchManager) fail(p *player.Player, err error) {
	slog.Warn("Matchmaker: dropping connection", "player.id", p.ID, "player.addr", p.Addr, "error", err)
	_ = p.Conn.Close()
	if m.onFailure != nil {
		m.onFailure(err)
	}
}

func (m *MatchManager) releaseWaiting() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.waitingPlayers {
		_ = p.Conn.Close()
	}
	m.waitingPlayers = nil

	for {
		select {
		case p := <-m.addPlayerChan:
			_ = p.Conn.Close()
		default:
			return
		}
	}
}
