package bot

import (
	"context"
	"ctchen222/Connect-Four/internal/client"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/player"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
)

// MoveCalculator chooses a column for token on board.
type MoveCalculator interface {
	CalculateNextColumn(board *game.Board, token game.Token, difficulty string) int
}

// BotRenderer plays a client.Client automatically: every time the bot is
// asked for a column it thinks for a moment and selects one.
type BotRenderer struct {
	ctx        context.Context
	playerID   string
	difficulty string
	think      time.Duration
	calc       MoveCalculator
	client     *client.Client
	token      game.Token
}

// NewBotRenderer creates a renderer for a bot. Attach it to a client with
// Bind before the client starts playing.
func NewBotRenderer(ctx context.Context, playerID, difficulty string, think time.Duration, calc MoveCalculator) *BotRenderer {
	if calc == nil {
		calc = &BotMoveCalculator{}
	}
	return &BotRenderer{
		ctx:        ctx,
		playerID:   playerID,
		difficulty: difficulty,
		think:      think,
		calc:       calc,
	}
}

// Bind sets the client the renderer selects columns on.
func (b *BotRenderer) Bind(c *client.Client) {
	b.client = c
}

func (b *BotRenderer) Assigned(role player.Role) {
	b.token = role.Token()
	slog.DebugContext(b.ctx, "Bot assigned role", "player.id", b.playerID, "player.role", role.String())
}

func (b *BotRenderer) Started() {}

func (b *BotRenderer) Placed(game.Move) {}

func (b *BotRenderer) Status(int32) {}

func (b *BotRenderer) Finished(o game.Outcome) {
	slog.DebugContext(b.ctx, "Bot finished", "player.id", b.playerID, "outcome", o.String())
}

func (b *BotRenderer) YourTurn(board *game.Board) {
	if b.think > 0 {
		t := time.NewTimer(b.think)
		select {
		case <-t.C:
		case <-b.ctx.Done():
			t.Stop()
			return
		}
	}

	col := b.calc.CalculateNextColumn(board, b.token, b.difficulty)
	if col < 0 {
		return
	}
	if err := b.client.Select(col); err != nil {
		slog.WarnContext(b.ctx, "Bot selection rejected", "player.id", b.playerID, "move.column", col, "error", err)
	}
}

// NewBotPlayer creates a player backed by an in-process bot. The bot
// speaks the integer protocol over one end of a net.Pipe; the returned
// player holds the other end. The bot goroutine exits when the session
// ends or the player's channel is closed.
func NewBotPlayer(ctx context.Context, difficulty string, rules game.Rules, think time.Duration) *player.Player {
	botID := "bot-" + uuid.New().String()[:8]

	serverEnd, botEnd := net.Pipe()
	botConn := player.NewTCPChannel(botEnd)

	renderer := NewBotRenderer(ctx, botID, difficulty, think, nil)
	c := client.New(botConn, rules, renderer)
	renderer.Bind(c)

	go func() {
		defer botConn.Close()
		if _, err := c.Play(ctx); err != nil {
			slog.DebugContext(ctx, "Bot stopped", "player.id", botID, "error", err)
		}
	}()

	p := player.NewPlayer(botID, "bot", player.NewTCPChannel(serverEnd))
	p.IsBot = true
	return p
}
