package bot

import (
	"context"
	"ctchen222/Connect-Four/internal/game"
	"ctchen222/Connect-Four/internal/match"
	"ctchen222/Connect-Four/internal/player"
	"ctchen222/Connect-Four/internal/room"
	"ctchen222/Connect-Four/pkg/proto"
	"strings"
	"testing"
	"time"
)

func TestNewBotPlayer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewBotPlayer(ctx, DifficultyEasy, game.DefaultRules(), 0)
	defer p.Conn.Close()

	if !p.IsBot {
		t.Error("Expected IsBot to be true")
	}
	if !strings.HasPrefix(p.ID, "bot-") {
		t.Errorf("Expected bot id prefix, got %s", p.ID)
	}
	if p.Role != player.RoleUnassigned {
		t.Errorf("Expected no role before pairing, got %s", p.Role)
	}
}

func TestBotsPlayAFullSession(t *testing.T) {
	for _, pair := range [][2]string{
		{DifficultyEasy, DifficultyEasy},
		{DifficultyMedium, DifficultyHard},
		{DifficultyHard, DifficultyHard},
	} {
		t.Run(pair[0]+"_vs_"+pair[1], func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			first := NewBotPlayer(ctx, pair[0], game.DefaultRules(), 0)
			second := NewBotPlayer(ctx, pair[1], game.DefaultRules(), 0)
			defer first.Conn.Close()
			defer second.Conn.Close()

			if err := match.AssignRole(first, player.RoleFirst); err != nil {
				t.Fatalf("assign first: %v", err)
			}
			if err := match.AssignRole(second, player.RoleSecond); err != nil {
				t.Fatalf("assign second: %v", err)
			}
			if err := first.Conn.SendInt(proto.StartSignal); err != nil {
				t.Fatalf("start: %v", err)
			}

			r := room.NewRoom("bots", 1, first, second, game.DefaultRules())
			outcome, err := r.Run(ctx)
			if err != nil {
				t.Fatalf("session failed: %v", err)
			}
			if !outcome.Terminal() {
				t.Fatalf("Expected a terminal outcome, got %s", outcome)
			}
			if n := len(r.Moves()); n < 7 || n > 42 {
				t.Errorf("Unexpected number of moves %d", n)
			}
		})
	}
}

type fixedCalculator struct{ col int }

func (f fixedCalculator) CalculateNextColumn(*game.Board, game.Token, string) int { return f.col }

func TestBotRenderer_ThinkIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewBotRenderer(ctx, "bot-test", DifficultyEasy, time.Hour, fixedCalculator{col: 2})

	done := make(chan struct{})
	go func() {
		r.YourTurn(game.NewBoard(game.DefaultRules()))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("YourTurn did not return after cancel")
	}
}
