package bot

import (
	"ctchen222/Connect-Four/internal/game"
	"testing"
)

func mustBoard(t *testing.T, rows ...string) *game.Board {
	t.Helper()
	b, err := game.BoardFromRows(game.DefaultRules(), rows...)
	if err != nil {
		t.Fatalf("bad board: %v", err)
	}
	return b
}

func TestFindWinningColumn(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		token     game.Token
		wantCol   int
		wantFound bool
	}{
		{
			name:  "No winning move - empty board",
			rows:  []string{".......", ".......", ".......", ".......", ".......", "......."},
			token: game.TokenA, wantCol: -1, wantFound: false,
		},
		{
			name:  "X can win - bottom row",
			rows:  []string{".......", ".......", ".......", ".......", "OOO....", "XXX...."},
			token: game.TokenA, wantCol: 3, wantFound: true,
		},
		{
			name:  "O can win - column",
			rows:  []string{".......", ".......", ".......", ".....O.", "X....O.", "XX...O."},
			token: game.TokenB, wantCol: 5, wantFound: true,
		},
		{
			name:  "X can win - diagonal",
			rows:  []string{".......", ".......", ".......", "..XO...", ".XOO...", "XOOX..."},
			token: game.TokenA, wantCol: 3, wantFound: true,
		},
		{
			name:  "Threat above an empty cell is not playable yet",
			rows:  []string{".......", ".......", ".......", ".......", "OOO....", "XXO.X.X"},
			token: game.TokenB, wantCol: -1, wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			col, found := findWinningColumn(b, tt.token)
			if found != tt.wantFound || col != tt.wantCol {
				t.Errorf("findWinningColumn() got (%d, %v), want (%d, %v)", col, found, tt.wantCol, tt.wantFound)
			}
		})
	}
}

func TestEasyMove(t *testing.T) {
	t.Run("Only one column left", func(t *testing.T) {
		b := mustBoard(t,
			"XOXO.XO",
			"OXOXOXO",
			"XOXOXOX",
			"OXOXOXO",
			"XOXOXOX",
			"OXOXOXO",
		)
		if col := easyMove(b); col != 4 {
			t.Errorf("easyMove should pick the only open column 4, got %d", col)
		}
	})

	t.Run("Empty board - always a legal column", func(t *testing.T) {
		b := game.NewBoard(game.DefaultRules())
		for i := 0; i < 50; i++ {
			col := easyMove(b)
			if col < 0 || col >= 7 {
				t.Fatalf("easyMove returned an invalid column %d", col)
			}
		}
	})

	t.Run("Full board", func(t *testing.T) {
		b := mustBoard(t,
			"XXOOXXO",
			"OOXXOOX",
			"XXOOXXO",
			"OOXXOOX",
			"XXOOXXO",
			"OOXXOOX",
		)
		if col := easyMove(b); col != -1 {
			t.Errorf("easyMove on a full board should return -1, got %d", col)
		}
	})
}

func TestMediumMove(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		token   game.Token
		wantCol int
	}{
		{
			name:    "Bot can win",
			rows:    []string{".......", ".......", ".......", ".......", "OO.....", "XXX.O.."},
			token:   game.TokenA,
			wantCol: 3,
		},
		{
			name:    "Bot must block opponent",
			rows:    []string{".......", ".......", ".......", "O......", "O.X....", "O.X.X.."},
			token:   game.TokenA,
			wantCol: 0,
		},
		{
			name:    "Win beats block",
			rows:    []string{".......", ".......", ".......", "O.....X", "O.....X", "O....XX"},
			token:   game.TokenA,
			wantCol: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			if col := mediumMove(b, tt.token); col != tt.wantCol {
				t.Errorf("mediumMove() = %d, want %d", col, tt.wantCol)
			}
		})
	}
}

func TestHardMove(t *testing.T) {
	t.Run("Empty board takes the centre", func(t *testing.T) {
		b := game.NewBoard(game.DefaultRules())
		if col := hardMove(b, game.TokenA); col != 3 {
			t.Errorf("hardMove() = %d, want 3", col)
		}
	})

	t.Run("Does not set up the opponent", func(t *testing.T) {
		b := mustBoard(t,
			".......",
			".......",
			".......",
			".......",
			"OOO....",
			"XXO.X.X",
		)
		if col := hardMove(b, game.TokenA); col == 3 {
			t.Errorf("hardMove() dropped under the opponent's winning cell")
		}
	})

	t.Run("Blocks", func(t *testing.T) {
		b := mustBoard(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"X.OOO..",
		)
		col := hardMove(b, game.TokenA)
		if col != 1 && col != 5 {
			t.Errorf("hardMove() = %d, want a block at 1 or 5", col)
		}
	})
}

func TestCalculateNextColumn_DefaultsToHard(t *testing.T) {
	b := game.NewBoard(game.DefaultRules())
	calc := &BotMoveCalculator{}
	if col := calc.CalculateNextColumn(b, game.TokenB, "impossible"); col != 3 {
		t.Errorf("CalculateNextColumn() = %d, want 3", col)
	}
}
