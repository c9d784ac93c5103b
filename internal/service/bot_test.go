package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Louisaok9487/OOXX-game/internal/entity"
)

func newTestBot() BotService {
	return NewBotService(rand.New(rand.NewSource(1)))
}

func botGame(board [9]string) *entity.Game {
	game := entity.NewGame("000")
	game.Board = board
	game.Turn = entity.PlayerX
	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Takes an immediate win before blocking", func(t *testing.T) {
		// Given: the bot can win on cell 2 while the human threatens cell 5
		game := botGame([9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		})

		// When: the bot moves
		err := newTestBot().MakeTurn(game)
		require.NoError(t, err)

		// Then: it completes its own line instead of blocking
		require.Equal(t, entity.PlayerX, game.Board[2])
		require.Equal(t, entity.PlayerX, game.Winner)
		require.Equal(t, []int{0, 1, 2}, game.WinLine)
	})

	t.Run("Blocks the human's winning cell", func(t *testing.T) {
		// Given: the human has two in the top row, the bot cannot win
		game := botGame([9]string{
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.PlayerX, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		})

		// When: the bot moves
		err := newTestBot().MakeTurn(game)
		require.NoError(t, err)

		// Then: it occupies cell 2, not a corner or another cell
		require.Equal(t, entity.PlayerX, game.Board[2])
		require.True(t, game.IsOngoing())
	})

	t.Run("Prefers the center when free", func(t *testing.T) {
		// Given: an empty board with the bot to move
		game := botGame([9]string{})

		// When: the bot moves
		err := newTestBot().MakeTurn(game)
		require.NoError(t, err)

		// Then: it takes the center
		require.Equal(t, entity.PlayerX, game.Board[entity.CenterCell])
	})

	t.Run("Takes corners in fixed order after the center", func(t *testing.T) {
		// Given: no threats, center taken, corner 0 taken by the human
		game := botGame([9]string{
			entity.PlayerO, entity.EmptyCell, entity.EmptyCell,
			entity.EmptyCell, entity.PlayerX, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.PlayerO,
		})

		// When: the bot moves
		err := newTestBot().MakeTurn(game)
		require.NoError(t, err)

		// Then: it takes corner 2, the first free one in [0 2 6 8]
		require.Equal(t, entity.PlayerX, game.Board[2])
	})

	t.Run("Falls back to a remaining free cell", func(t *testing.T) {
		// Given: center and all corners taken, no win or block anywhere,
		// one free cell left so the random fallback has a single choice
		game := botGame([9]string{
			entity.PlayerX, entity.EmptyCell, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
		})

		// When: the bot moves
		err := newTestBot().MakeTurn(game)
		require.NoError(t, err)

		// Then: it fills the last cell
		require.Equal(t, entity.PlayerX, game.Board[1])
	})

	t.Run("Never picks an occupied cell over a full game", func(t *testing.T) {
		// Given: a fresh game and a human that always plays the lowest free cell
		game := entity.NewGame("000")
		bot := newTestBot()

		for game.IsOngoing() {
			played := false
			for i, cell := range game.Board {
				if cell == entity.EmptyCell {
					require.NoError(t, game.MakeTurn(entity.PlayerO, i))
					played = true
					break
				}
			}
			require.True(t, played)

			if !game.IsOngoing() {
				break
			}

			// When: the bot answers, Then: the move is always legal
			marksBefore := countMarks(game.Board)
			require.NoError(t, bot.MakeTurn(game))
			require.Equal(t, marksBefore+1, countMarks(game.Board))
		}

		require.True(t, game.IsFinished())
	})

	t.Run("Error when no cell is free", func(t *testing.T) {
		game := botGame([9]string{
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerX, entity.PlayerO, entity.PlayerO,
		})

		err := newTestBot().MakeTurn(game)
		assert.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func countMarks(board [9]string) int {
	marks := 0
	for _, cell := range board {
		if cell != entity.EmptyCell {
			marks++
		}
	}
	return marks
}
