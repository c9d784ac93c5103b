package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Louisaok9487/OOXX-game/internal/entity"
	"github.com/Louisaok9487/OOXX-game/internal/repository"
)

func newTestGamePlay(t *testing.T) (GamePlayService, repository.PlayerRepository, repository.GameRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	playerRepo := repository.NewMemoryPlayerRepository()
	gameRepo := repository.NewMemoryGameRepository()

	playerService := NewPlayerService(playerRepo)
	gameService := NewGameService(gameRepo)
	botService := NewBotService(rand.New(rand.NewSource(1)))

	return NewGamePlayService(logger, playerService, gameService, botService), playerRepo, gameRepo
}

func TestGamePlayService_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()
	gamePlay, _, _ := newTestGamePlay(t)

	// When: a new session asks for its game
	player, game, err := gamePlay.GetOrCreateGame(ctx, "session-1")
	require.NoError(t, err)

	// Then: a player and an ongoing game are created and linked
	require.Equal(t, "session-1", player.ID)
	require.Equal(t, entity.PlayerO, player.Mark)
	require.Equal(t, game.ID, player.GameID)
	require.True(t, game.IsOngoing())
	require.Equal(t, entity.PlayerO, game.Turn)

	// When: the same session asks again
	_, sameGame, err := gamePlay.GetOrCreateGame(ctx, "session-1")
	require.NoError(t, err)

	// Then: the same game comes back
	require.Equal(t, game.ID, sameGame.ID)
}

func TestGamePlayService_MakeTurn(t *testing.T) {
	ctx := context.Background()
	gamePlay, _, _ := newTestGamePlay(t)

	// When: the human plays a cell
	game, err := gamePlay.MakeTurn(ctx, "session-1", 0)
	require.NoError(t, err)

	// Then: the move is applied, persisted, and it is the bot's turn
	require.Equal(t, entity.PlayerO, game.Board[0])
	require.Equal(t, entity.PlayerX, game.Turn)

	_, stored, err := gamePlay.GetOrCreateGame(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, game.Board, stored.Board)
}

func TestGamePlayService_MakeBotTurn(t *testing.T) {
	ctx := context.Background()
	gamePlay, _, _ := newTestGamePlay(t)

	_, err := gamePlay.MakeTurn(ctx, "session-1", 0)
	require.NoError(t, err)

	// When: the bot answers
	game, err := gamePlay.MakeBotTurn(ctx, "session-1")
	require.NoError(t, err)

	// Then: exactly one bot mark is on the board and the human is to move
	require.Equal(t, entity.PlayerX, game.Board[entity.CenterCell])
	require.Equal(t, entity.PlayerO, game.Turn)
}

func TestGamePlayService_TallyOnFinish(t *testing.T) {
	ctx := context.Background()
	gamePlay, playerRepo, gameRepo := newTestGamePlay(t)

	// Given: a session whose game is one human move away from a win
	player, game, err := gamePlay.GetOrCreateGame(ctx, "session-1")
	require.NoError(t, err)

	game.Board = [9]string{
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

	// When: the human completes the row
	game, err = gamePlay.MakeTurn(ctx, "session-1", 2)
	require.NoError(t, err)

	// Then: the game is won and the win lands on the player's tally
	require.True(t, game.IsFinished())
	require.Equal(t, entity.PlayerO, game.Winner)

	player, err = playerRepo.GetByID(ctx, player.ID)
	require.NoError(t, err)
	require.Equal(t, 1, player.Wins)
	require.Equal(t, 0, player.Losses)
}

func TestGamePlayService_ResetGame(t *testing.T) {
	ctx := context.Background()
	gamePlay, playerRepo, gameRepo := newTestGamePlay(t)

	// Given: a finished game and a recorded win
	_, game, err := gamePlay.GetOrCreateGame(ctx, "session-1")
	require.NoError(t, err)

	game.Board = [9]string{
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.PlayerX, entity.PlayerX, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

	_, err = gamePlay.MakeTurn(ctx, "session-1", 2)
	require.NoError(t, err)

	// When: the session starts a fresh round
	game, err = gamePlay.ResetGame(ctx, "session-1")
	require.NoError(t, err)

	// Then: the board is back to the initial state
	require.Equal(t, [9]string{}, game.Board)
	require.Equal(t, entity.PlayerO, game.Turn)
	require.Empty(t, game.Winner)
	require.Nil(t, game.WinLine)
	require.True(t, game.IsOngoing())

	// Then: the tally survives the reset
	player, err := playerRepo.GetByID(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, 1, player.Wins)
}
