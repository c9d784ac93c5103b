package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Louisaok9487/OOXX-game/internal/entity"
	"github.com/Louisaok9487/OOXX-game/internal/repository"
)

// GamePlayService ties a browser session to its player and single
// game. The caller sequences turns: apply the human move, and when the
// game is still ongoing and it is the bot's turn, apply the bot move.
type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Player, *entity.Game, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, sessionID string) (*entity.Game, error)
	ResetGame(ctx context.Context, sessionID string) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

// GetOrCreateGame returns the session's player and game, creating
// either on first contact.
func (that *gamePlayService) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Player, *entity.Game, error) {
	player, err := that.playerService.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = entity.NewPlayer(sessionID)
		err = nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		game, createErr := that.createGame(ctx, player)
		if createErr != nil {
			return nil, nil, createErr
		}

		return player, game, nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		game, err = that.createGame(ctx, player)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return player, game, nil
}

// MakeTurn applies the human move and re-derives the game status.
func (that *gamePlayService) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	player, game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.finishTurn(ctx, player, game); err != nil {
		return nil, err
	}

	return game, nil
}

// MakeBotTurn lets the opponent policy pick and apply one move.
func (that *gamePlayService) MakeBotTurn(ctx context.Context, sessionID string) (*entity.Game, error) {
	player, game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = that.botService.MakeTurn(game); err != nil {
		return game, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.finishTurn(ctx, player, game); err != nil {
		return nil, err
	}

	return game, nil
}

// ResetGame starts a fresh round on the same board. The player's tally
// is kept; the board, turn and outcome are not.
func (that *gamePlayService) ResetGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	_, game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game reset", "game_id", game.ID)

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.playerService.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("new game created", "game_id", game.ID, "player_id", player.ID)

	return game, nil
}

// finishTurn persists the game and, when the move ended it, the
// player's updated tally.
func (that *gamePlayService) finishTurn(ctx context.Context, player *entity.Player, game *entity.Game) error {
	if game.IsFinished() {
		player.RecordResult(game.Winner)
		if err := that.playerService.CreateOrUpdate(ctx, player); err != nil {
			return fmt.Errorf("failed to update player: %w", err)
		}

		that.logger.Info("game finished", "game_id", game.ID, "winner", game.Winner)
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
