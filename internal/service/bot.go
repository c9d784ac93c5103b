package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Louisaok9487/OOXX-game/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// cornerCells is the fixed order the bot probes corners in.
var cornerCells = [4]int{0, 2, 6, 8}

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	rng *rand.Rand
}

// NewBotService builds the computer opponent. The randomness source is
// injected so tests can pin the fallback choice.
func NewBotService(rng *rand.Rand) BotService {
	return &botService{
		rng: rng,
	}
}

// MakeTurn picks one empty cell for the bot and applies it.
func (that *botService) MakeTurn(game *entity.Game) error {
	cell, err := that.chooseCell(game)
	if err != nil {
		return err
	}

	if err = game.MakeTurn(entity.PlayerX, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// chooseCell runs the strategy cascade; the first applicable strategy
// wins. The order is part of the observable behavior: win before
// block, then center, then corners, then a random leftover cell.
func (that *botService) chooseCell(game *entity.Game) (int, error) {
	availableCells := make([]int, 0, len(game.Board))
	for i, cell := range game.Board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if cell, ok := findWinningCell(game.Board, entity.PlayerX); ok {
		return cell, nil
	}

	if cell, ok := findWinningCell(game.Board, entity.PlayerO); ok {
		return cell, nil
	}

	if game.Board[entity.CenterCell] == entity.EmptyCell {
		return entity.CenterCell, nil
	}

	for _, cell := range cornerCells {
		if game.Board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

// findWinningCell reports the lowest empty index where placing the
// given mark completes a win-line.
func findWinningCell(board [9]string, mark string) (int, bool) {
	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		probe := board
		probe[i] = mark

		if winner, _ := entity.Winner(probe); winner == mark {
			return i, true
		}
	}

	return 0, false
}
