package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/Louisaok9487/OOXX-game/internal/apperror"
	"github.com/Louisaok9487/OOXX-game/internal/entity"
)

const analysisPromptFormat = `You are a witty commentator for a game of tic-tac-toe
that has just finished. The human player used the O mark and the
computer used the X mark. Empty cells are shown as a dot.

Here is the final board:

%s

Outcome: %s

Give me one short, playful remark about how the game went. Keep the
answer to a single sentence.`

// AnalysisService asks a text-generation model for a short commentary
// on a finished game. The call is read-only with respect to game state.
type AnalysisService interface {
	Summarize(ctx context.Context, game *entity.Game) (string, error)
}

type analysisService struct {
	logger *slog.Logger
	llm    llms.Model
}

// NewAnalysisService builds the commentary service. A nil model is
// allowed and makes every call report ErrAnalysisUnavailable.
func NewAnalysisService(logger *slog.Logger, llm llms.Model) AnalysisService {
	return &analysisService{
		logger: logger.With("component", "analysis"),
		llm:    llm,
	}
}

func (that *analysisService) Summarize(ctx context.Context, game *entity.Game) (string, error) {
	if !game.IsFinished() {
		return "", apperror.ErrGameNotFinished
	}

	if that.llm == nil {
		return "", fmt.Errorf("%w: no model configured", apperror.ErrAnalysisUnavailable)
	}

	prompt := fmt.Sprintf(analysisPromptFormat, FormatBoard(game.Board), outcomeSummary(game.Winner))

	response, err := llms.GenerateFromSinglePrompt(ctx, that.llm, prompt, llms.WithMaxTokens(256), llms.WithTemperature(0.8))
	if err != nil {
		that.logger.Error("model call failed", "error", err)
		return "", fmt.Errorf("%w: %s", apperror.ErrAnalysisUnavailable, err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return "", fmt.Errorf("%w: model returned no text", apperror.ErrAnalysisUnavailable)
	}

	return response, nil
}

// FormatBoard renders the board as a 3x3 grid with dots for empty
// cells, the shape the model prompt and logs use.
func FormatBoard(board [9]string) string {
	cells := make([]string, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			cells[i] = "."
		} else {
			cells[i] = cell
		}
	}

	rows := make([]string, 0, 3)
	for i := 0; i < len(cells); i += 3 {
		rows = append(rows, strings.Join(cells[i:i+3], " "))
	}

	return strings.Join(rows, "\n")
}

func outcomeSummary(winner string) string {
	switch winner {
	case entity.PlayerO:
		return "the human player (O) won"
	case entity.PlayerX:
		return "the computer (X) won"
	default:
		return "the game ended in a draw"
	}
}
