package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Louisaok9487/OOXX-game/internal/apperror"
	"github.com/Louisaok9487/OOXX-game/internal/entity"
	"github.com/Louisaok9487/OOXX-game/internal/pkg"
)

const sessionCookieName = "user_session"

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	GameHandler(w http.ResponseWriter, r *http.Request)
	TurnHandler(w http.ResponseWriter, r *http.Request)
	ResetHandler(w http.ResponseWriter, r *http.Request)
	AnalysisHandler(w http.ResponseWriter, r *http.Request)
}

type gamePlayService interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Player, *entity.Game, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, sessionID string) (*entity.Game, error)
	ResetGame(ctx context.Context, sessionID string) (*entity.Game, error)
}

type analysisService interface {
	Summarize(ctx context.Context, game *entity.Game) (string, error)
}

// TurnRequest is the body of POST /api/game/turn.
type TurnRequest struct {
	Cell int `json:"cell"`
}

// ResponsePayload is the envelope every game endpoint answers with.
type ResponsePayload struct {
	Player   *entity.Player `json:"player,omitempty"`
	Game     *entity.Game   `json:"game,omitempty"`
	Analysis string         `json:"analysis,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type handlers struct {
	logger *slog.Logger

	gamePlay gamePlayService
	analysis analysisService

	// pacing delay before the bot answers, purely a UX affordance
	botDelay time.Duration
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlayService, analysis analysisService, botDelay time.Duration) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
		analysis: analysis,
		botDelay: botDelay,
	}
}

// GameHandler returns the session's player and game, creating both on
// first contact.
func (that *handlers) GameHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := that.sessionID(w, r)

	player, game, err := that.gamePlay.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		that.logger.Error("failed to get game", "error", err)
		writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to get game"})
		return
	}

	writeJSON(w, http.StatusOK, ResponsePayload{Player: player, Game: game})
}

// TurnHandler applies the human move and, when the game continues and
// it is the bot's turn, schedules the bot move after the pacing delay.
func (that *handlers) TurnHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := that.sessionID(w, r)

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ResponsePayload{Error: "invalid request body"})
		return
	}

	game, err := that.gamePlay.MakeTurn(ctx, sessionID, req.Cell)
	if err != nil {
		that.writeTurnError(w, game, err)
		return
	}

	if game.IsOngoing() && game.Turn == entity.PlayerX {
		if !that.waitBotDelay(ctx) {
			return
		}

		if game, err = that.gamePlay.MakeBotTurn(ctx, sessionID); err != nil {
			that.writeTurnError(w, game, err)
			return
		}
	}

	player, game, err := that.gamePlay.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to get game", "error", err)
		writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to get game"})
		return
	}

	writeJSON(w, http.StatusOK, ResponsePayload{Player: player, Game: game})
}

// ResetHandler starts a fresh round for the session.
func (that *handlers) ResetHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := that.sessionID(w, r)

	game, err := that.gamePlay.ResetGame(r.Context(), sessionID)
	if err != nil {
		that.logger.Error("failed to reset game", "error", err)
		writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to reset game"})
		return
	}

	writeJSON(w, http.StatusOK, ResponsePayload{Game: game})
}

// AnalysisHandler returns the model commentary for a finished game.
func (that *handlers) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := that.sessionID(w, r)

	_, game, err := that.gamePlay.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to get game", "error", err)
		writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to get game"})
		return
	}

	analysis, err := that.analysis.Summarize(ctx, game)

	switch {
	case errors.Is(err, apperror.ErrGameNotFinished):
		writeJSON(w, http.StatusBadRequest, ResponsePayload{Error: apperror.ErrGameNotFinished.Error()})
	case errors.Is(err, apperror.ErrAnalysisUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ResponsePayload{Error: apperror.ErrAnalysisUnavailable.Error()})
	case err != nil:
		that.logger.Error("failed to summarize game", "error", err)
		writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to summarize game"})
	default:
		writeJSON(w, http.StatusOK, ResponsePayload{Game: game, Analysis: analysis})
	}
}

// sessionID reads the session cookie, creating one when missing.
func (that *handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		cookie = &http.Cookie{
			Name:     sessionCookieName,
			Value:    pkg.GenerateNewSessionID(),
			Expires:  time.Now().Add(24 * time.Hour),
			Path:     "/",
			HttpOnly: true,
		}
		http.SetCookie(w, cookie)

		that.logger.Info("session cookie not found, new one created", "session_id", cookie.Value)
	}

	return cookie.Value
}

// waitBotDelay paces the bot's answer; reports false when the client
// went away while waiting.
func (that *handlers) waitBotDelay(ctx context.Context) bool {
	if that.botDelay <= 0 {
		return true
	}

	timer := time.NewTimer(that.botDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// writeTurnError maps move-contract violations to 400 and everything
// else to 500.
func (that *handlers) writeTurnError(w http.ResponseWriter, game *entity.Game, err error) {
	for _, contractErr := range []error{
		apperror.ErrGameFinished,
		apperror.ErrInvalidCell,
		apperror.ErrCellOccupied,
		apperror.ErrNotYourTurn,
	} {
		if errors.Is(err, contractErr) {
			writeJSON(w, http.StatusBadRequest, ResponsePayload{Game: game, Error: contractErr.Error()})
			return
		}
	}

	that.logger.Error("failed to make turn", "error", err)
	writeJSON(w, http.StatusInternalServerError, ResponsePayload{Error: "failed to make turn"})
}

func writeJSON(w http.ResponseWriter, status int, payload ResponsePayload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}
