package apperror

import "errors"

var (
	ErrGameFinished        = errors.New("game is already finished")
	ErrGameNotFinished     = errors.New("game is not finished yet")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrInvalidCell         = errors.New("invalid cell index")
	ErrAnalysisUnavailable = errors.New("game analysis is unavailable")
)
