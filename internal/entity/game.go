package entity

import (
	"fmt"

	"github.com/Louisaok9487/OOXX-game/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerO is the human side and always moves first.
	PlayerO = "O"
	// PlayerX is the computer side.
	PlayerX = "X"

	PlayerTie = "-"

	EmptyCell = ""

	CenterCell = 4
)

// WinCombos lists the 8 winning index triples: rows, then columns,
// then diagonals. Winner scans them in this order, so the table order
// is the tie-break when a final move completes more than one line.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game holds the board, whose turn it is, and the derived outcome.
// Status, Winner and WinLine are recomputed from the board after every
// move and are never set directly by callers.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Turn    string    `json:"turn,omitempty"`
	Winner  string    `json:"winner,omitempty"`
	WinLine []int     `json:"win_line,omitempty"`
	Status  string    `json:"status"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{},
		Turn:   PlayerO,
		Status: StatusOngoing,
	}
}

// Winner scans the win-line table and reports the outcome of a board:
// the winning mark and its line, PlayerTie for a full board with no
// line, or an empty mark while the game is still open.
func Winner(board [9]string) (string, []int) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, []int{combo[0], combo[1], combo[2]}
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return "", nil
		}
	}

	return PlayerTie, nil
}

// MakeTurn places the given mark on the given cell. The caller must
// only invoke it for the side whose turn it is, on an empty cell of an
// ongoing game; anything else is a contract violation answered with a
// sentinel error and no state change.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.Status == StatusFinished {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = toggleMark(playerMark)

	that.UpdateGameState()

	return nil
}

// UpdateGameState derives Status, Winner and WinLine from the board.
func (that *Game) UpdateGameState() {
	switch winner, line := Winner(that.Board); winner {
	case PlayerX, PlayerO:
		that.Winner = winner
		that.WinLine = line
		that.Status = StatusFinished
		that.Turn = ""
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	default:
		that.Status = StatusOngoing
	}
}

// Reset returns the game to its initial state: empty board, human to
// move, no winner and no winning line.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerO
	that.Winner = ""
	that.WinLine = nil
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
