package entity

// Player is the human behind a browser session. The tally counts
// finished rounds within the session and survives game resets.
type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

func NewPlayer(id string) *Player {
	return &Player{
		ID:   id,
		Mark: PlayerO,
	}
}

// RecordResult updates the tally for one finished game.
func (that *Player) RecordResult(winner string) {
	switch winner {
	case that.Mark:
		that.Wins++
	case PlayerTie:
		that.Draws++
	default:
		that.Losses++
	}
}
