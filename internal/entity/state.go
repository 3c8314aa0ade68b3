package entity

// GameStateResponse is the body of /state and /move answers. Winner is omitted while the game
// is running and on a draw; Error is set only when a move was rejected.
type GameStateResponse struct {
	Board    Board  `json:"board"`
	GameOver bool   `json:"game_over"`
	Winner   *int   `json:"winner,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MoveErrorResponse is the in-band answer to a rejected move. The board is not included.
type MoveErrorResponse struct {
	Error string `json:"error"`
}

// ResetResponse is the body of a /reset answer.
type ResetResponse struct {
	Status string `json:"status"`
}

func NewGameStateResponse(game *Game) GameStateResponse {
	resp := GameStateResponse{
		Board:    game.Board,
		GameOver: game.GameOver,
	}

	if game.Winner != EmptyCell {
		winner := game.Winner
		resp.Winner = &winner
	}

	return resp
}

// Outcome maps the response onto win, loss or draw.
func (that GameStateResponse) Outcome() Outcome {
	return OutcomeOf(that.GameOver, that.Winner)
}
