package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a query value onto a known difficulty. Unknown values are reported
// together with the hard fallback.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return DifficultyHard, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	GameOver   bool       `json:"game_over"`
	Winner     int        `json:"winner"`
	Difficulty Difficulty `json:"difficulty"`
	Moves      int        `json:"moves"`
}

func NewGame(id string, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Difficulty: difficulty,
	}
}

func (that *Game) IsFinished() bool {
	return that.GameOver
}

func (that *Game) IsDraw() bool {
	return that.GameOver && that.Winner == EmptyCell
}

// UpdateGameState marks the game finished once somebody connected four or the board filled up.
func (that *Game) UpdateGameState() {
	if winner := that.Board.Winner(); winner != EmptyCell {
		that.Winner = winner
		that.GameOver = true
		return
	}

	if that.Board.IsFull() {
		that.Winner = EmptyCell
		that.GameOver = true
	}
}

func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}
