package entity

import (
	"testing"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Drop(t *testing.T) {
	t.Run("Piece falls to the bottom row", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: player one drops into column 3
		row, err := board.Drop(3, PlayerHuman)

		// Then: the piece lands on the last row
		require.NoError(t, err)
		assert.Equal(t, Rows-1, row)
		assert.Equal(t, PlayerHuman, board[Rows-1][3])
	})

	t.Run("Pieces stack in the same column", func(t *testing.T) {
		// Given: a board with one piece in column 0
		var board Board
		_, err := board.Drop(0, PlayerHuman)
		require.NoError(t, err)

		// When: the bot drops into the same column
		row, err := board.Drop(0, PlayerBot)

		// Then: the piece lands on top of the first one
		require.NoError(t, err)
		assert.Equal(t, Rows-2, row)
		assert.Equal(t, PlayerBot, board[Rows-2][0])
	})

	t.Run("Error on full column", func(t *testing.T) {
		// Given: a full column 6
		var board Board
		for i := 0; i < Rows; i++ {
			_, err := board.Drop(6, PlayerHuman+i%2)
			require.NoError(t, err)
		}
		before := board

		// When: another piece is dropped there
		_, err := board.Drop(6, PlayerHuman)

		// Then: ErrColumnFull is returned and the board is unchanged
		require.ErrorIs(t, err, ErrColumnFull)
		assert.Equal(t, before, board)
	})

	t.Run("Error on invalid column index", func(t *testing.T) {
		var board Board

		_, err := board.Drop(Columns, PlayerHuman)
		assert.ErrorIs(t, err, ErrInvalidColumn)

		_, err = board.Drop(-1, PlayerHuman)
		assert.ErrorIs(t, err, ErrInvalidColumn)
	})
}

func TestBoard_ValidMoves(t *testing.T) {
	// Given: a board where column 2 is full
	var board Board
	for row := 0; row < Rows; row++ {
		board[row][2] = PlayerBot
	}

	// When: asking for valid moves
	moves := board.ValidMoves()

	// Then: every column but 2 is listed
	assert.Equal(t, []int{0, 1, 3, 4, 5, 6}, moves)
	assert.False(t, board.IsFull())
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
		want  int
	}{
		{name: "horizontal", cells: [][2]int{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, want: PlayerHuman},
		{name: "vertical", cells: [][2]int{{2, 6}, {3, 6}, {4, 6}, {5, 6}}, want: PlayerHuman},
		{name: "diagonal down-right", cells: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, want: PlayerHuman},
		{name: "diagonal up-right", cells: [][2]int{{5, 3}, {4, 4}, {3, 5}, {2, 6}}, want: PlayerHuman},
		{name: "three only", cells: [][2]int{{5, 0}, {5, 1}, {5, 2}}, want: EmptyCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board with the listed cells owned by player one
			var board Board
			for _, cell := range tt.cells {
				board[cell[0]][cell[1]] = PlayerHuman
			}

			// Then: the winner matches
			assert.Equal(t, tt.want, board.Winner())
		})
	}

	t.Run("Bot line is reported as bot", func(t *testing.T) {
		var board Board
		for col := 3; col < 7; col++ {
			board[0][col] = PlayerBot
		}

		assert.Equal(t, PlayerBot, board.Winner())
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Updates game state when the human connects four", func(t *testing.T) {
		// Given: a game where the human owns the bottom-left four cells
		game := NewGame("123", DifficultyEasy)
		for col := 0; col < 4; col++ {
			game.Board[Rows-1][col] = PlayerHuman
		}

		// When: updating the game state
		game.UpdateGameState()

		// Then: the game is over and the human won
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerHuman, game.Winner)
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Updates game state on a full board without a line", func(t *testing.T) {
		// Given: a full board striped so that no four pieces align
		game := NewGame("123", DifficultyHard)
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				if (col+row/2)%2 == 0 {
					game.Board[row][col] = PlayerHuman
				} else {
					game.Board[row][col] = PlayerBot
				}
			}
		}
		require.Equal(t, EmptyCell, game.Board.Winner())

		// When: updating the game state
		game.UpdateGameState()

		// Then: the game is a draw
		assert.True(t, game.IsDraw())
	})

	t.Run("Game remains ongoing when there is no winner", func(t *testing.T) {
		game := NewGame("123", DifficultyEasy)
		game.Board[Rows-1][0] = PlayerHuman

		game.UpdateGameState()

		assert.False(t, game.IsFinished())
		assert.NoError(t, game.ConfirmOngoingState())
	})
}

func TestParseDifficulty(t *testing.T) {
	got, err := ParseDifficulty(" Easy ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, got)

	got, err = ParseDifficulty("medium")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, got)

	// Unknown values fall back to hard and report why
	got, err = ParseDifficulty("nightmare")
	require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
	assert.Equal(t, DifficultyHard, got)
}

func TestOutcomeOf(t *testing.T) {
	human, bot, empty := PlayerHuman, PlayerBot, EmptyCell

	assert.Equal(t, OutcomeNone, OutcomeOf(false, &human))
	assert.Equal(t, OutcomeWin, OutcomeOf(true, &human))
	assert.Equal(t, OutcomeLoss, OutcomeOf(true, &bot))
	assert.Equal(t, OutcomeDraw, OutcomeOf(true, nil))
	assert.Equal(t, OutcomeDraw, OutcomeOf(true, &empty))
}
