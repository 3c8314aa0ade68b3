package entity

import (
	"errors"
	"fmt"
)

const (
	Rows    = 6
	Columns = 7

	// ConnectLength is the number of aligned pieces that wins the game.
	ConnectLength = 4
)

const (
	EmptyCell   = 0
	PlayerHuman = 1
	PlayerBot   = 2
)

var (
	ErrInvalidColumn = errors.New("invalid column index")
	ErrColumnFull    = errors.New("column is full")
)

// Board is the 6x7 grid of cell states. Row 0 is the top row.
type Board [Rows][Columns]int

// Drop places the player's piece in the lowest empty row of col and returns that row.
func (that *Board) Drop(col, player int) (int, error) {
	if col < 0 || col >= Columns {
		return -1, fmt.Errorf("%w: column %d", ErrInvalidColumn, col)
	}

	for row := Rows - 1; row >= 0; row-- {
		if that[row][col] == EmptyCell {
			that[row][col] = player
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

func (that *Board) IsColumnFull(col int) bool {
	return that[0][col] != EmptyCell
}

// ValidMoves returns the columns that can still take a piece, left to right.
func (that *Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if !that.IsColumnFull(col) {
			moves = append(moves, col)
		}
	}

	return moves
}

// IsFull reports whether no column accepts another piece.
func (that *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if !that.IsColumnFull(col) {
			return false
		}
	}

	return true
}

// IsEmpty reports whether every cell is empty.
func (that *Board) IsEmpty() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] != EmptyCell {
				return false
			}
		}
	}

	return true
}

// Winner returns the player owning a line of ConnectLength pieces, or EmptyCell.
func (that *Board) Winner() int {
	directions := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{-1, 1}, // diagonal up-right
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			player := that[row][col]
			if player == EmptyCell {
				continue
			}

			for _, dir := range directions {
				if that.lineFrom(row, col, dir[0], dir[1], player) {
					return player
				}
			}
		}
	}

	return EmptyCell
}

func (that *Board) lineFrom(row, col, dRow, dCol, player int) bool {
	for i := 1; i < ConnectLength; i++ {
		r, c := row+dRow*i, col+dCol*i
		if r < 0 || r >= Rows || c < 0 || c >= Columns {
			return false
		}

		if that[r][c] != player {
			return false
		}
	}

	return true
}
