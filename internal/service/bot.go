package service

import (
	"errors"
	"math"
	"math/rand"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const (
	scoreWin = 1_000_000

	mediumDepth = 2
	hardDepth   = 4
)

// Bot picks the column for the opponent's next piece.
type Bot interface {
	ChooseColumn(board entity.Board) (int, error)
}

// NewBot returns the opponent matching the difficulty.
func NewBot(difficulty entity.Difficulty, rnd *rand.Rand) Bot {
	switch difficulty {
	case entity.DifficultyEasy:
		return NewRandomBot(rnd)
	case entity.DifficultyMedium:
		return NewMinimaxBot(mediumDepth, rnd)
	default:
		return NewMinimaxBot(hardDepth, rnd)
	}
}

type randomBot struct {
	rnd *rand.Rand
}

func NewRandomBot(rnd *rand.Rand) Bot {
	return &randomBot{rnd: rnd}
}

func (that *randomBot) ChooseColumn(board entity.Board) (int, error) {
	moves := board.ValidMoves()
	if len(moves) == 0 {
		return -1, ErrNoAvailableMoves
	}

	return moves[that.rnd.Intn(len(moves))], nil
}

// minimaxBot searches the game tree with alpha-beta pruning, scoring the leaves with a
// window heuristic.
type minimaxBot struct {
	depth int
	rnd   *rand.Rand
}

func NewMinimaxBot(depth int, rnd *rand.Rand) Bot {
	return &minimaxBot{depth: depth, rnd: rnd}
}

func (that *minimaxBot) ChooseColumn(board entity.Board) (int, error) {
	if len(board.ValidMoves()) == 0 {
		return -1, ErrNoAvailableMoves
	}

	col, _ := that.minimax(board, that.depth, math.Inf(-1), math.Inf(1), true)

	return col, nil
}

func (that *minimaxBot) minimax(board entity.Board, depth int, alpha, beta float64, maximizing bool) (int, float64) {
	switch board.Winner() {
	case entity.PlayerBot:
		return -1, scoreWin
	case entity.PlayerHuman:
		return -1, -scoreWin
	}

	moves := board.ValidMoves()
	if len(moves) == 0 || depth == 0 {
		return -1, float64(evaluateBoard(&board))
	}

	bestCol := moves[that.rnd.Intn(len(moves))]

	if maximizing {
		value := math.Inf(-1)
		for _, col := range moves {
			child := board
			_, _ = child.Drop(col, entity.PlayerBot)

			_, score := that.minimax(child, depth-1, alpha, beta, false)
			if score > value {
				value = score
				bestCol = col
			}

			alpha = math.Max(alpha, value)
			if alpha >= beta {
				break
			}
		}

		return bestCol, value
	}

	value := math.Inf(1)
	for _, col := range moves {
		child := board
		_, _ = child.Drop(col, entity.PlayerHuman)

		_, score := that.minimax(child, depth-1, alpha, beta, true)
		if score < value {
			value = score
			bestCol = col
		}

		beta = math.Min(beta, value)
		if alpha >= beta {
			break
		}
	}

	return bestCol, value
}

// evaluateBoard scores the position from the bot's point of view.
func evaluateBoard(board *entity.Board) int {
	score := 0

	center := entity.Columns / 2
	for row := 0; row < entity.Rows; row++ {
		if board[row][center] == entity.PlayerBot {
			score += 6
		}
	}

	var window [entity.ConnectLength]int
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Columns; col++ {
			for _, dir := range directions {
				endRow := row + dir[0]*(entity.ConnectLength-1)
				endCol := col + dir[1]*(entity.ConnectLength-1)
				if endRow < 0 || endRow >= entity.Rows || endCol >= entity.Columns {
					continue
				}

				for i := range window {
					window[i] = board[row+dir[0]*i][col+dir[1]*i]
				}
				score += evaluateWindow(window)
			}
		}
	}

	return score
}

func evaluateWindow(window [entity.ConnectLength]int) int {
	var bot, human, empty int
	for _, cell := range window {
		switch cell {
		case entity.PlayerBot:
			bot++
		case entity.PlayerHuman:
			human++
		default:
			empty++
		}
	}

	score := 0

	switch {
	case bot == 4:
		score += 100000
	case bot == 3 && empty == 1:
		score += 100
	case bot == 2 && empty == 2:
		score += 10
	}

	switch {
	case human == 3 && empty == 1:
		score -= 120
	case human == 2 && empty == 2:
		score -= 10
	}

	return score
}
