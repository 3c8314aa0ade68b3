package frontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

var ErrMoveRejected = errors.New("move rejected")

type gameAPI interface {
	Reset(ctx context.Context, difficulty entity.Difficulty) error
	State(ctx context.Context) (*entity.GameStateResponse, error)
	Move(ctx context.Context, col int) (*entity.GameStateResponse, error)
}

// SessionState is the controller's position in a game session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingResponse
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Controller forwards column picks to the game service and reconciles the answers into a View.
//
// The processing lock is set before any request leaves and is cleared on every way out of the
// request, except a finished game, which stays locked until Reset. Each Reset starts a new
// generation; answers and timers from an older generation are dropped.
type Controller struct {
	logger *slog.Logger
	api    gameAPI
	view   View

	settleDelay time.Duration
	resultDelay time.Duration

	initOnce sync.Once

	mu         sync.Mutex
	processing bool
	finished   bool
	generation uint64
	difficulty entity.Difficulty
}

func NewController(logger *slog.Logger, api gameAPI, view View, settleDelay, resultDelay time.Duration) *Controller {
	return &Controller{
		logger:      logger.With("component", "controller"),
		api:         api,
		view:        view,
		settleDelay: settleDelay,
		resultDelay: resultDelay,
		difficulty:  entity.DifficultyEasy,
	}
}

// Initialize builds the grid, binds the columns and starts an easy game. Later calls do nothing.
// Column picks made through the view run with ctx.
func (that *Controller) Initialize(ctx context.Context) error {
	var err error

	that.initOnce.Do(func() {
		that.mu.Lock()
		that.view.BuildGrid(entity.Rows, entity.Columns)
		that.view.BindColumns(func(col int) {
			if moveErr := that.SubmitMove(ctx, col); moveErr != nil {
				that.logger.Debug("move not applied", "column", col, "error", moveErr)
			}
		})
		that.mu.Unlock()

		err = that.Reset(ctx, entity.DifficultyEasy)
	})

	return err
}

// Reset starts a new game at the difficulty and renders it. The lock is released however the
// requests end.
func (that *Controller) Reset(ctx context.Context, difficulty entity.Difficulty) error {
	log := that.logger.With("method", "Reset", "difficulty", difficulty)

	that.mu.Lock()
	that.generation++
	gen := that.generation
	that.processing = true
	that.finished = false
	that.difficulty = difficulty
	that.view.HideResult()
	that.view.SetStatus(StatusStarting)
	that.mu.Unlock()

	defer func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if gen == that.generation {
			that.processing = false
			that.view.SetStatus(StatusYourTurn)
		}
	}()

	if err := that.api.Reset(ctx, difficulty); err != nil {
		log.Error("failed to reset game", "error", err)
		return fmt.Errorf("reset: %w", err)
	}

	state, err := that.api.State(ctx)
	if err != nil {
		log.Error("failed to fetch state", "error", err)
		return fmt.Errorf("reset: %w", err)
	}

	that.mu.Lock()
	if gen == that.generation {
		that.render(state.Board)
	}
	that.mu.Unlock()

	return nil
}

// SubmitMove drops the player's piece in col. While a request is outstanding it returns
// apperror.ErrMoveInProgress and changes nothing; on a finished game it returns
// apperror.ErrGameFinished.
func (that *Controller) SubmitMove(ctx context.Context, col int) error {
	log := that.logger.With("method", "SubmitMove", "column", col)

	that.mu.Lock()
	if that.finished {
		that.mu.Unlock()
		return apperror.ErrGameFinished
	}

	if that.processing {
		that.mu.Unlock()
		return apperror.ErrMoveInProgress
	}

	that.processing = true
	gen := that.generation
	that.view.SetStatus(StatusThinking)
	that.mu.Unlock()

	resp, err := that.api.Move(ctx, col)

	that.mu.Lock()
	defer that.mu.Unlock()

	if gen != that.generation {
		log.Debug("dropping answer from a previous game")
		return nil
	}

	if err != nil {
		log.Error("failed to submit move", "error", err)
		that.unlock()
		return fmt.Errorf("submit move: %w", err)
	}

	if resp.Error != "" {
		that.unlock()
		return fmt.Errorf("%w: %s", ErrMoveRejected, resp.Error)
	}

	that.render(resp.Board)

	if resp.GameOver {
		that.finished = true
		result := ResultFor(resp.Outcome())
		log.Info("game over", "outcome", result.Outcome)

		that.after(that.resultDelay, gen, func() {
			that.view.ShowResult(result)
			that.view.SetStatus(result.Title)
		})

		return nil
	}

	that.after(that.settleDelay, gen, that.unlock)

	return nil
}

// Render reconciles the board into the view.
func (that *Controller) Render(board entity.Board) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.render(board)
}

// Processing reports whether the lock is held.
func (that *Controller) Processing() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.processing
}

func (that *Controller) State() SessionState {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.finished:
		return StateFinished
	case that.processing:
		return StateAwaitingResponse
	default:
		return StateIdle
	}
}

// Difficulty returns the difficulty of the current game.
func (that *Controller) Difficulty() entity.Difficulty {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.difficulty
}

// render only touches cells whose shown state differs from the board. Caller holds mu.
func (that *Controller) render(board entity.Board) {
	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Columns; col++ {
			value := board[row][col]
			hasToken := that.view.HasToken(row, col)

			switch {
			case value == entity.EmptyCell && hasToken:
				that.view.RemoveToken(row, col)
			case value != entity.EmptyCell && !hasToken:
				that.view.AddToken(row, col, value)
			}
		}
	}
}

// unlock clears the lock. Caller holds mu.
func (that *Controller) unlock() {
	that.processing = false
	that.view.SetStatus(StatusYourTurn)
}

// after runs fn under mu once delay has passed, unless a Reset happened meanwhile. With no
// delay fn runs right away; the caller already holds mu then.
func (that *Controller) after(delay time.Duration, gen uint64, fn func()) {
	if delay <= 0 {
		fn()
		return
	}

	time.AfterFunc(delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if gen == that.generation {
			fn()
		}
	})
}
