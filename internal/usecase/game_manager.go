package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/connectfour"
	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/service"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

// BotFactory returns the opponent for a difficulty.
type BotFactory func(difficulty entity.Difficulty) service.Bot

// GameManager runs one game per session: the human move, the bot's reply and persistence.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newBot   BotFactory
	botDelay time.Duration

	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock lives in GameManager.locks while refs > 0.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, newBot BotFactory, botDelay time.Duration) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newBot:   newBot,
		botDelay: botDelay,
		locks:    make(map[string]*sessionLock),
	}
}

// Reset starts a new empty game for the session.
func (that *GameManager) Reset(ctx context.Context, sessionID string, difficulty entity.Difficulty) (*entity.Game, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	game := entity.NewGame(sessionID, difficulty)
	if err := that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("game reset", "session", sessionID, "difficulty", difficulty)

	return game, nil
}

// State returns the session's game, creating an empty easy game on first contact.
func (that *GameManager) State(ctx context.Context, sessionID string) (*entity.Game, error) {
	unlock := that.lockSession(sessionID)
	defer unlock()

	return that.getOrCreateGame(ctx, sessionID)
}

// Move applies the human move in col and, unless that ended the game, the bot's reply.
// ErrGameFinished and ErrInvalidMove are returned together with the unchanged game.
func (that *GameManager) Move(ctx context.Context, sessionID string, col int) (*entity.Game, error) {
	log := that.logger.With("method", "Move", "session", sessionID)

	unlock := that.lockSession(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = connectfour.MakeTurn(game, entity.PlayerHuman, col); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			return game, apperror.ErrGameFinished
		}

		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("rejected move", "column", col, "error", err)
			return game, apperror.ErrInvalidMove
		}

		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsFinished() {
		if err = that.updateGame(ctx, game); err != nil {
			return nil, err
		}

		log.Info("game finished by player", "winner", game.Winner, "moves", game.Moves)

		return game, nil
	}

	if err = that.pause(ctx); err != nil {
		return nil, fmt.Errorf("bot turn interrupted: %w", err)
	}

	botCol, err := that.newBot(game.Difficulty).ChooseColumn(game.Board)
	if err != nil {
		return nil, fmt.Errorf("bot failed to choose column: %w", err)
	}

	if err = connectfour.MakeTurn(game, entity.PlayerBot, botCol); err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished by bot", "winner", game.Winner, "moves", game.Moves)
	}

	return game, nil
}

// pause gives the bot a human-like thinking time.
func (that *GameManager) pause(ctx context.Context) error {
	if that.botDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.botDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// lockSession serialises requests of one session. The entry is dropped once nobody holds or waits for it.
func (that *GameManager) lockSession(sessionID string) func() {
	that.locksMu.Lock()
	lock, ok := that.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		that.locks[sessionID] = lock
	}
	lock.refs++
	that.locksMu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		that.locksMu.Lock()
		defer that.locksMu.Unlock()

		lock.refs--
		if lock.refs == 0 {
			delete(that.locks, sessionID)
		}
	}
}

func (that *GameManager) heldLocks() int {
	that.locksMu.Lock()
	defer that.locksMu.Unlock()

	return len(that.locks)
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		game = entity.NewGame(sessionID, entity.DifficultyEasy)
		if err = that.updateGame(ctx, game); err != nil {
			return nil, err
		}

		return game, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
