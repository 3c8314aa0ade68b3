package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

// MakeTurn drops the player's piece into col and updates the game result.
func MakeTurn(gameInstance *entity.Game, player, col int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, player, col); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if _, err := gameInstance.Board.Drop(col, player); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	gameInstance.Moves++
	gameInstance.UpdateGameState()

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, player, col int) error {
	if player != entity.PlayerHuman && player != entity.PlayerBot {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, player)
	}

	if col < 0 || col >= entity.Columns {
		return fmt.Errorf("%w: column %d", entity.ErrInvalidColumn, col)
	}

	if gameInstance.Board.IsColumnFull(col) {
		return entity.ErrColumnFull
	}

	return nil
}
