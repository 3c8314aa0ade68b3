package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const statusReset = "reset"

func (that *Server) handleReset(ctx echo.Context) error {
	log := that.logger.With("method", "handleReset")

	difficulty, err := entity.ParseDifficulty(ctx.QueryParam("difficulty"))
	if err != nil {
		log.Warn("falling back to default difficulty", "error", err, "difficulty", difficulty)
	}

	if _, err = that.game.Reset(ctx.Request().Context(), sessionID(ctx), difficulty); err != nil {
		log.Error("failed to reset game", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset game")
	}

	return ctx.JSON(http.StatusOK, entity.ResetResponse{Status: statusReset})
}

func (that *Server) handleState(ctx echo.Context) error {
	game, err := that.game.State(ctx.Request().Context(), sessionID(ctx))
	if err != nil {
		that.logger.Error("failed to get game state", "method", "handleState", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get game state")
	}

	return ctx.JSON(http.StatusOK, entity.NewGameStateResponse(game))
}

func (that *Server) handleMove(ctx echo.Context) error {
	log := that.logger.With("method", "handleMove")

	col, err := strconv.Atoi(ctx.Param("col"))
	if err != nil {
		return ctx.JSON(http.StatusOK, entity.MoveErrorResponse{Error: apperror.ErrInvalidMove.Error()})
	}

	game, err := that.game.Move(ctx.Request().Context(), sessionID(ctx), col)
	if errors.Is(err, apperror.ErrGameFinished) || errors.Is(err, apperror.ErrInvalidMove) {
		return ctx.JSON(http.StatusOK, entity.MoveErrorResponse{Error: err.Error()})
	}

	if err != nil {
		log.Error("failed to make move", "column", col, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to make move")
	}

	return ctx.JSON(http.StatusOK, entity.NewGameStateResponse(game))
}
