package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("Game is over")  //nolint: stylecheck // message is part of the wire contract
	ErrInvalidMove       = errors.New("Invalid move")  //nolint: stylecheck // message is part of the wire contract
	ErrGameNotFound      = errors.New("game not found")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrMoveInProgress    = errors.New("a request is already in progress")
)
