package frontend

import "github.com/rocketscienceinc/connectfour/internal/entity"

const (
	StatusStarting = "Starting..."
	StatusThinking = "AI Thinking..."
	StatusYourTurn = "Your Turn"
)

// View is the surface the controller draws on. The controller never calls a View from two
// goroutines at once.
type View interface {
	// BuildGrid lays out an empty rows x cols grid.
	BuildGrid(rows, cols int)
	// BindColumns registers the handler invoked when the player picks a column.
	BindColumns(onColumn func(col int))

	HasToken(row, col int) bool
	AddToken(row, col, player int)
	RemoveToken(row, col int)

	SetStatus(status string)
	ShowResult(result Result)
	HideResult()
}

// Result is what the player sees once a game is over.
type Result struct {
	Outcome entity.Outcome
	Title   string
	Message string
}

func ResultFor(outcome entity.Outcome) Result {
	switch outcome {
	case entity.OutcomeWin:
		return Result{Outcome: outcome, Title: "You Win!", Message: "Congratulations! Well played"}
	case entity.OutcomeLoss:
		return Result{Outcome: outcome, Title: "You Lost", Message: "The AI outplayed you this time"}
	default:
		return Result{Outcome: entity.OutcomeDraw, Title: "Draw", Message: "That was a close one!"}
	}
}
