package entity

// Outcome is the result of a finished game seen from the human player.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeDraw
)

// OutcomeOf maps the service's winner field onto an outcome. A finished game without a
// winner is a draw.
func OutcomeOf(gameOver bool, winner *int) Outcome {
	if !gameOver {
		return OutcomeNone
	}

	if winner == nil {
		return OutcomeDraw
	}

	switch *winner {
	case PlayerHuman:
		return OutcomeWin
	case PlayerBot:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}
