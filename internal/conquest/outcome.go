package conquest

// Outcome is the state of the match from the human seat's point of view.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Done reports whether the loop should stop.
func (o Outcome) Done() bool {
	return o != OutcomeInProgress
}

// Message is the line announced when the match ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeVictory:
		return "game over, you win"
	case OutcomeDefeat:
		return "game over, you lose"
	default:
		return ""
	}
}
