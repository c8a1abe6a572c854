package game

// OutcomeKind classifies how a match ended.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota // still undecided
	OutcomeTie                     // robots crashed into the same cell
	OutcomeKill                    // a laser hit decided the match
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeTie:
		return "tie"
	case OutcomeKill:
		return "kill"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a match. Winner is meaningful only for
// OutcomeKill.
type Outcome struct {
	Kind   OutcomeKind
	Winner Side
	Tick   int
}

// Decided reports whether the match is over.
func (o Outcome) Decided() bool {
	return o.Kind != OutcomeNone
}

// WinnerIs reports whether side won by laser kill.
func (o Outcome) WinnerIs(side Side) bool {
	return o.Kind == OutcomeKill && o.Winner == side
}

// Result is the player-facing message, from red's point of view.
func (o Outcome) Result() string {
	switch {
	case o.Kind == OutcomeTie:
		return "You crashed, it's a tie"
	case o.WinnerIs(Red):
		return "You Win"
	case o.WinnerIs(Green):
		return "You Lose"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeKill:
		return o.Winner.String() + "_win"
	case OutcomeTie:
		return "tie"
	default:
		return "undecided"
	}
}
