package game

import (
	"math/rand"

	"github.com/Garsondee/RobotWar/internal/fuzzy"
)

// Action is a discrete robot command for one tick.
type Action int

const (
	TurnRight Action = iota
	TurnLeft
	MoveForward
	Radar
	FireLaser
)

// AllActions lists every action in the order ties are collected.
var AllActions = []Action{TurnRight, TurnLeft, MoveForward, Radar, FireLaser}

// Fact returns the fuzzy fact that grades this action.
func (a Action) Fact() fuzzy.Fact {
	switch a {
	case TurnRight:
		return FactTurnRight
	case TurnLeft:
		return FactTurnLeft
	case MoveForward:
		return FactMoveForward
	case Radar:
		return FactRadar
	case FireLaser:
		return FactFireLaser
	default:
		return ""
	}
}

func (a Action) String() string {
	return string(a.Fact())
}

// actionFacts is AllActions mapped to their facts.
func actionFacts() []fuzzy.Fact {
	out := make([]fuzzy.Fact, len(AllActions))
	for i, a := range AllActions {
		out[i] = a.Fact()
	}
	return out
}

// Rand is the randomness the engine needs: a uniform integer in [0,n).
// *rand.Rand satisfies it; tests supply fixed sequences.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source for simulation use.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only
}

//go:generate go tool mockgen -destination=./mocks/decider_mock.go -package=mocks . Decider

// Decider chooses a robot's next action from its view of the world.
type Decider interface {
	Decide(state GameState) Action
}

// DeciderFunc adapts a plain function to Decider.
type DeciderFunc func(state GameState) Action

// Decide calls f.
func (f DeciderFunc) Decide(state GameState) Action {
	return f(state)
}

// SelectAction picks the highest-graded action fact in kb. Ties are broken
// uniformly at random through rng; with no action facts asserted all five
// tie at 0.
func SelectAction(kb *fuzzy.KnowledgeBase, rng Rand) Action {
	set := kb.Maximal(actionFacts()...)
	tied := make([]Action, 0, len(set.Facts))
	for _, a := range AllActions {
		if kb.Grade(a.Fact()) == set.Grade {
			tied = append(tied, a)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.Intn(len(tied))]
}

// FuzzyDecider runs the rule pipeline and selects an action from the
// resulting grades.
type FuzzyDecider struct {
	Pipeline *Pipeline
	Rand     Rand

	// OnEvaluate, when set, receives the knowledge base after evaluation
	// and the chosen action. Used for logging and inspection.
	OnEvaluate func(kb *fuzzy.KnowledgeBase, chosen Action)
}

// NewFuzzyDecider returns a decider using the given pipeline variant.
func NewFuzzyDecider(v Variant, rng Rand) *FuzzyDecider {
	return &FuzzyDecider{Pipeline: NewRulePipeline(v), Rand: rng}
}

// Decide implements Decider.
func (d *FuzzyDecider) Decide(state GameState) Action {
	kb := d.Pipeline.Evaluate(state)
	a := SelectAction(kb, d.Rand)
	if d.OnEvaluate != nil {
		d.OnEvaluate(kb, a)
	}
	return a
}
