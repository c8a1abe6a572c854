package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/RobotWar/internal/fuzzy"
)

// Facts asserted by the rule pipeline.
const (
	FactPosCertainty   fuzzy.Fact = "posCertainty"
	FactPosUncertainty fuzzy.Fact = "posUncertainty"
	FactIsNear         fuzzy.Fact = "isNear"
	FactHasLaser       fuzzy.Fact = "hasLaser"
	FactHasRadar       fuzzy.Fact = "hasRadar"

	FactTurnRight   fuzzy.Fact = "turnRight"
	FactTurnLeft    fuzzy.Fact = "turnLeft"
	FactMoveForward fuzzy.Fact = "moveForward"
	FactRadar       fuzzy.Fact = "radar"
	FactFireLaser   fuzzy.Fact = "fireLaser"
)

// certaintyDecay is how much position certainty is lost per unseen tick.
const certaintyDecay = 0.05

// wanderProbe is how many cells ahead the wander rule checks for room.
const wanderProbe = 3

// Variant selects between the two recorded orderings of the certainty rules.
type Variant int

const (
	// CertaintyFirst derives certainty from ticks unseen, uncertainty as its
	// complement, and caps nearness by certainty.
	CertaintyFirst Variant = iota
	// UncertaintyFirst derives uncertainty first and leaves nearness uncapped.
	UncertaintyFirst
)

func (v Variant) String() string {
	switch v {
	case CertaintyFirst:
		return "certainty-first"
	case UncertaintyFirst:
		return "uncertainty-first"
	default:
		return "unknown"
	}
}

// ParseVariant accepts the names produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "certainty-first", "certainty":
		return CertaintyFirst, nil
	case "uncertainty-first", "uncertainty", "legacy":
		return UncertaintyFirst, nil
	default:
		return 0, fmt.Errorf("unknown pipeline variant %q", s)
	}
}

// Pipeline is the ordered fuzzy rule set evaluated against a GameState.
type Pipeline = fuzzy.Engine[GameState]

// NewRulePipeline builds the rule set for v. Order matters: each rule may
// read facts asserted by the ones before it, and later asserts overwrite
// earlier ones.
func NewRulePipeline(v Variant) *Pipeline {
	p := fuzzy.NewEngine[GameState]()
	if v == UncertaintyFirst {
		p.Add("posUncertainty", posUncertaintyRule).
			Add("posCertainty", posCertaintyFromUncertaintyRule).
			Add("isNear", isNearRule)
	} else {
		p.Add("posCertainty", posCertaintyRule).
			Add("posUncertainty", posUncertaintyFromCertaintyRule).
			Add("isNear", isNearCappedRule)
	}
	return p.
		Add("hasLaser", hasLaserRule).
		Add("hasRadar", hasRadarRule).
		Add("attack", attackRule).
		Add("wander", wanderRule).
		Add("fire", fireRule).
		Add("radar", radarRule)
}

// Position certainty falls off linearly with time since the last radar hit.
func posCertaintyRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	kb.Assert(FactPosCertainty, 1.0-certaintyDecay*float64(gs.TicksSinceEnemySeen()))
}

func posUncertaintyFromCertaintyRule(kb *fuzzy.KnowledgeBase, _ GameState) {
	kb.Assert(FactPosUncertainty, fuzzy.Not(kb.Grade(FactPosCertainty)))
}

func posUncertaintyRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	kb.Assert(FactPosUncertainty, certaintyDecay*float64(gs.TicksSinceEnemySeen()))
}

func posCertaintyFromUncertaintyRule(kb *fuzzy.KnowledgeBase, _ GameState) {
	kb.Assert(FactPosCertainty, fuzzy.Not(kb.Grade(FactPosUncertainty)))
}

// nearness is 1 on top of the enemy and 0 at the far corner.
func nearness(gs GameState) float64 {
	maxDist := gs.MaximumDistance()
	if maxDist <= 0 {
		return 0
	}
	return 1.0 - gs.EnemyDistance()/maxDist
}

func isNearRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	kb.Assert(FactIsNear, nearness(gs))
}

// A stale sighting must not report the enemy as close.
func isNearCappedRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	kb.Assert(FactIsNear, min(nearness(gs), kb.Grade(FactPosCertainty)))
}

func hasLaserRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	kb.Assert(FactHasLaser, float64(gs.LaserCharge())/float64(gs.MaxLaser()))
}

func hasRadarRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	if gs.MaxRadar() == 0 {
		kb.Assert(FactHasRadar, 0)
		return
	}
	kb.Assert(FactHasRadar, float64(gs.RadarCharge())/float64(gs.MaxRadar()))
}

// attackAction steers toward the last known enemy cell. It returns false
// when moving forward is best but the enemy is already within laser range,
// leaving the decision to the fire rule.
func attackAction(gs GameState) (Action, bool) {
	h := gs.Heading()
	fwd := gs.EnemyDistanceFrom(gs.ForwardCell(h))
	left := gs.EnemyDistanceFrom(gs.ForwardCell(h.Left()))
	right := gs.EnemyDistanceFrom(gs.ForwardCell(h.Right()))

	if fwd <= left && fwd <= right {
		if fwd > float64(gs.LaserCharge()) {
			return MoveForward, true
		}
		return 0, false
	}
	if left <= right {
		return TurnLeft, true
	}
	return TurnRight, true
}

func attackRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	if a, ok := attackAction(gs); ok {
		kb.Assert(a.Fact(), kb.Grade(FactPosCertainty))
	}
}

// Wander while the enemy position is unknown, turning away from walls early.
func wanderRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	u := kb.Grade(FactPosUncertainty)
	if gs.IsInBounds(gs.ForwardCells(gs.Heading(), wanderProbe)) {
		kb.Assert(FactMoveForward, u)
		return
	}
	kb.Assert(FactTurnLeft, u)
}

func fireRule(kb *fuzzy.KnowledgeBase, gs GameState) {
	if gs.IsFacingWall() {
		return
	}
	kb.Assert(FactFireLaser, kb.MinimumGrade(FactHasLaser, FactIsNear))
}

func radarRule(kb *fuzzy.KnowledgeBase, _ GameState) {
	kb.Assert(FactRadar, kb.MaximumGrade(FactHasRadar, FactPosUncertainty))
}
