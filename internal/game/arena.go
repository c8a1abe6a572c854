package game

import (
	"fmt"
	"log/slog"
	"time"
)

// RunState is the arena lifecycle.
type RunState int

const (
	StateInitializing RunState = iota // robots being placed
	StateRunning                      // ticks are processed
	StateShowing                      // outcome decided, waiting for one display frame
	StateEnded                        // terminal; ticks ignored
)

func (s RunState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateShowing:
		return "showing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// LaserShot records one laser discharge for renderers.
type LaserShot struct {
	Side    Side
	From    Cell
	To      Cell // last traced cell
	Heading Heading
	Range   int
	Hit     bool
}

// RadarPing records one radar sweep for renderers.
type RadarPing struct {
	Side     Side
	Center   Cell
	Radius   int
	Revealed bool
}

// Arena owns both robots and runs the match.
type Arena struct {
	cfg      Config
	maxLaser int
	maxRadar int

	robots [2]*Robot
	state  RunState
	result Outcome

	tick         int
	now          time.Duration
	lastStep     time.Duration
	clockStarted bool

	// Effects produced during the most recent step.
	shots []LaserShot
	pings []RadarPing

	rng    Rand
	log    *MatchLog
	logger *slog.Logger
}

// ArenaOption customises an arena at construction.
type ArenaOption func(*Arena)

// WithArenaLogger sets the structured logger. The default discards.
func WithArenaLogger(l *slog.Logger) ArenaOption {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithArenaRand sets the random source used by fallback deciders and
// random placement.
func WithArenaRand(r Rand) ArenaOption {
	return func(a *Arena) {
		if r != nil {
			a.rng = r
		}
	}
}

// WithMatchLog directs match events into ml.
func WithMatchLog(ml *MatchLog) ArenaOption {
	return func(a *Arena) {
		if ml != nil {
			a.log = ml
		}
	}
}

// WithDecider installs a decider for one side.
func WithDecider(side Side, d Decider) ArenaOption {
	return func(a *Arena) {
		a.robots[side].decider = d
	}
}

// NewArena validates cfg and returns an arena in StateInitializing with
// both robots at the origin facing north.
func NewArena(cfg Config, opts ...ArenaOption) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Arena{
		cfg:      cfg,
		maxLaser: cfg.MaxLaser(),
		maxRadar: cfg.MaxRadar(),
		robots:   [2]*Robot{newRobot(Red), newRobot(Green)},
		rng:      NewRand(1),
		log:      NewMatchLog(false),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Config returns the arena configuration.
func (a *Arena) Config() Config { return a.cfg }

// State returns the lifecycle state.
func (a *Arena) State() RunState { return a.state }

// Outcome returns the match result so far.
func (a *Arena) Outcome() Outcome { return a.result }

// Tick returns the number of steps taken.
func (a *Arena) Tick() int { return a.tick }

// Log returns the match log.
func (a *Arena) Log() *MatchLog { return a.log }

// SetDecider replaces the decider for side. A nil decider selects the
// fallback d20 policy.
func (a *Arena) SetDecider(side Side, d Decider) {
	a.robots[side].decider = d
}

// IsInBounds reports whether c lies on the grid.
func (a *Arena) IsInBounds(c Cell) bool {
	return c.X >= 0 && c.X < a.cfg.GridSize && c.Y >= 0 && c.Y < a.cfg.GridSize
}

// Place positions a robot. It is meant for setup but is valid at any time.
func (a *Arena) Place(side Side, c Cell, h Heading) error {
	if !a.IsInBounds(c) {
		return fmt.Errorf("place %s at %s: %w", side, c, ErrOutOfBounds)
	}
	r := a.robots[side]
	r.cell = c
	r.heading = h.normalized()
	return nil
}

// SetCharges overrides a robot's weapon charges, clamped to the arena caps.
// Used to set up scenarios.
func (a *Arena) SetCharges(side Side, laser, radar int) {
	r := a.robots[side]
	r.laserCharge = max(0, min(laser, a.maxLaser))
	r.radarCharge = max(0, min(radar, a.maxRadar))
}

// RandomPlacement puts red near the origin and green near the far corner,
// each within the nearest third of the board, and spins both to a random
// heading.
func (a *Arena) RandomPlacement() {
	n := a.cfg.GridSize
	roll := func() int { return a.rng.Intn(n) }

	red, green := a.robots[Red], a.robots[Green]
	red.cell = Cell{X: roll() / 3, Y: roll() / 3}
	green.cell = Cell{X: n - 1 - roll()/3, Y: n - 1 - roll()/3}
	for i := roll() * 3; i > 0; i-- {
		red.heading = red.heading.Left()
	}
	for i := roll() * 3; i > 0; i-- {
		green.heading = green.heading.Right()
	}
}

// Start seeds each robot with the opponent's true starting cell and begins
// processing ticks. It has no effect once the match has started.
func (a *Arena) Start() {
	if a.state != StateInitializing {
		return
	}
	for _, side := range []Side{Red, Green} {
		r := a.robots[side]
		r.enemyCell = a.robots[side.Opponent()].cell
		r.enemyKnown = true
		r.ticksSince = 0
	}
	a.state = StateRunning
	a.logger.Info("match started",
		"grid", a.cfg.GridSize,
		"red", a.robots[Red].cell.String(),
		"green", a.robots[Green].cell.String())
	a.log.Add(a.tick, "--", "match", "start",
		fmt.Sprintf("red %s %s, green %s %s",
			a.robots[Red].cell, a.robots[Red].heading,
			a.robots[Green].cell, a.robots[Green].heading), 0)
}

// Advance is the per-frame entry point. The first call only starts the
// clock; after that a full step runs whenever more than TickInterval has
// elapsed since the previous one. It reports whether a step ran.
func (a *Arena) Advance(now time.Duration) bool {
	a.now = now
	switch a.state {
	case StateRunning:
	case StateShowing:
		a.state = StateEnded
		return false
	default:
		return false
	}
	if !a.clockStarted {
		a.clockStarted = true
		a.lastStep = now
		return false
	}
	if now-a.lastStep <= a.cfg.TickInterval {
		return false
	}
	a.Step()
	a.lastStep = now
	return true
}

// Step runs one decision and action for red, then for green if the match
// is still undecided, then checks for a collision.
func (a *Arena) Step() {
	if a.state != StateRunning {
		return
	}
	a.tick++
	a.shots = a.shots[:0]
	a.pings = a.pings[:0]

	for _, side := range []Side{Red, Green} {
		if a.state != StateRunning {
			a.log.Add(a.tick, side.Label(), "decide", "skipped", "match already decided", 0)
			break
		}
		a.takeTurn(side)
	}

	if a.state == StateRunning && a.robots[Red].cell == a.robots[Green].cell {
		a.finish(Outcome{Kind: OutcomeTie})
	}
}

func (a *Arena) takeTurn(side Side) {
	gs := NewGameState(a.Perception(side))
	action := a.decider(side).Decide(gs)
	a.log.Add(a.tick, side.Label(), "decide", "action", action.String(), 0)
	a.Apply(side, action)
}

func (a *Arena) decider(side Side) Decider {
	if d := a.robots[side].decider; d != nil {
		return d
	}
	return FallbackDecider{Die: a.rng}
}

// Perception builds the raw view side has of the world this tick.
func (a *Arena) Perception(side Side) Perception {
	r := a.robots[side]
	return Perception{
		Self:                r.cell,
		Heading:             r.heading,
		EnemyKnown:          r.enemyKnown,
		Enemy:               r.enemyCell,
		TicksSinceEnemySeen: r.ticksSince,
		LaserCharge:         r.laserCharge,
		MaxLaser:            a.maxLaser,
		RadarCharge:         r.radarCharge,
		MaxRadar:            a.maxRadar,
		Width:               a.cfg.GridSize,
		Height:              a.cfg.GridSize,
		Now:                 a.now,
	}
}

// Apply executes one action for side and then recharges it.
func (a *Arena) Apply(side Side, action Action) {
	r := a.robots[side]
	switch action {
	case TurnLeft:
		r.heading = r.heading.Left()
		r.stats.Turns++
	case TurnRight:
		r.heading = r.heading.Right()
		r.stats.Turns++
	case MoveForward:
		a.move(r)
	case Radar:
		a.Scan(side)
	case FireLaser:
		a.Fire(side)
	}
	r.recharge(a.maxLaser, a.maxRadar)
	a.logger.Debug("robot acted",
		"tick", a.tick,
		"robot", side.String(),
		"action", action.String(),
		"cell", r.cell.String(),
		"heading", r.heading.String(),
		"laser", r.laserCharge,
		"radar", r.radarCharge)
}

func (a *Arena) move(r *Robot) {
	next := r.heading.Forward(r.cell)
	if !a.IsInBounds(next) {
		r.stats.BlockedMoves++
		a.log.Add(a.tick, r.side.Label(), "act", "blocked", next.String(), 0)
		return
	}
	r.cell = next
	r.stats.Moves++
}

// Fire discharges side's laser along its heading for as many cells as it
// has charge. A trace crossing the opponent's cell wins the match. The
// charge is spent whether or not it hits. With no charge nothing happens
// and ok is false.
func (a *Arena) Fire(side Side) (shot LaserShot, ok bool) {
	r := a.robots[side]
	if r.laserCharge == 0 {
		r.stats.DryActions++
		return LaserShot{}, false
	}
	target := a.robots[side.Opponent()].cell

	shot = LaserShot{Side: side, From: r.cell, Heading: r.heading, Range: r.laserCharge}
	c := r.cell
	for i := 0; i < r.laserCharge; i++ {
		c = r.heading.Forward(c)
		if c == target {
			shot.Hit = true
		}
	}
	shot.To = c
	r.laserCharge = 0
	r.stats.Shots++
	a.shots = append(a.shots, shot)

	key := "miss"
	if shot.Hit {
		key = "hit"
		r.stats.Hits++
	}
	a.log.Add(a.tick, side.Label(), "laser", key,
		fmt.Sprintf("%s %s range=%d", shot.From, shot.Heading, shot.Range), float64(shot.Range))
	if shot.Hit {
		a.finish(Outcome{Kind: OutcomeKill, Winner: side})
	}
	return shot, true
}

// Scan sweeps side's radar. The opponent is revealed when it lies within
// Chebyshev distance radarCharge; the charge is spent either way. With no
// charge nothing happens and ok is false.
func (a *Arena) Scan(side Side) (ping RadarPing, ok bool) {
	r := a.robots[side]
	if r.radarCharge == 0 {
		r.stats.DryActions++
		return RadarPing{}, false
	}
	enemy := a.robots[side.Opponent()].cell

	ping = RadarPing{Side: side, Center: r.cell, Radius: r.radarCharge}
	if r.cell.Chebyshev(enemy) <= r.radarCharge {
		ping.Revealed = true
		r.enemyCell = enemy
		r.enemyKnown = true
		r.ticksSince = 0
		r.stats.Reveals++
	}
	r.radarCharge = 0
	r.stats.Scans++
	a.pings = append(a.pings, ping)

	key := "empty"
	if ping.Revealed {
		key = "contact"
	}
	a.log.Add(a.tick, side.Label(), "radar", key,
		fmt.Sprintf("%s radius=%d", ping.Center, ping.Radius), float64(ping.Radius))
	return ping, true
}

// finish records the first terminal outcome and moves to StateShowing.
func (a *Arena) finish(o Outcome) {
	if a.result.Decided() {
		return
	}
	o.Tick = a.tick
	a.result = o
	a.state = StateShowing
	a.log.Add(a.tick, "--", "outcome", o.Kind.String(), o.Result(), 0)
	a.logger.Info("match decided", "tick", a.tick, "outcome", o.String(), "result", o.Result())
}

// ArenaSnapshot is everything a renderer needs after a step.
type ArenaSnapshot struct {
	Tick     int
	State    RunState
	Outcome  Outcome
	GridSize int
	MaxLaser int
	MaxRadar int
	Red      RobotSnapshot
	Green    RobotSnapshot
	Shots    []LaserShot
	Pings    []RadarPing
}

// Snapshot copies the current world state.
func (a *Arena) Snapshot() ArenaSnapshot {
	return ArenaSnapshot{
		Tick:     a.tick,
		State:    a.state,
		Outcome:  a.result,
		GridSize: a.cfg.GridSize,
		MaxLaser: a.maxLaser,
		MaxRadar: a.maxRadar,
		Red:      a.robots[Red].snapshot(),
		Green:    a.robots[Green].snapshot(),
		Shots:    append([]LaserShot(nil), a.shots...),
		Pings:    append([]RadarPing(nil), a.pings...),
	}
}

// Robot returns a snapshot of one robot.
func (a *Arena) Robot(side Side) RobotSnapshot {
	return a.robots[side].snapshot()
}
