package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Garsondee/RobotWar/internal/fuzzy"
)

// Match is a headless arena harness. It mirrors what the viewer drives
// frame by frame but steps directly, with deterministic seeding and a
// shared MatchLog. Used by tests and the headless report.
type Match struct {
	ID    uuid.UUID
	Arena *Arena
	Log   *MatchLog

	cfg     Config
	seed    int64
	rng     Rand
	logger  *slog.Logger
	verbose bool

	placed   [2]bool
	scatter  bool
	deciders [2]Decider
	assigned [2]bool

	err error
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptInfra   matchOptionKind = iota // grid, interval, seed, verbose, logger
	matchOptRobot                          // placement, after the arena exists
	matchOptDecider                        // deciders, after robots are placed
)

// MatchOption is a builder function applied to a Match during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*Match)
}

// WithGridSize sets the arena side length.
func WithGridSize(n int) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.cfg.GridSize = n }}
}

// WithTickInterval sets the interval Advance waits between steps.
func WithTickInterval(d time.Duration) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.cfg.TickInterval = d }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.seed = seed }}
}

// WithVerbose enables per-tick grade logging.
func WithVerbose(v bool) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.verbose = v }}
}

// WithPipelineVariant selects the rule ordering used by fuzzy deciders.
func WithPipelineVariant(v Variant) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.cfg.Variant = v }}
}

// WithLogger sets the structured logger passed to the arena.
func WithLogger(l *slog.Logger) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}}
}

// WithMatchID overrides the generated match ID.
func WithMatchID(id uuid.UUID) MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.ID = id }}
}

// WithRed places the red robot.
func WithRed(x, y int, h Heading) MatchOption {
	return withPlacement(Red, x, y, h)
}

// WithGreen places the green robot.
func WithGreen(x, y int, h Heading) MatchOption {
	return withPlacement(Green, x, y, h)
}

func withPlacement(side Side, x, y int, h Heading) MatchOption {
	return MatchOption{matchOptRobot, func(m *Match) {
		if err := m.Arena.Place(side, Cell{X: x, Y: y}, h); err != nil && m.err == nil {
			m.err = err
		}
		m.placed[side] = true
	}}
}

// WithRandomPlacement scatters both robots into opposite corners using the
// match seed. Explicit WithRed/WithGreen placements are applied afterwards.
func WithRandomPlacement() MatchOption {
	return MatchOption{matchOptInfra, func(m *Match) { m.scatter = true }}
}

// WithRedDecider overrides red's decider. A nil decider selects the d20
// fallback policy.
func WithRedDecider(d Decider) MatchOption {
	return withDecider(Red, d)
}

// WithGreenDecider overrides green's decider.
func WithGreenDecider(d Decider) MatchOption {
	return withDecider(Green, d)
}

func withDecider(side Side, d Decider) MatchOption {
	return MatchOption{matchOptDecider, func(m *Match) {
		m.deciders[side] = d
		m.assigned[side] = true
	}}
}

// NewMatch constructs a started Match from the given options in ordered
// passes:
//  1. Infrastructure (grid, interval, seed, verbose, logger)
//  2. Build the arena, scatter if requested
//  3. Robot placement
//  4. Deciders; unassigned sides get a fuzzy decider
func NewMatch(opts ...MatchOption) (*Match, error) {
	m := &Match{
		cfg:    DefaultConfig(),
		seed:   1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(m)
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.rng = NewRand(m.seed)
	m.Log = NewMatchLog(m.verbose)

	arena, err := NewArena(m.cfg,
		WithArenaRand(m.rng),
		WithMatchLog(m.Log),
		WithArenaLogger(m.logger.With("match", m.ID.String())))
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	m.Arena = arena
	m.defaultPlacement()

	for _, o := range opts {
		if o.kind == matchOptRobot {
			o.fn(m)
		}
	}
	if m.err != nil {
		return nil, fmt.Errorf("new match: %w", m.err)
	}
	for _, o := range opts {
		if o.kind == matchOptDecider {
			o.fn(m)
		}
	}
	for _, side := range []Side{Red, Green} {
		d := m.deciders[side]
		if !m.assigned[side] {
			d = m.fuzzyDecider(side)
		}
		m.Arena.SetDecider(side, d)
	}

	m.Arena.Start()
	return m, nil
}

// defaultPlacement puts the robots in opposite corners facing each other
// unless random placement was requested.
func (m *Match) defaultPlacement() {
	if m.scatter {
		m.Arena.RandomPlacement()
		return
	}
	n := m.cfg.GridSize
	_ = m.Arena.Place(Red, Cell{X: 0, Y: 0}, NorthEast)
	_ = m.Arena.Place(Green, Cell{X: n - 1, Y: n - 1}, SouthWest)
}

func (m *Match) fuzzyDecider(side Side) *FuzzyDecider {
	d := NewFuzzyDecider(m.cfg.Variant, m.rng)
	label := side.Label()
	d.OnEvaluate = func(kb *fuzzy.KnowledgeBase, chosen Action) {
		if !m.Log.Verbose() {
			return
		}
		tick := m.Arena.Tick()
		for _, e := range kb.Facts() {
			m.Log.AddVerbose(tick, label, "grade", string(e.Fact),
				fmt.Sprintf("%.3f", e.Grade), e.Grade)
		}
		m.Log.AddVerbose(tick, label, "grade", "chosen", chosen.String(), kb.Grade(chosen.Fact()))
	}
	return d
}

// Config returns the arena configuration in use.
func (m *Match) Config() Config { return m.cfg }

// Seed returns the RNG seed.
func (m *Match) Seed() int64 { return m.seed }

// Tick returns the current arena tick.
func (m *Match) Tick() int { return m.Arena.Tick() }

// Done reports whether the match has been decided.
func (m *Match) Done() bool { return m.Arena.State() != StateRunning }

// RunTicks steps the arena up to n times, stopping once the match is
// decided. It returns the number of steps taken.
func (m *Match) RunTicks(n int) int {
	ran := 0
	for i := 0; i < n && !m.Done(); i++ {
		m.Arena.Step()
		ran++
	}
	return ran
}

// RunUntil steps up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which the predicate held, or -1.
func (m *Match) RunUntil(predicate func(*Match) bool, maxTicks int) int {
	for i := 0; i < maxTicks && !m.Done(); i++ {
		m.Arena.Step()
		if predicate(m) {
			return m.Arena.Tick()
		}
	}
	return -1
}

// Report summarises the match so far.
func (m *Match) Report() MatchReport {
	return MatchReport{
		ID:       m.ID,
		Seed:     m.seed,
		Variant:  m.cfg.Variant,
		GridSize: m.cfg.GridSize,
		Ticks:    m.Arena.Tick(),
		Outcome:  m.Arena.Outcome(),
		Red:      m.Arena.Robot(Red).Stats,
		Green:    m.Arena.Robot(Green).Stats,
	}
}
