package game

import (
	"math"
	"time"
)

// unknownEnemyTicks stands in for "never seen" so certainty decays to zero.
const unknownEnemyTicks = 1000

// Perception is the raw input a robot hands to its decider each tick.
// Zero values are tolerated; NewGameState fills in neutral defaults.
type Perception struct {
	Self    Cell
	Heading Heading

	EnemyKnown          bool // false when the robot has no sighting to go on
	Enemy               Cell // last known enemy cell
	TicksSinceEnemySeen int

	LaserCharge int
	MaxLaser    int
	RadarCharge int
	MaxRadar    int

	Width, Height int
	Now           time.Duration
}

// GameState is an immutable view over one robot's perception with the
// geometric queries the rule pipeline needs.
type GameState struct {
	self    Cell
	heading Heading

	enemy      Cell
	ticksSince int

	width, height int
	now           time.Duration

	laserCharge, maxLaser int
	radarCharge, maxRadar int
}

// NewGameState builds a view from p, substituting safe defaults for
// anything missing or out of range.
func NewGameState(p Perception) GameState {
	gs := GameState{
		self:        p.Self,
		heading:     p.Heading.normalized(),
		enemy:       p.Enemy,
		ticksSince:  p.TicksSinceEnemySeen,
		width:       max(p.Width, 0),
		height:      max(p.Height, 0),
		now:         p.Now,
		laserCharge: max(p.LaserCharge, 0),
		maxLaser:    p.MaxLaser,
		radarCharge: max(p.RadarCharge, 0),
		maxRadar:    max(p.MaxRadar, 0),
	}
	if !p.EnemyKnown {
		gs.ticksSince = unknownEnemyTicks
	}
	if gs.ticksSince < 0 {
		gs.ticksSince = 0
	}
	if gs.maxLaser <= 0 {
		gs.maxLaser = 1
	}
	return gs
}

func (gs GameState) Self() Cell               { return gs.self }
func (gs GameState) Heading() Heading         { return gs.heading }
func (gs GameState) Enemy() Cell              { return gs.enemy }
func (gs GameState) TicksSinceEnemySeen() int { return gs.ticksSince }
func (gs GameState) LaserCharge() int         { return gs.laserCharge }
func (gs GameState) MaxLaser() int            { return gs.maxLaser }
func (gs GameState) RadarCharge() int         { return gs.radarCharge }
func (gs GameState) MaxRadar() int            { return gs.maxRadar }
func (gs GameState) Width() int               { return gs.width }
func (gs GameState) Height() int              { return gs.height }
func (gs GameState) Now() time.Duration       { return gs.now }

// EnemyDistance is the Euclidean distance from the robot to the last known
// enemy cell.
func (gs GameState) EnemyDistance() float64 {
	return gs.EnemyDistanceFrom(gs.self)
}

// EnemyDistanceFrom is the Euclidean distance from c to the last known enemy cell.
func (gs GameState) EnemyDistanceFrom(c Cell) float64 {
	return c.Distance(gs.enemy)
}

// MaximumDistance is the arena diagonal, used to normalise distances.
func (gs GameState) MaximumDistance() float64 {
	return math.Hypot(float64(gs.width), float64(gs.height))
}

// IsInBounds reports whether c lies inside [0,width) x [0,height).
func (gs GameState) IsInBounds(c Cell) bool {
	return c.X >= 0 && c.X < gs.width && c.Y >= 0 && c.Y < gs.height
}

// IsFacingWall reports whether one step forward would leave the arena.
func (gs GameState) IsFacingWall() bool {
	return !gs.IsInBounds(gs.heading.Forward(gs.self))
}

// ForwardCell is the cell one step from the robot along h.
func (gs GameState) ForwardCell(h Heading) Cell {
	return gs.ForwardCells(h, 1)
}

// ForwardCells steps along h from the robot's cell. The result may lie
// outside the arena; callers test it with IsInBounds.
func (gs GameState) ForwardCells(h Heading, steps int) Cell {
	c := gs.self
	for i := 0; i < steps; i++ {
		c = h.Forward(c)
	}
	return c
}
