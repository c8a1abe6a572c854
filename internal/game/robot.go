package game

// Side identifies one of the two robots.
type Side int

const (
	Red Side = iota
	Green
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Red {
		return Green
	}
	return Red
}

func (s Side) String() string {
	if s == Red {
		return "red"
	}
	return "green"
}

// Label is the short tag used in logs.
func (s Side) Label() string {
	if s == Red {
		return "R"
	}
	return "G"
}

// Robot is one combatant. The Arena owns both robots and is the only code
// that mutates them.
type Robot struct {
	side    Side
	cell    Cell
	heading Heading

	laserCharge int
	radarCharge int

	enemyCell  Cell
	enemyKnown bool
	ticksSince int

	decider Decider
	stats   RobotStats
}

// RobotStats counts what a robot did over a match.
type RobotStats struct {
	Moves        int
	BlockedMoves int
	Turns        int
	Shots        int
	Hits         int
	Scans        int
	Reveals      int
	DryActions   int // fire or radar attempted with no charge
}

func newRobot(side Side) *Robot {
	return &Robot{side: side}
}

// RobotSnapshot is a read-only copy of a robot for renderers and reports.
type RobotSnapshot struct {
	Side                Side
	Cell                Cell
	Heading             Heading
	LaserCharge         int
	RadarCharge         int
	EnemyCell           Cell
	EnemyKnown          bool
	TicksSinceEnemySeen int
	Stats               RobotStats
}

func (r *Robot) snapshot() RobotSnapshot {
	return RobotSnapshot{
		Side:                r.side,
		Cell:                r.cell,
		Heading:             r.heading,
		LaserCharge:         r.laserCharge,
		RadarCharge:         r.radarCharge,
		EnemyCell:           r.enemyCell,
		EnemyKnown:          r.enemyKnown,
		TicksSinceEnemySeen: r.ticksSince,
		Stats:               r.stats,
	}
}

// recharge runs after every action: both weapons gain one unit and the
// sighting ages by one tick.
func (r *Robot) recharge(maxLaser, maxRadar int) {
	r.laserCharge = min(r.laserCharge+1, maxLaser)
	r.radarCharge = min(r.radarCharge+1, maxRadar)
	r.ticksSince++
}

// FallbackDecider is the d20 policy used when a robot has no decider of
// its own.
type FallbackDecider struct {
	Die Rand
}

// Decide rolls 1-20: below 8 move if possible; below 12 fire if the path
// ahead is open and the laser holds more than 2, else radar if it holds
// more than 1; otherwise turn right on even rolls and left on odd.
func (d FallbackDecider) Decide(gs GameState) Action {
	roll := d.Die.Intn(20) + 1
	canMove := !gs.IsFacingWall()

	switch {
	case canMove && roll < 8:
		return MoveForward
	case canMove && gs.LaserCharge() > 2 && roll < 12:
		return FireLaser
	case gs.RadarCharge() > 1 && roll < 12:
		return Radar
	case roll%2 == 0:
		return TurnRight
	default:
		return TurnLeft
	}
}
