// Package script compiles a small robot language into game.Decider values.
//
//	# circle the arena, firing whenever the enemy is lined up
//	repeat 3 { forward }
//	if inrange { fire } else { left }
//	if not seen { radar }
package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/RobotWar/internal/game"
)

type opcode int

const (
	opAct    opcode = iota // yield action
	opBranch               // jump to target when cond is false
	opJump                 // jump to target
	opRepeat               // load counter slot with count; jump to target if zero
	opNext                 // decrement slot; jump to target while positive
)

type instr struct {
	op     opcode
	action game.Action
	cond   Cond
	target int
	slot   int
	count  int
}

// Program is a compiled script. It is immutable; each Decider call returns
// an independent cursor over it.
type Program struct {
	Name  string
	code  []instr
	loops int
}

// Parse compiles src. Errors carry the line and column of the problem.
func Parse(name, src string) (*Program, error) {
	f, err := parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	p := &Program{Name: name}
	p.compile(f.Stmts)
	return p, nil
}

// ParseFile reads and compiles the script at path.
func ParseFile(path string) (*Program, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(path, string(src))
}

func (p *Program) compile(stmts []*Stmt) {
	for _, s := range stmts {
		switch {
		case s.Action != nil:
			p.code = append(p.code, instr{op: opAct, action: actionFor(*s.Action)})
		case s.Repeat != nil:
			slot := p.loops
			p.loops++
			head := len(p.code)
			p.code = append(p.code, instr{op: opRepeat, slot: slot, count: s.Repeat.Count})
			p.compile(s.Repeat.Body)
			p.code = append(p.code, instr{op: opNext, slot: slot, target: head + 1})
			p.code[head].target = len(p.code)
		case s.If != nil:
			branch := len(p.code)
			p.code = append(p.code, instr{op: opBranch, cond: *s.If.Cond})
			p.compile(s.If.Then)
			if len(s.If.Else) == 0 {
				p.code[branch].target = len(p.code)
				continue
			}
			jump := len(p.code)
			p.code = append(p.code, instr{op: opJump})
			p.code[branch].target = len(p.code)
			p.compile(s.If.Else)
			p.code[jump].target = len(p.code)
		}
	}
}

func actionFor(word string) game.Action {
	switch word {
	case "forward":
		return game.MoveForward
	case "right":
		return game.TurnRight
	case "fire":
		return game.FireLaser
	case "radar":
		return game.Radar
	default:
		return game.TurnLeft
	}
}

// Len is the number of compiled instructions.
func (p *Program) Len() int { return len(p.code) }

// String disassembles the program, one instruction per line.
func (p *Program) String() string {
	var sb strings.Builder
	for i, in := range p.code {
		fmt.Fprintf(&sb, "%04d ", i)
		switch in.op {
		case opAct:
			fmt.Fprintf(&sb, "act    %s", in.action)
		case opBranch:
			fmt.Fprintf(&sb, "unless %s -> %04d", in.cond, in.target)
		case opJump:
			fmt.Fprintf(&sb, "jump   %04d", in.target)
		case opRepeat:
			fmt.Fprintf(&sb, "repeat s%d=%d else %04d", in.slot, in.count, in.target)
		case opNext:
			fmt.Fprintf(&sb, "next   s%d -> %04d", in.slot, in.target)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c Cond) String() string {
	if c.Not {
		return "not " + c.Sensor
	}
	return c.Sensor
}

// Eval reads the sensor from gs.
func (c Cond) Eval(gs game.GameState) bool {
	var v bool
	switch c.Sensor {
	case "wall":
		v = gs.IsFacingWall()
	case "laser":
		v = gs.LaserCharge() > 0
	case "radar":
		v = gs.RadarCharge() > 0
	case "seen":
		// Every action ages the sighting by one, so a reveal on the
		// previous tick reads as 1 here.
		v = gs.TicksSinceEnemySeen() <= 1
	case "inrange":
		v = enemyInLine(gs)
	}
	return v != c.Not
}

func enemyInLine(gs game.GameState) bool {
	for i := 1; i <= gs.LaserCharge(); i++ {
		if gs.ForwardCells(gs.Heading(), i) == gs.Enemy() {
			return true
		}
	}
	return false
}
