package script

import "github.com/Garsondee/RobotWar/internal/game"

// maxSteps bounds the instructions executed for one decision so that
// action-free loops cannot stall a tick.
const maxSteps = 10_000

// idleAction is returned when a full pass over the program yields nothing.
const idleAction = game.TurnLeft

// Runner steps through a Program, yielding one action per decision and
// wrapping to the start when it reaches the end.
type Runner struct {
	prog     *Program
	pc       int
	counters []int
}

// Decider returns a fresh runner positioned at the start of p.
func (p *Program) Decider() *Runner {
	return &Runner{prog: p, counters: make([]int, p.loops)}
}

// Reset rewinds the runner to the start of the program.
func (r *Runner) Reset() {
	r.pc = 0
	clear(r.counters)
}

// PC is the index of the next instruction to execute.
func (r *Runner) PC() int { return r.pc }

// Decide implements game.Decider.
func (r *Runner) Decide(gs game.GameState) game.Action {
	code := r.prog.code
	wrapped := false
	for steps := 0; steps < maxSteps; steps++ {
		if r.pc >= len(code) {
			r.pc = 0
			if wrapped {
				return idleAction
			}
			wrapped = true
			continue
		}
		in := code[r.pc]
		r.pc++
		switch in.op {
		case opAct:
			return in.action
		case opBranch:
			if !in.cond.Eval(gs) {
				r.pc = in.target
			}
		case opJump:
			r.pc = in.target
		case opRepeat:
			r.counters[in.slot] = in.count
			if in.count <= 0 {
				r.pc = in.target
			}
		case opNext:
			r.counters[in.slot]--
			if r.counters[in.slot] > 0 {
				r.pc = in.target
			}
		}
	}
	return idleAction
}
