package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// MatchReport summarises a single match.
type MatchReport struct {
	ID       uuid.UUID
	Seed     int64
	Variant  Variant
	GridSize int
	Ticks    int
	Outcome  Outcome
	Red      RobotStats
	Green    RobotStats
}

// Stats returns the counters for side.
func (r MatchReport) Stats(side Side) RobotStats {
	if side == Red {
		return r.Red
	}
	return r.Green
}

func (r MatchReport) String() string {
	return fmt.Sprintf("match %s seed=%d grid=%d variant=%s ticks=%d outcome=%s  red[%s]  green[%s]",
		shortID(r.ID), r.Seed, r.GridSize, r.Variant, r.Ticks, r.Outcome,
		formatStats(r.Red), formatStats(r.Green))
}

func formatStats(s RobotStats) string {
	return fmt.Sprintf("moves=%d blocked=%d turns=%d shots=%d hits=%d scans=%d reveals=%d dry=%d",
		s.Moves, s.BlockedMoves, s.Turns, s.Shots, s.Hits, s.Scans, s.Reveals, s.DryActions)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// RobotGrade scores one robot's play over a match.
type RobotGrade struct {
	Side   Side
	Score  float64 // 0-100
	Letter string
	Traits []string
}

// GradeRobot scores side in r. Winning dominates; accuracy, radar use and
// wasted actions adjust the rest.
func GradeRobot(r MatchReport, side Side) RobotGrade {
	s := r.Stats(side)
	g := RobotGrade{Side: side}

	score := 40.0
	switch {
	case r.Outcome.WinnerIs(side):
		score += 40
		g.Traits = append(g.Traits, "winner")
	case r.Outcome.Kind == OutcomeTie:
		score -= 10
		g.Traits = append(g.Traits, "crashed")
	case r.Outcome.Decided():
		score -= 20
	}

	acc := gradeFrac(s.Hits, s.Shots)
	score += 15 * acc
	if s.Shots >= 3 && acc == 0 {
		g.Traits = append(g.Traits, "trigger_happy")
	}
	reveal := gradeFrac(s.Reveals, s.Scans)
	score += 10 * reveal
	if s.Scans > 0 && reveal >= 0.5 {
		g.Traits = append(g.Traits, "good_radar")
	}

	acted := s.Moves + s.BlockedMoves + s.Turns + s.Shots + s.Scans + s.DryActions
	waste := gradeFrac(s.BlockedMoves+s.DryActions, acted)
	score -= 20 * waste
	if waste > 0.25 {
		g.Traits = append(g.Traits, "wall_hugger")
	}

	g.Score = gradeClamp(score)
	g.Letter = LetterGrade(g.Score)
	return g
}

// LetterGrade maps a 0-100 score to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func gradeFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func gradeClamp(s float64) float64 {
	return max(0, min(100, s))
}

// AggregateReport rolls many matches up into totals.
type AggregateReport struct {
	Matches   int
	RedWins   int
	GreenWins int
	Ties      int
	Undecided int

	MinTicks  int // decided matches only
	MaxTicks  int
	MeanTicks float64

	Red   RobotStats
	Green RobotStats

	// Traits counts grade traits per side.
	RedTraits   map[string]int
	GreenTraits map[string]int
	RedScore    float64 // mean grade score
	GreenScore  float64
}

// AggregateReports totals reports.
func AggregateReports(reports []MatchReport) AggregateReport {
	agg := AggregateReport{
		Matches:     len(reports),
		RedTraits:   map[string]int{},
		GreenTraits: map[string]int{},
	}
	decided, tickSum := 0, 0
	for _, r := range reports {
		switch {
		case r.Outcome.WinnerIs(Red):
			agg.RedWins++
		case r.Outcome.WinnerIs(Green):
			agg.GreenWins++
		case r.Outcome.Kind == OutcomeTie:
			agg.Ties++
		default:
			agg.Undecided++
		}
		if r.Outcome.Decided() {
			if decided == 0 || r.Ticks < agg.MinTicks {
				agg.MinTicks = r.Ticks
			}
			agg.MaxTicks = max(agg.MaxTicks, r.Ticks)
			tickSum += r.Ticks
			decided++
		}
		addStats(&agg.Red, r.Red)
		addStats(&agg.Green, r.Green)

		rg, gg := GradeRobot(r, Red), GradeRobot(r, Green)
		agg.RedScore += rg.Score
		agg.GreenScore += gg.Score
		for _, t := range rg.Traits {
			agg.RedTraits[t]++
		}
		for _, t := range gg.Traits {
			agg.GreenTraits[t]++
		}
	}
	if decided > 0 {
		agg.MeanTicks = float64(tickSum) / float64(decided)
	}
	if agg.Matches > 0 {
		agg.RedScore /= float64(agg.Matches)
		agg.GreenScore /= float64(agg.Matches)
	}
	return agg
}

func addStats(dst *RobotStats, s RobotStats) {
	dst.Moves += s.Moves
	dst.BlockedMoves += s.BlockedMoves
	dst.Turns += s.Turns
	dst.Shots += s.Shots
	dst.Hits += s.Hits
	dst.Scans += s.Scans
	dst.Reveals += s.Reveals
	dst.DryActions += s.DryActions
}

// HitRate is side's hits per shot across all matches.
func (a AggregateReport) HitRate(side Side) float64 {
	if side == Red {
		return gradeFrac(a.Red.Hits, a.Red.Shots)
	}
	return gradeFrac(a.Green.Hits, a.Green.Shots)
}

// FormatAggregate renders a for the terminal.
func FormatAggregate(a AggregateReport) string {
	var sb strings.Builder
	sb.WriteString("=== Aggregate ===\n")
	fmt.Fprintf(&sb, "matches=%d red_wins=%d green_wins=%d ties=%d undecided=%d\n",
		a.Matches, a.RedWins, a.GreenWins, a.Ties, a.Undecided)
	if a.Matches-a.Undecided > 0 {
		fmt.Fprintf(&sb, "ticks to result: min=%d mean=%.1f max=%d\n", a.MinTicks, a.MeanTicks, a.MaxTicks)
	}
	for _, side := range []Side{Red, Green} {
		stats, score, traits := a.Red, a.RedScore, a.RedTraits
		if side == Green {
			stats, score, traits = a.Green, a.GreenScore, a.GreenTraits
		}
		fmt.Fprintf(&sb, "%-5s %s hit_rate=%.2f avg_score=%.1f (%s)\n",
			strings.ToUpper(side.String()), formatStats(stats), a.HitRate(side), score, LetterGrade(score))
		if len(traits) > 0 {
			fmt.Fprintf(&sb, "      traits: %s\n", topTraits(traits, 4))
		}
	}
	return sb.String()
}

func topTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
