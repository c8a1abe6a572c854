package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/RobotWar/internal/cli"
	"github.com/Garsondee/RobotWar/internal/game"
	"github.com/Garsondee/RobotWar/internal/script"
)

type runStats struct {
	runIndex int
	report   game.MatchReport

	firstContactTick int
	firstShotTick    int
	radarContacts    int
	laserMisses      int
	blockedMoves     int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var parallel int
	var quiet bool
	var opts cli.Options

	flag.IntVar(&runs, "runs", 20, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 500, "tick limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&parallel, "parallel", runtime.NumCPU(), "matches run concurrently")
	flag.BoolVar(&quiet, "quiet", false, "print only the aggregate")
	flag.IntVar(&opts.Grid, "grid", game.DefaultConfig().GridSize, "cells per side of the arena")
	flag.StringVar(&opts.Variant, "variant", game.CertaintyFirst.String(), "rule pipeline: certainty-first or uncertainty-first")
	flag.StringVar(&opts.RedScript, "red-script", "", "script file driving red")
	flag.StringVar(&opts.GreenScript, "green-script", "", "script file driving green")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flag.BoolVar(&opts.Verbose, "verbose", false, "record per-tick fact grades")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	opts.Interval = game.DefaultConfig().TickInterval
	if _, err := opts.Config(); err != nil {
		log.Fatal(err)
	}
	variant, _ := game.ParseVariant(opts.Variant)
	logger, err := opts.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	red, green, err := opts.Scripts()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("grid=%d variant=%s runs=%d ticks=%d seed_base=%d seed_step=%d parallel=%d\n\n",
		opts.Grid, variant, runs, ticks, seedBase, seedStep, parallel)

	all := make([]runStats, runs)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, parallel))
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matchOpts := []game.MatchOption{
				game.WithSeed(seedBase + int64(i)*seedStep),
				game.WithGridSize(opts.Grid),
				game.WithPipelineVariant(variant),
				game.WithRandomPlacement(),
				game.WithVerbose(opts.Verbose),
				game.WithLogger(logger),
			}
			matchOpts = append(matchOpts, scriptOptions(red, green)...)
			m, err := game.NewMatch(matchOpts...)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			m.RunTicks(ticks)
			all[i] = collect(i+1, m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	reports := make([]game.MatchReport, len(all))
	for i, rs := range all {
		if !quiet {
			printRun(rs)
		}
		reports[i] = rs.report
	}
	fmt.Print(game.FormatAggregate(game.AggregateReports(reports)))
}

// scriptOptions gives each match its own runners; a runner is stateful and
// must not be shared between goroutines.
func scriptOptions(red, green *script.Program) []game.MatchOption {
	var out []game.MatchOption
	if red != nil {
		out = append(out, game.WithRedDecider(red.Decider()))
	}
	if green != nil {
		out = append(out, game.WithGreenDecider(green.Decider()))
	}
	return out
}

func collect(runIndex int, m *game.Match) runStats {
	rpt := m.Report()
	entries := m.Log.Entries()
	return runStats{
		runIndex:         runIndex,
		report:           rpt,
		firstContactTick: firstTick(entries, "radar", "contact", ""),
		firstShotTick:    firstTick(entries, "laser", "", ""),
		radarContacts:    m.Log.CountCategory("radar", "contact"),
		laserMisses:      m.Log.CountCategory("laser", "miss"),
		blockedMoves:     m.Log.CountCategory("act", "blocked"),
	}
}

func firstTick(entries []game.MatchLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || (key != "" && e.Key != key) {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	r := rs.report
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, r.Seed)
	fmt.Printf("%s\n", r)
	fmt.Printf("phase_markers: first_contact=%d first_shot=%d result_tick=%d\n",
		rs.firstContactTick, rs.firstShotTick, r.Outcome.Tick)
	fmt.Printf("event_totals: radar_contact=%d laser_miss=%d blocked=%d\n",
		rs.radarContacts, rs.laserMisses, rs.blockedMoves)
	if stale, reason := detectStalemate(rs); stale {
		fmt.Printf("stalemate: %s\n", reason)
	}
	for _, side := range []game.Side{game.Red, game.Green} {
		gr := game.GradeRobot(r, side)
		fmt.Printf("  %-5s %-3s score=%.0f %s\n", side, gr.Letter, gr.Score, strings.Join(gr.Traits, ","))
	}
	fmt.Println()
}

// detectStalemate flags matches that ran to the tick limit without either
// robot making progress toward a kill.
func detectStalemate(rs runStats) (bool, string) {
	r := rs.report
	if r.Outcome.Decided() {
		return false, "decided"
	}
	var reasons []string
	reasons = append(reasons, "undecided_at_limit")
	shots := r.Red.Shots + r.Green.Shots
	if shots == 0 {
		reasons = append(reasons, "no_shots_fired")
	}
	if rs.radarContacts == 0 {
		reasons = append(reasons, "never_reacquired")
	}
	moves := r.Red.Moves + r.Green.Moves
	if rs.blockedMoves > 0 && rs.blockedMoves*2 >= moves {
		reasons = append(reasons, "wall_bound")
	}
	// An undecided match with shots and fresh contacts is just a long duel.
	if len(reasons) == 1 {
		return false, "long_duel"
	}
	return true, strings.Join(reasons, ",")
}
