// Package cli holds the flags and arena wiring shared by the commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Garsondee/RobotWar/internal/game"
	"github.com/Garsondee/RobotWar/internal/script"
)

// Options are the arena settings every command accepts.
type Options struct {
	Grid        int
	Interval    time.Duration
	Seed        int64 // 0 picks one from the clock
	Variant     string
	RedScript   string
	GreenScript string
	LogLevel    string
	Verbose     bool
}

// Register binds the options to fs with their defaults.
func (o *Options) Register(fs *flag.FlagSet) {
	def := game.DefaultConfig()
	fs.IntVar(&o.Grid, "grid", def.GridSize, "cells per side of the arena")
	fs.DurationVar(&o.Interval, "interval", def.TickInterval, "time between decision steps")
	fs.Int64Var(&o.Seed, "seed", 0, "RNG seed (0 = from clock)")
	fs.StringVar(&o.Variant, "variant", def.Variant.String(), "rule pipeline: certainty-first or uncertainty-first")
	fs.StringVar(&o.RedScript, "red-script", "", "script file driving red instead of the fuzzy pipeline")
	fs.StringVar(&o.GreenScript, "green-script", "", "script file driving green instead of the fuzzy pipeline")
	fs.StringVar(&o.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&o.Verbose, "verbose", false, "record per-tick fact grades in the match log")
}

// Config validates the options into an arena config.
func (o *Options) Config() (game.Config, error) {
	v, err := game.ParseVariant(o.Variant)
	if err != nil {
		return game.Config{}, err
	}
	cfg := game.Config{GridSize: o.Grid, TickInterval: o.Interval, Variant: v}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Logger returns a text logger writing to w at the configured level.
func (o *Options) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(o.LogLevel))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", o.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Scripts compiles the configured script files. A side without a script
// gets nil.
func (o *Options) Scripts() (red, green *script.Program, err error) {
	if o.RedScript != "" {
		if red, err = script.ParseFile(o.RedScript); err != nil {
			return nil, nil, err
		}
	}
	if o.GreenScript != "" {
		if green, err = script.ParseFile(o.GreenScript); err != nil {
			return nil, nil, err
		}
	}
	return red, green, nil
}

// ArenaFactory returns a function building a fresh randomly placed arena
// for each call. Each build uses the next seed so restarts differ.
func (o *Options) ArenaFactory(logger *slog.Logger) (func() (*game.Arena, error), error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	red, green, err := o.Scripts()
	if err != nil {
		return nil, err
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return func() (*game.Arena, error) {
		rng := game.NewRand(seed)
		logger.Debug("building arena", "seed", seed)
		seed++
		a, err := game.NewArena(cfg,
			game.WithArenaRand(rng),
			game.WithArenaLogger(logger),
			game.WithMatchLog(game.NewMatchLog(o.Verbose)))
		if err != nil {
			return nil, err
		}
		a.SetDecider(game.Red, decider(red, cfg.Variant, rng))
		a.SetDecider(game.Green, decider(green, cfg.Variant, rng))
		a.RandomPlacement()
		return a, nil
	}, nil
}

func decider(p *script.Program, v game.Variant, rng game.Rand) game.Decider {
	if p != nil {
		return p.Decider()
	}
	return game.NewFuzzyDecider(v, rng)
}
