package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid arena config")
	// ErrOutOfBounds is returned when a robot is placed outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// minGridSize keeps at least one laser unit available.
const minGridSize = 2

// Config is fixed for the lifetime of an arena.
type Config struct {
	GridSize     int           // cells per side; the arena is square
	TickInterval time.Duration // time between decision steps
	Variant      Variant       // rule pipeline used by fuzzy deciders
}

// DefaultConfig is a 10x10 board stepping twice a second.
func DefaultConfig() Config {
	return Config{
		GridSize:     10,
		TickInterval: 500 * time.Millisecond,
		Variant:      CertaintyFirst,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.GridSize < minGridSize {
		return fmt.Errorf("%w: grid size %d is below %d", ErrInvalidConfig, c.GridSize, minGridSize)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if c.Variant != CertaintyFirst && c.Variant != UncertaintyFirst {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, int(c.Variant))
	}
	return nil
}

// MaxLaser is the laser charge cap for the grid size.
func (c Config) MaxLaser() int {
	return c.GridSize / 2
}

// MaxRadar is the radar charge cap for the grid size.
func (c Config) MaxRadar() int {
	return (c.GridSize - 2) / 2
}
