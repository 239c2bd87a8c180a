// Package sim provides an in-memory instrument: simulated drivers behind
// the hardware interfaces, plus session plumbing for the shell.
package sim

import (
	"fmt"
	"sync"

	"benchbox/core"
)

type pinKey struct {
	port core.Port
	pin  core.Pin
}

type pinConfig struct {
	dir   core.Direction
	sense core.Sense
}

// GPIO is an in-memory pin matrix implementing core.GPIODriver. It counts
// hardware calls so tests can assert on exact traffic.
type GPIO struct {
	mu      sync.Mutex
	levels  map[pinKey]bool
	configs map[pinKey]pinConfig

	reads      int
	writes     int
	configures int
}

// NewGPIO returns a pin matrix with every pin low and unconfigured.
func NewGPIO() *GPIO {
	return &GPIO{
		levels:  make(map[pinKey]bool),
		configs: make(map[pinKey]pinConfig),
	}
}

func checkPin(port core.Port, pin core.Pin) error {
	if port == core.NoPort || pin == core.NoPin {
		return fmt.Errorf("invalid pin %s:%s", port, pin)
	}
	return nil
}

// ReadPin returns the current level of one pin.
func (g *GPIO) ReadPin(port core.Port, pin core.Pin) (bool, error) {
	if err := checkPin(port, pin); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reads++
	return g.levels[pinKey{port, pin}], nil
}

// WritePin drives one pin to level.
func (g *GPIO) WritePin(port core.Port, pin core.Pin, level bool) error {
	if err := checkPin(port, pin); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes++
	g.levels[pinKey{port, pin}] = level
	return nil
}

// ConfigurePin sets one pin's direction and sense. Configuring a pin as
// an input releases any driven level.
func (g *GPIO) ConfigurePin(port core.Port, pin core.Pin, dir core.Direction, sense core.Sense) error {
	if err := checkPin(port, pin); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configures++
	key := pinKey{port, pin}
	g.configs[key] = pinConfig{dir, sense}
	if dir == core.DirectionInput {
		g.levels[key] = sense == core.SensePullUp
	}
	return nil
}

// Counts returns the number of read, write and configure calls so far.
func (g *GPIO) Counts() (reads, writes, configures int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reads, g.writes, g.configures
}

// Level returns the current level of one pin without counting a read.
func (g *GPIO) Level(port core.Port, pin core.Pin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pinKey{port, pin}]
}

// Configured returns one pin's direction and sense, and whether it has
// been configured at all.
func (g *GPIO) Configured(port core.Port, pin core.Pin) (core.Direction, core.Sense, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.configs[pinKey{port, pin}]
	return c.dir, c.sense, ok
}

// SetLevel forces one pin level, as if driven externally.
func (g *GPIO) SetLevel(port core.Port, pin core.Pin, level bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels[pinKey{port, pin}] = level
}
