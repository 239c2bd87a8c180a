package sim

import (
	"fmt"
	"sync"
)

// InternalDACChannels is the channel count of the simulated on-chip
// converter.
const InternalDACChannels = 2

// DAC is an in-memory on-chip converter implementing core.DACDriver.
// Stored values mask to the 12-bit hardware width.
type DAC struct {
	mu     sync.Mutex
	values map[uint8]uint16
	puts   int
}

// NewDAC returns a converter with all outputs at zero.
func NewDAC() *DAC {
	return &DAC{values: make(map[uint8]uint16)}
}

// Put latches one sample on a channel.
func (d *DAC) Put(channel uint8, value uint16) error {
	if channel >= InternalDACChannels {
		return fmt.Errorf("invalid dac channel %d", channel)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.puts++
	d.values[channel] = value & 0xfff
	return nil
}

// Puts returns the number of successful Put calls so far.
func (d *DAC) Puts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.puts
}

// Value returns the latched sample on a channel.
func (d *DAC) Value(channel uint8) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[channel]
}
