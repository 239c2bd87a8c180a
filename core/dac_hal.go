package core

import "tinygo.org/x/drivers"

// DACDriver is the abstract interface to the on-chip converter.
// Implementations latch 12-bit right-aligned samples; upper bits are
// ignored the way the hardware register ignores them.
type DACDriver interface {
	// Put latches a raw sample on one converter channel.
	Put(channel uint8, value uint16) error
}

// External converter limits. The part is a quad 12-bit DAC124S085 behind
// a plain SPI bus.
const (
	ExternalDACChannels = 4
	ExternalDACMaxValue = 0xfff
)

// ExternalDAC drives the quad converter. Frames are two bytes MSB first:
// channel in bits 15..14, op code in bits 13..12, sample in bits 11..0.
type ExternalDAC struct {
	bus drivers.SPI
}

// NewExternalDAC returns a converter on the given bus.
func NewExternalDAC(bus drivers.SPI) *ExternalDAC {
	return &ExternalDAC{bus: bus}
}

// Write latches value on channel. Fails closed: an out-of-range channel or
// value, or a missing bus, returns false without any bus traffic.
func (d *ExternalDAC) Write(channel, value uint16) bool {
	if d == nil || d.bus == nil {
		return false
	}
	if channel > ExternalDACChannels-1 || value > ExternalDACMaxValue {
		return false
	}

	// channel select, bits 15..14
	value |= channel << 14

	// op 1 = write register and update output
	// (0 = write only, 2 = write all, 3 = power down)
	value |= 1 << 12

	tx := []byte{byte(value >> 8), byte(value)}
	return d.bus.Tx(tx, nil) == nil
}

// Reset returns every external channel to 0v.
func (d *ExternalDAC) Reset() bool {
	ok := true
	for ch := uint16(0); ch < ExternalDACChannels; ch++ {
		if !d.Write(ch, 0) {
			ok = false
		}
	}
	return ok
}
