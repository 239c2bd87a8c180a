package sim

import (
	"sync"

	"tinygo.org/x/drivers"
)

// SPIBus records every frame clocked out to the external converter.
type SPIBus struct {
	mu     sync.Mutex
	frames [][]byte
}

var _ drivers.SPI = (*SPIBus)(nil)

// NewSPIBus returns an idle bus with no recorded frames.
func NewSPIBus() *SPIBus {
	return &SPIBus{}
}

// Tx records w as one frame and fills r with zeros.
func (b *SPIBus) Tx(w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(w) > 0 {
		frame := make([]byte, len(w))
		copy(frame, w)
		b.frames = append(b.frames, frame)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

// Transfer clocks a single byte.
func (b *SPIBus) Transfer(w byte) (byte, error) {
	return 0, b.Tx([]byte{w}, nil)
}

// Frames returns a copy of every frame recorded so far.
func (b *SPIBus) Frames() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, len(b.frames))
	for i, f := range b.frames {
		frame := make([]byte, len(f))
		copy(frame, f)
		out[i] = frame
	}
	return out
}

// Clear drops all recorded frames.
func (b *SPIBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = nil
}
