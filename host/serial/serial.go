// Package serial abstracts the host-side serial link to an instrument.
package serial

import (
	"io"
)

// Port is one open serial link. The abstraction keeps the client
// testable against in-memory pipes and alternative transports.
type Port interface {
	io.ReadWriteCloser

	// Flush drops any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC devices ignore this.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the usual instrument link settings: 115200 baud,
// blocking reads.
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   115200,
	}
}
