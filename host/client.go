// Package host implements the host side of the instrument link: sending
// command lines and collecting the BEGIN/END framed responses.
package host

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"benchbox/host/serial"
	"benchbox/protocol"
)

// Result is one completed command transaction.
type Result struct {
	OK        bool
	Responses []protocol.Response
}

// Named returns the first data line carrying name.
func (r *Result) Named(name string) (protocol.Response, bool) {
	for _, resp := range r.Responses {
		if resp.Name == name {
			return resp, true
		}
	}
	return protocol.Response{}, false
}

// Errors returns the text of every error line in the transaction.
func (r *Result) Errors() []string {
	var out []string
	for _, resp := range r.Responses {
		if resp.Kind == protocol.KindError {
			out = append(out, resp.Text)
		}
	}
	return out
}

// Client drives one instrument over a line-oriented stream.
type Client struct {
	rw        io.ReadWriter
	br        *bufio.Reader
	connected bool

	// Filled in by Handshake.
	Version string
	Machine string
}

// NewClient wraps an already open stream, such as a TCP connection or a
// test pipe.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		rw:        rw,
		br:        bufio.NewReader(rw),
		connected: true,
	}
}

// Connect opens a serial link to an instrument.
func Connect(device string) (*Client, error) {
	return ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens a serial link with a custom serial config.
func ConnectWithConfig(cfg *serial.Config) (*Client, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}

	// Give the instrument time to settle if it just reset, then drop
	// any banner or prompt text it printed in the meantime.
	time.Sleep(100 * time.Millisecond)
	port.Flush()

	return NewClient(port), nil
}

// Close closes the underlying stream if it supports closing.
func (c *Client) Close() error {
	c.connected = false
	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// IsConnected returns whether the client is usable.
func (c *Client) IsConnected() bool {
	return c.connected
}

// Handshake switches the session into machine mode and probes the
// instrument identity. The version probe also resynchronizes the stream:
// echo or prompt text emitted before the toggles took effect parses as
// no known line and is dropped.
func (c *Client) Handshake() error {
	if !c.connected {
		return fmt.Errorf("not connected")
	}
	if _, err := io.WriteString(c.rw, "+noprompt\r\n+noecho\r\n"); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	res, err := c.Exec("version")
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("handshake: version probe failed")
	}
	if v, ok := res.Named("version"); ok {
		c.Version = v.Text
	}
	if m, ok := res.Named("machine"); ok {
		c.Machine = m.Text
	}
	return nil
}

// Exec sends one command line and collects its transaction. Lines that
// parse as no known response, such as echo text, are skipped. Exec blocks
// until the closing END line arrives or the stream fails.
func (c *Client) Exec(line string) (*Result, error) {
	if !c.connected {
		return nil, fmt.Errorf("not connected")
	}
	if _, err := io.WriteString(c.rw, line+"\r\n"); err != nil {
		return nil, fmt.Errorf("send %q: %w", line, err)
	}

	res := &Result{}
	for {
		raw, rerr := c.br.ReadString('\n')
		if raw != "" {
			resp, perr := protocol.ParseLine(raw)
			if perr == nil {
				switch {
				case resp.Kind == protocol.KindBegin:
					// Transaction opens; the marker itself carries nothing.
				case resp.IsTerminal():
					res.OK = resp.OK()
					return res, nil
				default:
					res.Responses = append(res.Responses, resp)
				}
			}
		}
		if rerr != nil {
			return nil, fmt.Errorf("read: %w", rerr)
		}
	}
}
