package sim

import (
	"context"
	"io"
	"sync"

	"benchbox/core"
	"benchbox/protocol"
	"benchbox/shell"
)

// sessionSink forwards response output to whichever session stream is
// attached. Output with no session attached is dropped, like a serial
// console with nobody connected.
type sessionSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sessionSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	w := s.w
	s.mu.Unlock()
	if w == nil {
		return len(p), nil
	}
	return w.Write(p)
}

func (s *sessionSink) attach(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// Instrument is one simulated bench box: simulated drivers wired into a
// single runtime whose state persists across sessions, the way real
// hardware keeps its state between serial connections.
type Instrument struct {
	GPIO *GPIO
	DAC  *DAC
	Bus  *SPIBus
	RT   *core.Runtime

	cfg  *Config
	sink *sessionSink
}

// New builds an instrument from cfg. A nil cfg gets the defaults.
func New(cfg *Config) *Instrument {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	inst := &Instrument{
		GPIO: NewGPIO(),
		DAC:  NewDAC(),
		Bus:  NewSPIBus(),
		cfg:  cfg,
		sink: &sessionSink{},
	}

	out := protocol.NewWriter(inst.sink)
	out.SetDebug(cfg.Debug)

	rt := core.NewRuntime(out)
	rt.GPIO = inst.GPIO
	rt.DAC = inst.DAC
	rt.ExtDAC = core.NewExternalDAC(inst.Bus)
	rt.Machine = cfg.Machine
	inst.RT = rt
	return inst
}

// Serve runs one shell session over rw. Sessions must be served one at
// a time; instrument state carries over from one session to the next.
func (inst *Instrument) Serve(ctx context.Context, rw io.ReadWriter) error {
	inst.sink.attach(rw)
	defer inst.sink.attach(nil)

	sh := shell.New(inst.RT, rw)
	sh.SetPrompt(!inst.cfg.NoPrompt)
	sh.SetEcho(!inst.cfg.NoEcho)
	return sh.Run(ctx)
}
