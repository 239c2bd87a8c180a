package shell

import (
	"bufio"
	"context"
	"io"
	"strings"

	"benchbox/core"
)

// Prompt shown when prompting is enabled.
const Prompt = "benchbox> "

// Shell runs the command loop over one session stream. It is not safe
// for concurrent use; run one Shell per session.
type Shell struct {
	rt     *core.Runtime
	rw     io.ReadWriter
	prompt bool
	echo   bool
}

// New returns a shell bound to rt and rw, with prompt and echo enabled
// the way an interactive terminal expects.
func New(rt *core.Runtime, rw io.ReadWriter) *Shell {
	return &Shell{rt: rt, rw: rw, prompt: true, echo: true}
}

// SetPrompt presets the prompt toggle before Run.
func (s *Shell) SetPrompt(on bool) { s.prompt = on }

// SetEcho presets the echo toggle before Run.
func (s *Shell) SetEcho(on bool) { s.echo = on }

// Run reads and evaluates lines until the stream closes. Cancellation is
// observed between lines; a blocked read ends when the caller closes rw.
func (s *Shell) Run(ctx context.Context) error {
	r := bufio.NewReader(s.rw)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if s.prompt {
			io.WriteString(s.rw, Prompt)
		}
		line, err := r.ReadString('\n')
		if s.echo && line != "" {
			io.WriteString(s.rw, line)
		}
		if line != "" {
			s.Eval(line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Eval processes one input line: session toggles directly, everything
// else through split and dispatch.
func (s *Shell) Eval(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if line[0] == '+' {
		s.toggle(line)
		return
	}

	cmd, data, err := Split(line)
	if err != nil {
		s.rt.Out.Begin()
		s.rt.Out.Error("%v", err)
		s.rt.Out.End(false)
		return
	}
	if len(cmd) == 0 {
		return
	}
	s.rt.Exec(cmd, data)
}

// toggle handles the "+" session controls. These adjust the session view
// only and never touch hardware, so they bypass the dispatcher.
func (s *Shell) toggle(word string) {
	switch strings.ToLower(word) {
	case "+prompt":
		s.prompt = true
	case "+noprompt":
		s.prompt = false
	case "+echo":
		s.echo = true
	case "+noecho":
		s.echo = false
	default:
		s.rt.Out.Begin()
		s.rt.Out.Error("%s not implemented", word)
		s.rt.Out.End(false)
	}
}
