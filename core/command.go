package core

import (
	"strings"
	"sync"

	"benchbox/protocol"
)

// Handler executes one resolved command invocation. cmd holds the
// positional command tokens (verb first), data the free-form arguments.
// The handler decodes its own arguments; a false return marks the
// surrounding transaction as failed.
type Handler func(rt *Runtime, cmd, data []string) bool

// Command is one dispatch table entry.
type Command struct {
	Handler Handler
	Name    string
	Help    string
}

// zero reports whether c is the sentinel terminator entry.
func (c Command) zero() bool {
	return c.Handler == nil && c.Name == "" && c.Help == ""
}

// Table is an ordered command table. The scan stops at the first zero
// entry, so entries after the sentinel are unreachable. Names resolve by
// case-insensitive prefix match and declaration order breaks ties between
// names sharing a prefix; that tie-break is load-bearing and must not
// change.
type Table []Command

// Lookup returns the first entry whose name prefix-matches verb, or nil.
func (t Table) Lookup(verb string) *Command {
	for i := range t {
		if t[i].zero() {
			break
		}
		if matchesPrefix(t[i].Name, verb) {
			return &t[i]
		}
	}
	return nil
}

// Dispatch resolves verb against the table and runs its handler. A verb
// with no entry reports not-implemented and fails.
func (t Table) Dispatch(rt *Runtime, verb string, cmd, data []string) bool {
	entry := t.Lookup(verb)
	if entry == nil {
		rt.Out.Error("%s not implemented", verb)
		return false
	}
	if entry.Handler == nil {
		return false
	}
	return entry.Handler(rt, cmd, data)
}

// Help prints each entry's name and help text as info lines. Multi-line
// help strings continue indented under the name.
func (t Table) Help(rt *Runtime) {
	for _, c := range t {
		if c.zero() {
			break
		}
		lines := strings.Split(c.Help, "\n")
		rt.Out.Info("%-10s %s", c.Name, lines[0])
		for _, l := range lines[1:] {
			rt.Out.Info("%-10s %s", "", l)
		}
	}
}

// Runtime is the explicit process-wide instrument context: the response
// writer and the capability drivers handlers reach hardware through. One
// Runtime is assembled at startup and passed by reference into every
// handler; nothing here lives in package globals. It is initialized once
// and never torn down.
type Runtime struct {
	Out *protocol.Writer

	// Root is the top-level command table the shell dispatches into.
	Root Table

	// Capability drivers. A nil driver makes its command family report a
	// configuration error instead of touching hardware.
	GPIO   GPIODriver
	DAC    DACDriver
	ExtDAC *ExternalDAC

	// Identity reported by the version command.
	Version string
	Machine string

	// One-time converter bring-up latch.
	dacInit sync.Once
}

// NewRuntime assembles an instrument context around a response writer.
// Drivers are attached by the caller before the first dispatch.
func NewRuntime(out *protocol.Writer) *Runtime {
	return &Runtime{
		Out:     out,
		Root:    RootTable(),
		Version: Version,
	}
}

// Exec runs one invocation inside BEGIN/END transaction framing and
// reports whether it succeeded.
func (rt *Runtime) Exec(cmd, data []string) bool {
	rt.Out.Begin()
	ok := false
	if len(cmd) > 0 {
		ok = rt.Root.Dispatch(rt, cmd[0], cmd, data)
	}
	rt.Out.End(ok)
	return ok
}

// arg returns the token at slot i, or "" when the list is too short.
func arg(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}

// inputCheck gates a leaf handler on exact argument counts: cmd must hold
// wantCmd positional tokens and data wantData values. Reports an error and
// returns false otherwise, so handlers can short-circuit before any
// hardware access.
func inputCheck(rt *Runtime, cmd []string, wantCmd int, data []string, wantData int) bool {
	if len(cmd) > wantCmd {
		rt.Out.Error("extra command tokens")
		return false
	}
	if len(cmd) < wantCmd {
		rt.Out.Error("missing command tokens")
		return false
	}
	if len(data) != wantData {
		rt.Out.Error("expected %d data arguments, got %d", wantData, len(data))
		return false
	}
	return true
}
