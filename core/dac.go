package core

import "strconv"

// dacTable builds the dac family table. Declaration order is the dispatch
// order. dacHelp both lives in this table and walks it, which rules out a
// package-level var.
func dacTable() Table {
	return Table{
		{dacHelp, "help", "DAC command help"},
		{dacWrite, "write", "Write values to DAC\nUsage: write(<channel>, <value>)"},
		{dacReset, "reset", "Reset all DAC outputs to 0v"},
		{},
	}
}

// dacDispatch brings the converter path up exactly once per runtime, then
// routes by the sub-command slot.
func dacDispatch(rt *Runtime, cmd, data []string) bool {
	rt.dacInit.Do(func() { dacResetOutputs(rt) })
	return dacTable().Dispatch(rt, arg(cmd, 1), cmd, data)
}

// dacResetOutputs returns every converter output to 0v: internal channel 0
// and external channels 0..3.
func dacResetOutputs(rt *Runtime) bool {
	ok := true
	if rt.DAC != nil {
		if err := rt.DAC.Put(0, 0); err != nil {
			ok = false
		}
	}
	if rt.ExtDAC != nil && !rt.ExtDAC.Reset() {
		ok = false
	}
	return ok
}

func dacHelp(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 2, data, 0) {
		return false
	}
	rt.Out.Info("DAC command help:")
	dacTable().Help(rt)
	return true
}

// dacWrite latches one sample. Channels 0..3 route to the external SPI
// converter, channel 4 to internal converter channel 0; anything else is
// rejected before any transport traffic. Values parse with base 0, so hex
// input is accepted.
func dacWrite(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 2, data, 2) {
		return false
	}

	channel, err := strconv.ParseInt(data[0], 0, 32)
	if err != nil {
		rt.Out.Error("invalid channel")
		return false
	}
	value, err := strconv.ParseInt(data[1], 0, 32)
	if err != nil || value < 0 || value > 0xffff {
		rt.Out.Error("invalid value")
		return false
	}

	switch {
	case channel >= 0 && channel <= 3:
		return rt.ExtDAC.Write(uint16(channel), uint16(value))
	case channel == 4:
		if rt.DAC == nil {
			rt.Out.Error("dac driver not configured")
			return false
		}
		if err := rt.DAC.Put(0, uint16(value)); err != nil {
			rt.Out.Error("dac write failed: %v", err)
			return false
		}
		return true
	default:
		rt.Out.Error("invalid channel")
		return false
	}
}

func dacReset(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 2, data, 0) {
		return false
	}
	return dacResetOutputs(rt)
}
