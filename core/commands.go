package core

// RootTable builds the top-level command table. Declaration order is the
// dispatch order, which matters for prefix matching.
func RootTable() Table {
	return Table{
		{gpioDispatch, "gpio", "Control GPIO pins\nUsage: gpio <get|set|clear|config> port <name> pin <name>"},
		{dacDispatch, "dac", "Control DAC outputs\nUsage: dac <write|reset|help>"},
		{versionCmd, "version", "Firmware version"},
		{resetpinsCmd, "resetpins", "Reset pins to default state"},
		{helpCmd, "help", "Command help"},
		{},
	}
}

func versionCmd(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 1, data, 0) {
		return false
	}
	rt.Out.String("version", rt.Version)
	if rt.Machine != "" {
		rt.Out.String("machine", rt.Machine)
	}
	return true
}

// resetpinsCmd returns every pin on every port to a safe input/floating
// state. Failures are reported per pin but do not stop the sweep.
func resetpinsCmd(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 1, data, 0) {
		return false
	}
	if rt.GPIO == nil {
		rt.Out.Error("gpio driver not configured")
		return false
	}
	ok := true
	for _, pe := range portMap {
		for _, ne := range pinMap {
			if err := rt.GPIO.ConfigurePin(pe.port, ne.pin, DirectionInput, SenseFloating); err != nil {
				rt.Out.Warning("reset %s:%s: %v", pe.name, ne.name, err)
				ok = false
			}
		}
	}
	return ok
}

func helpCmd(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, 1, data, 0) {
		return false
	}
	rt.Out.Info("Available commands:")
	rt.Root.Help(rt)
	return true
}
