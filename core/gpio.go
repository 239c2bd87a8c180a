package core

// Positional slots of a gpio command list. The marker keywords occupy
// slots of their own and are validated like any other token.
const (
	gpioTokVerb = iota
	gpioTokAction
	gpioTokPortKey
	gpioTokPort
	gpioTokPinKey
	gpioTokPin
	gpioTokDirKey
	gpioTokDir
	gpioTokSenseKey
	gpioTokSense
)

// Command list lengths for the two gpio shapes.
const (
	gpioShortLen  = gpioTokPin + 1
	gpioConfigLen = gpioTokSense + 1
)

// gpioDispatch routes a gpio invocation by its action slot. config is only
// attempted when both the direction and sense sub-fields are present; a
// missing sub-field is a well-formed failure, not a grammar error.
func gpioDispatch(rt *Runtime, cmd, data []string) bool {
	if rt.GPIO == nil {
		rt.Out.Error("gpio driver not configured")
		return false
	}

	action := arg(cmd, gpioTokAction)
	if gpioActions.Validate(action) == TokenNotFound {
		rt.Out.Error("invalid gpio action")
		return false
	}

	switch {
	case matchesPrefix("get", action):
		return gpioGet(rt, cmd, data)
	case matchesPrefix("set", action):
		return gpioWrite(rt, cmd, data, true)
	case matchesPrefix("clear", action):
		return gpioWrite(rt, cmd, data, false)
	case matchesPrefix("config", action):
		if arg(cmd, gpioTokDir) == "" || arg(cmd, gpioTokSense) == "" {
			return false
		}
		return gpioConfig(rt, cmd, data)
	default:
		rt.Out.Debug("unhandled gpio action %q", action)
		return false
	}
}

// gpioPortPin validates the port and pin slots and resolves them to their
// domain values. Hardware is never touched here; any invalid or missing
// token fails the whole invocation.
func gpioPortPin(rt *Runtime, cmd []string) (Port, Pin, bool) {
	if portKeyword.Validate(arg(cmd, gpioTokPortKey)) == TokenNotFound {
		rt.Out.Error("expected port keyword")
		return NoPort, NoPin, false
	}
	if portNames.Validate(arg(cmd, gpioTokPort)) == TokenNotFound {
		rt.Out.Error("invalid port name")
		return NoPort, NoPin, false
	}
	port := PortFromString(arg(cmd, gpioTokPort))
	if port == NoPort {
		return NoPort, NoPin, false
	}

	if pinKeyword.Validate(arg(cmd, gpioTokPinKey)) == TokenNotFound {
		rt.Out.Error("expected pin keyword")
		return NoPort, NoPin, false
	}
	if pinNames.Validate(arg(cmd, gpioTokPin)) == TokenNotFound {
		rt.Out.Error("invalid pin name")
		return NoPort, NoPin, false
	}
	pin := PinFromString(arg(cmd, gpioTokPin))
	if pin == NoPin {
		return NoPort, NoPin, false
	}

	return port, pin, true
}

func gpioGet(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, gpioShortLen, data, 0) {
		return false
	}
	port, pin, ok := gpioPortPin(rt, cmd)
	if !ok {
		return false
	}

	level, err := rt.GPIO.ReadPin(port, pin)
	if err != nil {
		rt.Out.Error("gpio read failed: %v", err)
		return false
	}
	rt.Out.Bool(port.String()+":"+pin.String(), level)
	return true
}

func gpioWrite(rt *Runtime, cmd, data []string, level bool) bool {
	if !inputCheck(rt, cmd, gpioShortLen, data, 0) {
		return false
	}
	port, pin, ok := gpioPortPin(rt, cmd)
	if !ok {
		return false
	}

	if err := rt.GPIO.WritePin(port, pin, level); err != nil {
		rt.Out.Error("gpio write failed: %v", err)
		return false
	}
	return true
}

// gpioConfig validates the direction and sense slots before resolving the
// port and pin, mirroring the validation-before-hardware ordering of the
// rest of the family.
func gpioConfig(rt *Runtime, cmd, data []string) bool {
	if !inputCheck(rt, cmd, gpioConfigLen, data, 0) {
		return false
	}

	if directionKeyword.Validate(arg(cmd, gpioTokDirKey)) == TokenNotFound {
		rt.Out.Error("expected direction keyword")
		return false
	}
	var dir Direction
	switch gpioDirections.Validate(arg(cmd, gpioTokDir)) {
	case 0:
		dir = DirectionInput
	case 1:
		dir = DirectionOutput
	default:
		rt.Out.Error("invalid direction")
		return false
	}

	if senseKeyword.Validate(arg(cmd, gpioTokSenseKey)) == TokenNotFound {
		rt.Out.Error("expected sense keyword")
		return false
	}
	var sense Sense
	switch gpioSenses.Validate(arg(cmd, gpioTokSense)) {
	case 0:
		sense = SensePullUp
	case 1:
		sense = SensePullDown
	case 2:
		sense = SenseFloating
	case 3:
		sense = SenseAnalog
	default:
		rt.Out.Error("invalid sense")
		return false
	}

	port, pin, ok := gpioPortPin(rt, cmd)
	if !ok {
		return false
	}

	if err := rt.GPIO.ConfigurePin(port, pin, dir, sense); err != nil {
		rt.Out.Error("gpio config failed: %v", err)
		return false
	}
	return true
}
