package core

// Direction selects whether a pin drives or samples its line.
type Direction uint8

const (
	DirectionInput Direction = iota
	DirectionOutput
)

func (d Direction) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// Sense selects the input conditioning applied to a pin.
type Sense uint8

const (
	SensePullUp Sense = iota
	SensePullDown
	SenseFloating
	SenseAnalog
)

func (s Sense) String() string {
	switch s {
	case SensePullUp:
		return "pullup"
	case SensePullDown:
		return "pulldown"
	case SenseAnalog:
		return "analog"
	default:
		return "floating"
	}
}

// GPIODriver is the abstract GPIO interface that command handlers use.
// Platform-specific implementations handle the actual pad access. All
// calls are synchronous and bounded-time.
type GPIODriver interface {
	// ReadPin samples the current level of a pin.
	ReadPin(port Port, pin Pin) (bool, error)

	// WritePin drives a pin high (true) or low (false).
	WritePin(port Port, pin Pin, level bool) error

	// ConfigurePin sets a pin's direction and input conditioning.
	ConfigurePin(port Port, pin Pin, dir Direction, sense Sense) error
}
