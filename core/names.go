package core

// Pin identifies one line within a port.
type Pin uint8

// Pin numbers within a port.
const (
	Pin0 Pin = iota
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9
	Pin10
	Pin11
	Pin12
	Pin13
	Pin14
	Pin15
)

// NoPin is returned by PinFromString when no name matches. Callers must
// check for it before touching hardware.
const NoPin Pin = 0xff

// Port identifies one bank of sixteen pins.
type Port uint8

// Port handles.
const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
	PortF
	PortG
	PortH
	PortI
)

// NoPort is returned by PortFromString when no name matches.
const NoPort Port = 0xff

type pinMapEntry struct {
	name string
	pin  Pin
}

var pinMap = []pinMapEntry{
	{"pin0", Pin0},
	{"pin1", Pin1},
	{"pin2", Pin2},
	{"pin3", Pin3},
	{"pin4", Pin4},
	{"pin5", Pin5},
	{"pin6", Pin6},
	{"pin7", Pin7},
	{"pin8", Pin8},
	{"pin9", Pin9},
	{"pin10", Pin10},
	{"pin11", Pin11},
	{"pin12", Pin12},
	{"pin13", Pin13},
	{"pin14", Pin14},
	{"pin15", Pin15},
}

type portMapEntry struct {
	name string
	port Port
}

var portMap = []portMapEntry{
	{"porta", PortA},
	{"portb", PortB},
	{"portc", PortC},
	{"portd", PortD},
	{"porte", PortE},
	{"portf", PortF},
	{"portg", PortG},
	{"porth", PortH},
	{"porti", PortI},
}

// PinFromString resolves a pin name to its number. The scan is linear and
// case-insensitive, first match wins. Returns NoPin on a failed match.
func PinFromString(s string) Pin {
	for _, e := range pinMap {
		if tokenEqual(e.name, s) {
			return e.pin
		}
	}
	return NoPin
}

// PortFromString resolves a port name to its handle. Returns NoPort on a
// failed match.
func PortFromString(s string) Port {
	for _, e := range portMap {
		if tokenEqual(e.name, s) {
			return e.port
		}
	}
	return NoPort
}

// String returns the canonical name, or "?" for the sentinel.
func (p Pin) String() string {
	for _, e := range pinMap {
		if e.pin == p {
			return e.name
		}
	}
	return "?"
}

// String returns the canonical name, or "?" for the sentinel.
func (p Port) String() string {
	for _, e := range portMap {
		if e.port == p {
			return e.name
		}
	}
	return "?"
}
