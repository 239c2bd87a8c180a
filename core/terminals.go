package core

// Grammars for the gpio family argument slots. The marker keywords are
// single-entry grammars validated like any other token.
var (
	gpioActions    = Grammar{"get", "set", "clear", "config"}
	gpioDirections = Grammar{"input", "output"}
	gpioSenses     = Grammar{"pullup", "pulldown", "floating", "analog"}

	portKeyword      = Grammar{"port"}
	pinKeyword       = Grammar{"pin"}
	directionKeyword = Grammar{"direction"}
	senseKeyword     = Grammar{"sense"}

	portNames = portNameGrammar()
	pinNames  = pinNameGrammar()
)

func portNameGrammar() Grammar {
	g := make(Grammar, len(portMap))
	for i, e := range portMap {
		g[i] = e.name
	}
	return g
}

func pinNameGrammar() Grammar {
	g := make(Grammar, len(pinMap))
	for i, e := range pinMap {
		g[i] = e.name
	}
	return g
}
