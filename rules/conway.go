package rules

/*
NextState applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors; a dead cell comes alive with exactly 3.
*/
func NextState(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Transition names what happened to a single cell across one tick
type Transition int

const (
	Dormant Transition = iota
	Birth
	Survival
	Solitude
	Overpopulation
)

var transitionNames = [...]string{
	Dormant:        "dormant",
	Birth:          "birth",
	Survival:       "survival",
	Solitude:       "solitude",
	Overpopulation: "overpopulation",
}

func (t Transition) String() string {
	if t < 0 || int(t) >= len(transitionNames) {
		return "unknown"
	}
	return transitionNames[t]
}

// Fate classifies the transition NextState produces for the given cell
func Fate(alive bool, neighbors int) Transition {
	next := NextState(alive, neighbors)
	switch {
	case alive && next:
		return Survival
	case !alive && next:
		return Birth
	case alive && neighbors < 2:
		return Solitude
	case alive:
		return Overpopulation
	default:
		return Dormant
	}
}
