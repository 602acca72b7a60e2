package model

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Point is a cell offset relative to a pattern's top-left corner
type Point struct {
	X, Y int
}

// Pattern is a named set of live cells
type Pattern struct {
	Name  string
	Cells []Point
}

var (
	Block   = Pattern{Name: "block", Cells: []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}}
	Blinker = Pattern{Name: "blinker", Cells: []Point{{0, 0}, {1, 0}, {2, 0}}}
	Glider  = Pattern{Name: "glider", Cells: []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}}
	Toad    = Pattern{Name: "toad", Cells: []Point{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}}}
	Beacon  = Pattern{Name: "beacon", Cells: []Point{{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3}}}
)

var patterns = map[string]Pattern{
	Block.Name:   Block,
	Blinker.Name: Blinker,
	Glider.Name:  Glider,
	Toad.Name:    Toad,
	Beacon.Name:  Beacon,
}

// PatternByName looks up a built-in pattern, case-insensitively
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[PatternByName] %q", name)
	}
	return p, nil
}

// PatternNames lists the built-in patterns in alphabetical order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the bounding box of the pattern
func (p Pattern) Size() (width, height int) {
	for _, c := range p.Cells {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
	}
	return
}

// Stamp sets the pattern's cells alive with its top-left corner at (x, y).
// Nothing is written unless every cell lands on the board.
func (g *Grid) Stamp(p Pattern, x, y int) error {
	for _, c := range p.Cells {
		if !g.inBounds(x+c.X, y+c.Y) {
			return errors.Wrapf(g.outOfBounds("Stamp", x+c.X, y+c.Y), "pattern %s", p.Name)
		}
	}
	for _, c := range p.Cells {
		g.cells[y+c.Y][x+c.X] = true
	}
	return nil
}
