package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life-board/rules"
)

const historySize = 5

// Grid is a fixed-size board of live/dead cells with hard edges
type Grid struct {
	width      int
	height     int
	cells      [][]bool
	generation int
	history    []string // Recent grid hashes for cycle detection
	pool       *GridPool
}

// TickSummary describes what a single tick changed
type TickSummary struct {
	Births     int
	Deaths     int
	Population int
}

// NewGrid creates a grid of the given dimensions with every cell dead
func NewGrid(width, height int) (*Grid, error) {
	return NewGridWithPool(width, height, sharedPool)
}

// NewGridWithPool is NewGrid with an explicit buffer pool for tick computation
func NewGridWithPool(width, height int, pool *GridPool) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] width=%d height=%d", width, height)
	}
	if pool == nil {
		pool = sharedPool
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  allocCells(width, height),
		pool:   pool,
	}, nil
}

func allocCells(width, height int) [][]bool {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return cells
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Generation returns the number of ticks applied since creation or the last Clear
func (g *Grid) Generation() int {
	return g.generation
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) outOfBounds(op string, x, y int) error {
	return errors.Wrapf(ErrOutOfBounds, "[Grid.%s] (%d,%d) outside %dx%d", op, x, y, g.width, g.height)
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, g.outOfBounds("Get", x, y)
	}
	return g.cells[y][x], nil
}

// Alive reports the state of a cell, treating anything off the board as dead
func (g *Grid) Alive(x, y int) bool {
	return g.inBounds(x, y) && g.cells[y][x]
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inBounds(x, y) {
		return g.outOfBounds("Set", x, y)
	}
	g.cells[y][x] = alive
	return nil
}

// Toggle flips the state of a cell
func (g *Grid) Toggle(x, y int) error {
	if !g.inBounds(x, y) {
		return g.outOfBounds("Toggle", x, y)
	}
	g.cells[y][x] = !g.cells[y][x]
	return nil
}

// NeighborCount counts live cells in the Moore neighborhood of (x, y).
// Positions beyond the edge count as dead; the board does not wrap.
func (g *Grid) NeighborCount(x, y int) (int, error) {
	if !g.inBounds(x, y) {
		return 0, g.outOfBounds("NeighborCount", x, y)
	}
	return g.countNeighbors(x, y), nil
}

func (g *Grid) countNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// Tick advances every cell one generation at once. Next states are computed
// into a separate buffer from the current generation, then committed together.
func (g *Grid) Tick() TickSummary {
	next := g.pool.Get(g.width, g.height)

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.height)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
		bands         = make([]TickSummary, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			band := &bands[i]
			for y := startRow; y < endRow; y++ {
				for x := range g.width {
					alive := g.cells[y][x]
					switch rules.Fate(alive, g.countNeighbors(x, y)) {
					case rules.Birth:
						next[y][x] = true
						band.Births++
					case rules.Survival:
						next[y][x] = true
					case rules.Solitude, rules.Overpopulation:
						next[y][x] = false
						band.Deaths++
					default:
						next[y][x] = false
					}
					if next[y][x] {
						band.Population++
					}
				}
			}
			return nil
		})
	}

	// Workers never fail; Wait is the barrier between compute and commit.
	_ = eg.Wait()

	g.cells, next = next, g.cells
	g.pool.Put(next)
	g.generation++

	var summary TickSummary
	for _, b := range bands {
		summary.Births += b.Births
		summary.Deaths += b.Deaths
		summary.Population += b.Population
	}
	return summary
}

// Clear kills every cell and forgets history
func (g *Grid) Clear() {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = false
		}
	}
	g.generation = 0
	g.history = nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three recorded states
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	current := g.Hash()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == current {
			return true
		}
	}
	return false
}

// InjectRandomLife sets count random cells alive
func (g *Grid) InjectRandomLife(rng *rand.Rand, count int) {
	for range count {
		g.cells[rng.Intn(g.height)][rng.Intn(g.width)] = true
	}
}

// Randomize fills the grid so each cell is alive with the given probability
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < density
		}
	}
}
