// Package controller owns the active board and serializes every action on it:
// board creation, cell edits, manual ticks and the auto-tick timer.
package controller

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/utils"
)

var (
	// ErrNoBoard is returned when an action needs a board and none has been created
	ErrNoBoard = errors.New("no board has been set up")
	// ErrBelowMinimum is returned when a requested board side is under the configured minimum
	ErrBelowMinimum = errors.New("board dimension below minimum")
)

// Snapshot is a read-only summary of the board after an action
type Snapshot struct {
	Width      int
	Height     int
	Generation int
	Population int
	Births     int
	Deaths     int
	Density    float64
	Stagnant   bool
}

// Controller holds zero or one board plus the auto-tick settings
type Controller struct {
	mu sync.Mutex

	config   utils.Config
	grid     *model.Grid
	stats    *utils.Stats
	rng      *rand.Rand
	interval time.Duration
	autoTick bool
	lastTick time.Time

	// wake interrupts a pending wait in Run when settings change
	wake chan struct{}
}

func New(config utils.Config) *Controller {
	interval := config.TickInterval
	if interval <= 0 {
		interval = utils.DefaultTickInterval
	}
	if config.MinDimension < 1 {
		config.MinDimension = 1
	}
	return &Controller{
		config:   config,
		rng:      rand.New(rand.NewSource(config.Seed)),
		interval: interval,
		autoTick: config.AutoTick,
		wake:     make(chan struct{}, 1),
	}
}

// CreateBoard replaces the current board with an empty one of the given size.
// The existing board is kept if the size is rejected.
func (c *Controller) CreateBoard(width, height int) error {
	if width < c.config.MinDimension {
		return errors.Wrapf(ErrBelowMinimum, "[CreateBoard] width %d, minimum %d", width, c.config.MinDimension)
	}
	if height < c.config.MinDimension {
		return errors.Wrapf(ErrBelowMinimum, "[CreateBoard] height %d, minimum %d", height, c.config.MinDimension)
	}

	grid, err := model.NewGrid(width, height)
	if err != nil {
		return errors.Wrap(err, "[CreateBoard]")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid = grid
	c.stats = utils.NewStats()
	c.lastTick = time.Now()
	return nil
}

// DestroyBoard drops the current board, stopping the auto-tick timer
func (c *Controller) DestroyBoard() {
	c.mu.Lock()
	c.grid = nil
	c.stats = nil
	c.autoTick = false
	c.mu.Unlock()
	c.notify()
}

// HasBoard reports whether a board currently exists
func (c *Controller) HasBoard() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid != nil
}

// View calls fn with the current board while holding the lock.
// fn must not retain the grid or call back into the controller.
func (c *Controller) View(fn func(g *model.Grid)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return errors.Wrap(ErrNoBoard, "[View]")
	}
	fn(c.grid)
	return nil
}

// Stats returns a copy of the current board's tick statistics
func (c *Controller) Stats() (utils.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return utils.Stats{}, errors.Wrap(ErrNoBoard, "[Stats]")
	}
	s := *c.stats
	s.PopulationHistory = append([]float64(nil), c.stats.PopulationHistory...)
	return s, nil
}

// Snapshot summarizes the current board
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return Snapshot{}, errors.Wrap(ErrNoBoard, "[Snapshot]")
	}
	return c.snapshotLocked(model.TickSummary{Population: c.grid.CountLivingCells()}), nil
}

func (c *Controller) snapshotLocked(summary model.TickSummary) Snapshot {
	g := c.grid
	return Snapshot{
		Width:      g.Width(),
		Height:     g.Height(),
		Generation: g.Generation(),
		Population: summary.Population,
		Births:     summary.Births,
		Deaths:     summary.Deaths,
		Density:    float64(summary.Population) / float64(g.Width()*g.Height()) * 100,
		Stagnant:   g.IsStagnant(),
	}
}

// withGrid runs fn on the board under the lock
func (c *Controller) withGrid(op string, fn func(g *model.Grid) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return errors.Wrapf(ErrNoBoard, "[%s]", op)
	}
	return fn(c.grid)
}

// Toggle flips a single cell
func (c *Controller) Toggle(x, y int) error {
	return c.withGrid("Toggle", func(g *model.Grid) error {
		return g.Toggle(x, y)
	})
}

// Set sets a single cell
func (c *Controller) Set(x, y int, alive bool) error {
	return c.withGrid("Set", func(g *model.Grid) error {
		return g.Set(x, y, alive)
	})
}

// Seed stamps a named built-in pattern with its top-left corner at (x, y)
func (c *Controller) Seed(pattern string, x, y int) error {
	p, err := model.PatternByName(pattern)
	if err != nil {
		return err
	}
	return c.withGrid("Seed", func(g *model.Grid) error {
		return g.Stamp(p, x, y)
	})
}

// Randomize refills the board at the given density
func (c *Controller) Randomize(density float64) error {
	return c.withGrid("Randomize", func(g *model.Grid) error {
		g.Randomize(c.rng, density)
		return nil
	})
}

// InjectRandomLife sets count random cells alive
func (c *Controller) InjectRandomLife(count int) error {
	return c.withGrid("InjectRandomLife", func(g *model.Grid) error {
		g.InjectRandomLife(c.rng, count)
		return nil
	})
}

// Clear kills every cell on the board
func (c *Controller) Clear() error {
	return c.withGrid("Clear", func(g *model.Grid) error {
		g.Clear()
		return nil
	})
}

// Step advances the board one generation
func (c *Controller) Step() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return Snapshot{}, errors.Wrap(ErrNoBoard, "[Step]")
	}

	c.grid.UpdateHistory()
	summary := c.grid.Tick()

	now := time.Now()
	c.stats.Update(c.grid.Generation(), summary.Population, summary.Births, summary.Deaths, now.Sub(c.lastTick))
	c.lastTick = now

	return c.snapshotLocked(summary), nil
}

// Interval returns the auto-tick interval
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetInterval changes the auto-tick interval. Non-positive values are ignored.
func (c *Controller) SetInterval(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
	c.notify()
	return true
}

// AutoTick reports whether the timer is running
func (c *Controller) AutoTick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoTick
}

// SetAutoTick starts or stops the timer
func (c *Controller) SetAutoTick(on bool) error {
	c.mu.Lock()
	if on && c.grid == nil {
		c.mu.Unlock()
		return errors.Wrap(ErrNoBoard, "[SetAutoTick]")
	}
	c.autoTick = on
	c.mu.Unlock()
	c.notify()
	return nil
}

// ToggleAutoTick flips the timer and returns whether it is now running
func (c *Controller) ToggleAutoTick() (bool, error) {
	on := !c.AutoTick()
	if err := c.SetAutoTick(on); err != nil {
		return false, err
	}
	return on, nil
}

func (c *Controller) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run ticks the board every interval while auto-tick is on, calling onTick
// after each generation. It returns when ctx is done; a tick in progress
// always completes first.
func (c *Controller) Run(ctx context.Context, onTick func(Snapshot)) error {
	for {
		c.mu.Lock()
		on, interval := c.autoTick && c.grid != nil, c.interval
		c.mu.Unlock()

		if !on {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.wake:
				continue
			}
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-c.wake:
			timer.Stop()
			continue
		case <-timer.C:
		}

		if !c.AutoTick() {
			continue
		}
		snap, err := c.Step()
		if errors.Is(err, ErrNoBoard) {
			continue
		}
		if err != nil {
			return err
		}
		if onTick != nil {
			onTick(snap)
		}
	}
}
