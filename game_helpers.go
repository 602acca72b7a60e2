package main

import (
	"fmt"
	"io"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/controller"
	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/utils"
)

const periodicRefresh = 200

// initializeGame creates the controller with a seeded board
func initializeGame(config utils.Config) (*controller.Controller, error) {
	ctrl := controller.New(config)
	if err := ctrl.CreateBoard(config.Width, config.Height); err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create board")
	}
	if err := seedBoard(ctrl, config); err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to seed board")
	}
	return ctrl, nil
}

// seedBoard places the configured pattern in the middle of the board, or
// random life with a few gliders and blinkers when no pattern is set
func seedBoard(ctrl *controller.Controller, config utils.Config) error {
	if config.Pattern != "" {
		p, err := model.PatternByName(config.Pattern)
		if err != nil {
			return err
		}
		w, h := p.Size()
		return ctrl.Seed(p.Name, (config.Width-w)/2, (config.Height-h)/2)
	}

	if err := ctrl.Randomize(config.RandomDensity); err != nil {
		return err
	}
	stamps := []struct {
		pattern model.Pattern
		x, y    int
	}{
		{model.Glider, 5, 5},
		{model.Glider, config.Width - 8, 5},
		{model.Blinker, config.Width / 4, config.Height / 4},
		{model.Blinker, 3 * config.Width / 4, 3 * config.Height / 4},
	}
	for _, s := range stamps {
		// Patterns that do not fit small boards are skipped.
		if err := ctrl.Seed(s.pattern.Name, s.x, s.y); err != nil && !errors.Is(err, model.ErrOutOfBounds) {
			return err
		}
	}
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, snap controller.Snapshot) {
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d | Interval: %s\n",
		snap.Width, snap.Height, snap.Population, config.TickInterval)
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// gameStatus describes the board for the status line
func gameStatus(snap controller.Snapshot) string {
	switch {
	case snap.Population == 0:
		return "Extinct"
	case snap.Stagnant:
		return fmt.Sprintf("Stagnant (%d)", snap.Generation)
	default:
		return "Active"
	}
}

// displayGameStatus shows the current game status
func displayGameStatus(
	out io.Writer,
	generation int,
	snap controller.Snapshot,
	stats utils.Stats,
	lastRestartGen int,
) {
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Born: %d | Died: %d | Status: %s\n",
		generation, snap.Population, snap.Density, snap.Births, snap.Deaths, gameStatus(snap))
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	if generation > lastRestartGen {
		fmt.Fprintf(out, "Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%periodicRefresh == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame replaces the board with a freshly seeded one
func restartGame(out io.Writer, ctrl *controller.Controller, config utils.Config) error {
	if err := ctrl.CreateBoard(config.Width, config.Height); err != nil {
		return errors.Wrap(err, "[restartGame] failed to create board")
	}
	if err := seedBoard(ctrl, config); err != nil {
		return errors.Wrap(err, "[restartGame] failed to seed board")
	}

	snap, err := ctrl.Snapshot()
	if err != nil {
		return errors.Wrap(err, "[restartGame]")
	}
	fmt.Fprintf(out, "New patterns loaded! Living cells: %d\n", snap.Population)
	return nil
}

// plotPopulation charts the population over the run
func plotPopulation(out io.Writer, history []float64) {
	if len(history) < 2 {
		return
	}
	fmt.Fprintln(out, asciigraph.Plot(history,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population per generation"),
	))
}

// displayFinalStats prints the summary shown when a run ends
func displayFinalStats(out io.Writer, generation int, started time.Time, stats utils.Stats) {
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
		generation, time.Since(started).Seconds())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population, %d births, %d deaths\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.TotalBirths, stats.TotalDeaths)
}
