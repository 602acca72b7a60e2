package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-life-board/controller"
	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/tui"
	"github.com/sheikhrachel/go-life-board/utils"
)

var (
	configFile  string
	width       int
	height      int
	interval    time.Duration
	density     float64
	pattern     string
	seed        int64
	generations int
	quiet       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "go-life-board",
		Short:        "Conway's Game of Life on a clickable terminal board",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml or json)")
	flags.IntVar(&width, "width", utils.DefaultWidth, "board width in cells")
	flags.IntVar(&height, "height", utils.DefaultHeight, "board height in cells")
	flags.DurationVar(&interval, "interval", utils.DefaultTickInterval, "auto-tick interval")
	flags.Float64Var(&density, "density", 0.15, "random fill density")
	flags.StringVar(&pattern, "pattern", "", "seed the board with a built-in pattern instead of random life")
	flags.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the board headless, printing each generation",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&generations, "generations", 1000, "stop after this many generations (0 = until interrupted)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "only print the final summary")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := utils.SaveConfig(path, utils.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range model.PatternNames() {
				p, _ := model.PatternByName(name)
				w, h := p.Size()
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %dx%d\n", name, w, h)
			}
		},
	}

	rootCmd.AddCommand(runCmd, configCmd, patternsCmd)
	return rootCmd
}

// resolveConfig loads the config file, if any, then applies explicitly set flags
func resolveConfig(cmd *cobra.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if configFile != "" {
		var err error
		if config, err = utils.LoadConfig(configFile); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		config.Width = width
	}
	if flags.Changed("height") {
		config.Height = height
	}
	if flags.Changed("interval") {
		config.TickInterval = interval
	}
	if flags.Changed("density") {
		config.RandomDensity = density
	}
	if flags.Changed("pattern") {
		config.Pattern = pattern
	}
	if flags.Changed("seed") || configFile == "" {
		config.Seed = seed
	}
	if flags.Changed("generations") {
		config.MaxGenerations = generations
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[resolveConfig]")
	}
	return config, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := initializeGame(config)
	if err != nil {
		return err
	}
	return tui.Run(ctrl, config.RandomDensity)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := initializeGame(config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := &model.TerminalRenderer{}
	started := time.Now()

	if snap, err := ctrl.Snapshot(); err == nil && !quiet {
		displayGameInfo(out, config, snap)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		population     []float64
		lastStats      utils.Stats
		loopErr        error
	)

	onTick := func(snap controller.Snapshot) {
		generation++
		population = append(population, float64(snap.Population))
		if stats, err := ctrl.Stats(); err == nil {
			lastStats = stats
		}

		if snap.Stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if !quiet {
			renderer.Clear(out)
			displayGameStatus(out, generation, snap, lastStats, lastRestartGen)
			_ = ctrl.View(func(g *model.Grid) {
				renderer.Display(out, g)
			})
		}

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Fprintf(out, "\nReached maximum generations limit (%d)\n", config.MaxGenerations)
			cancel()
			return
		}

		shouldRestart, reason := checkRestartConditions(snap.Population, stagnantCount, generation, config)
		switch {
		case shouldRestart && config.AutoRestart:
			fmt.Fprintf(out, "Restarting due to %s...\n", reason)
			if err := restartGame(out, ctrl, config); err != nil {
				loopErr = err
				cancel()
				return
			}
			lastRestartGen = generation
			stagnantCount = 0
		case snap.Population == 0:
			fmt.Fprintln(out, "Extinct")
			cancel()
		case stagnantCount >= 2 && stagnantCount < config.StagnationThreshold:
			// Inject some life to try to break the stagnation
			_ = ctrl.InjectRandomLife(config.InjectionCount)
		}
	}

	if err = ctrl.SetAutoTick(true); err != nil {
		return err
	}
	if err = ctrl.Run(ctx, onTick); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if loopErr != nil {
		return loopErr
	}

	fmt.Fprintln(out)
	displayFinalStats(out, generation, started, lastStats)
	plotPopulation(out, population)
	return nil
}
