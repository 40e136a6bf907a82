package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-universe/model"
	"github.com/sheikhrachel/gol-universe/utils"
	"github.com/sheikhrachel/gol-universe/view"
)

const defaultConfigFile = "config.json"

func main() {
	config, err := initConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if config.Interactive {
		if err = runInteractive(config); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// initConfig layers defaults, the JSON file, GOL_* environment variables and flags
func initConfig() (utils.Config, error) {
	configFile := defaultConfigFile
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configFile, "f", "config", "Path to a JSON configuration file")

	// Flag values land in locals and are applied after the file and environment
	var (
		width, height, maxGenerations int
		interval                      time.Duration
		seed                          string
		randomSeed                    int64
		interactive                   bool
	)
	flaggy.Int(&width, "x", "width", "Width of a simulation field")
	flaggy.Int(&height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&interval, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Int(&maxGenerations, "s", "maxSteps", "Limit the simulation to maxSteps generations")
	flaggy.String(&seed, "r", "seed", "Initial generation [random|spaceship|symmetric|empty]")
	flaggy.Int64(&randomSeed, "", "randomSeed", "Seed for the random source, 0 uses the clock")
	flaggy.Bool(&interactive, "n", "interactive", "Start interactive mode")
	flaggy.Parse()

	config, err := utils.LoadConfig(configFile)
	if err != nil {
		log.Printf("using default configuration: %v", err)
		config = utils.DefaultConfig()
	}
	if err = utils.ApplyEnv(&config); err != nil {
		return config, err
	}

	if width != 0 {
		config.Width = width
	}
	if height != 0 {
		config.Height = height
	}
	if interval != 0 {
		config.FrameRate = interval
	}
	if maxGenerations != 0 {
		config.MaxGenerations = maxGenerations
	}
	if seed != "" {
		config.Seed = seed
	}
	if randomSeed != 0 {
		config.RandomSeed = randomSeed
	}
	if interactive {
		config.Interactive = true
	}

	return config, config.Validate()
}

// run drives the headless game loop until ctx is cancelled or the generation limit is hit.
// The loop goroutine owns the universe; the display goroutine owns out.
func run(ctx context.Context, config utils.Config, out io.Writer) error {
	g, err := initializeGame(config)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Grid: %dx%d | Seed: %s | Initial living cells: %d\n",
		g.universe.Width(), g.universe.Height(), config.Seed, g.universe.LiveCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")

	var (
		eg, egCtx = errgroup.WithContext(ctx)
		frames    = make(chan []byte, 1)
	)

	eg.Go(func() error {
		defer close(frames)

		ticker := time.NewTicker(config.FrameRate)
		defer ticker.Stop()

		lastFrameTime := time.Now()
		for {
			frameStart := time.Now()
			screen, done, err := g.frame(lastFrameTime)
			if err != nil {
				return err
			}
			lastFrameTime = frameStart

			select {
			case frames <- screen:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			if done {
				return nil
			}

			select {
			case <-ticker.C:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
	})

	eg.Go(func() error {
		renderer := model.NewTerminalRenderer(out)
		for screen := range frames {
			if err := renderer.Clear(); err != nil {
				log.Printf("clear terminal: %v", err)
			}
			if _, err := out.Write(screen); err != nil {
				return err
			}
		}
		return nil
	})

	err = eg.Wait()
	fmt.Fprintln(out, "\nShutting down gracefully...")
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
		g.generation, g.stats.Runtime().Seconds())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
	return err
}

// runInteractive hands the universe to the terminal UI
func runInteractive(config utils.Config) error {
	u, err := newUniverse(config, newRandom(config))
	if err != nil {
		return err
	}
	ui, err := view.NewConsoleUI(u, config)
	if err != nil {
		return err
	}
	return ui.Start()
}
