package main

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/model"
	"github.com/sheikhrachel/gol-universe/utils"
)

// spaceship is a five cell glider-shaped seed that fits a 6x6 universe
var spaceship = []model.Coord{
	{Row: 1, Col: 2},
	{Row: 2, Col: 3},
	{Row: 3, Col: 1},
	{Row: 3, Col: 2},
	{Row: 3, Col: 3},
}

// game is everything the headless loop owns. Only the loop goroutine touches it.
type game struct {
	config   utils.Config
	rng      *rand.Rand
	universe *model.Universe
	history  model.History
	stats    *utils.Stats

	generation     int
	stagnantCount  int
	lastRestartGen int
}

// newRandom returns the random source for the run, seeded from config when set
func newRandom(config utils.Config) *rand.Rand {
	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newUniverse builds the universe described by config and seeds it
func newUniverse(config utils.Config, rng *rand.Rand) (*model.Universe, error) {
	opts := []model.Option{model.WithRandom(rng)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithBufferPool(model.NewBufferPool()))
	}

	u, err := model.NewUniverse(uint(config.Width), uint(config.Height), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[newUniverse] failed to create universe")
	}
	if err = seedUniverse(u, config.Seed); err != nil {
		return nil, err
	}
	return u, nil
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	rng := newRandom(config)
	u, err := newUniverse(config, rng)
	if err != nil {
		return nil, err
	}
	return &game{
		config:   config,
		rng:      rng,
		universe: u,
		stats:    utils.NewStats(),
	}, nil
}

// seedUniverse clears the universe and lays down the initial generation for mode
func seedUniverse(u *model.Universe, mode string) error {
	u.Clear()

	switch mode {
	case utils.SeedRandom:
		u.Randomize()
	case utils.SeedSpaceship:
		if err := u.SetCells(spaceship...); err != nil {
			return errors.Wrapf(err, "[seedUniverse] %dx%d grid too small for spaceship", u.Width(), u.Height())
		}
	case utils.SeedSymmetric:
		w := u.Width()
		for i := uint(0); i < w*u.Height(); i++ {
			if i%2 == 0 || i%7 == 0 {
				u.ActivateCell(i/w, i%w)
			}
		}
	case utils.SeedEmpty:
	default:
		return errors.Errorf("[seedUniverse] unknown seed mode %q", mode)
	}
	return nil
}

// injectRandomLife activates count random cells to break stagnation.
// ActivateCell wraps, so raw random coordinates are fine.
func injectRandomLife(u *model.Universe, rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		u.ActivateCell(uint(rng.Uint32()), uint(rng.Uint32()))
	}
}

// updateGameState updates the game state and returns status information
func (g *game) updateGameState(lastFrameTime time.Time) (int, float64, string, bool) {
	u := g.universe
	livingCells := int(u.LiveCells())
	density := float64(livingCells) / float64(u.Width()*u.Height()) * 100

	// Update performance stats
	g.stats.Update(g.generation, livingCells, time.Since(lastFrameTime))

	// Check for stagnation against the previous states, then record this one
	hash := u.Hash()
	isStagnant := g.history.IsStagnant(hash)
	g.history.Record(hash)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// renderGameStatus writes the status lines shown above the grid
func (g *game) renderGameStatus(b *bytes.Buffer, livingCells int, density float64, status string) {
	fmt.Fprintf(b, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		g.generation, livingCells, density, status)
	fmt.Fprintf(b, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())

	// Show time since last restart
	if g.generation > g.lastRestartGen {
		fmt.Fprintf(b, "Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}
	b.WriteByte('\n')
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount, generation int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%200 == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the universe in place
func (g *game) restartGame() error {
	if err := seedUniverse(g.universe, g.config.Seed); err != nil {
		return err
	}
	g.history.Reset()
	g.lastRestartGen = g.generation
	g.stagnantCount = 0
	return nil
}

// frame renders the current generation and advances the game by one tick,
// or reseeds it without ticking when a restart is due.
// It reports done once the generation limit is reached.
func (g *game) frame(lastFrameTime time.Time) (screen []byte, done bool, err error) {
	var b bytes.Buffer

	livingCells, density, status, isStagnant := g.updateGameState(lastFrameTime)
	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.renderGameStatus(&b, livingCells, density, status)
	if err = model.NewTerminalRenderer(&b).Display(g.universe.Cells()); err != nil {
		return nil, false, err
	}

	if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
		fmt.Fprintf(&b, "\nReached maximum generations limit (%d)\n", g.config.MaxGenerations)
		return b.Bytes(), true, nil
	}

	shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.generation, g.config)
	switch {
	case shouldRestart && g.config.AutoRestart:
		fmt.Fprintf(&b, "Restarting due to %s...\n", reason)
		if err = g.restartGame(); err != nil {
			return nil, false, err
		}
		// The fresh seed is drawn next frame before it is ticked
		g.generation++
		return b.Bytes(), false, nil
	case g.stagnantCount >= 2 && g.stagnantCount < g.config.StagnationThreshold:
		// Inject some life to try to break the stagnation
		injectRandomLife(g.universe, g.rng, g.config.InjectionCount)
	}

	g.universe.Tick()
	g.generation++
	return b.Bytes(), false, nil
}
