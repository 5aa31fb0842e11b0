package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
	"github.com/birdrush/birdrush/internal/engine"
)

var (
	flagSimGames    int
	flagSimMaxTicks int
	flagSimRealtime bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <mode>",
	Short: "Run a headless simulation",
	Long: `Run the game engine without a terminal UI, steered by a simple
autopilot that flaps toward the nearest gap. Useful for checking config
tweaks and difficulty scaling, and for reproducing runs with --seed.

By default games run on a manual clock as fast as the host allows.
With --realtime each game runs through the fixed-timestep loop at the
configured --fps, pacing ticks the way a headless host session would.

Examples:
  birdrush simulate classic
  birdrush simulate survival --games 10
  birdrush simulate powerups --seed 42
  birdrush simulate classic --realtime --fps 30`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to simulate")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 100000, "Tick limit per game")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --fps through the engine loop")
}

func runSimulate(_ *cobra.Command, args []string) {
	mode, err := engine.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %s (seed %d, %d game(s))\n", mode.Title(), seed, flagSimGames)

	best, total := 0, 0
	for i := 0; i < flagSimGames; i++ {
		var score, ticks int
		if flagSimRealtime {
			score, ticks = simulateRealtime(gameCfg, mode, seed+int64(i))
		} else {
			score, ticks = simulateGame(gameCfg, mode, seed+int64(i))
		}
		total += score
		if score > best {
			best = score
		}
		fmt.Printf("  game %d: score %d (%d ticks)\n", i+1, score, ticks)
	}

	fmt.Println()
	fmt.Printf("Best: %d  Average: %.1f\n", best, float64(total)/float64(flagSimGames))
}

// simulateGame plays one run to game over using a manual clock, so the
// simulation is deterministic and runs as fast as the host allows.
func simulateGame(gameCfg config.GameConfig, mode engine.Mode, seed int64) (score, ticks int) {
	clock := core.NewManualClock(time.Unix(0, 0))
	eng := engine.New(gameCfg, mode,
		engine.WithSeed(seed),
		engine.WithClock(clock),
	)
	defer eng.Destroy()

	tickDur := time.Second / time.Duration(flagFPS)

	eng.Flap() // first flap starts the run
	for ticks = 0; ticks < flagSimMaxTicks; ticks++ {
		st := eng.Snapshot()
		if st.GameOver() {
			break
		}

		frame := core.NewInputFrame()
		if autopilotShouldFlap(gameCfg, st) {
			frame.Set(core.ActionFlap)
		}

		clock.Advance(tickDur)
		eng.Step(frame)
	}

	return eng.Snapshot().Score, ticks
}

// simulateRealtime plays one run through the fixed-timestep engine loop,
// with the autopilot riding the loop's tick observer. Ticks are paced at
// --fps against the wall clock, like a headless host session.
func simulateRealtime(gameCfg config.GameConfig, mode engine.Mode, seed int64) (score, ticks int) {
	eng := engine.New(gameCfg, mode, engine.WithSeed(seed))
	defer eng.Destroy()

	var loop *engine.Loop
	loop = engine.NewLoop(eng, flagFPS, engine.WithTickObserver(func(st *engine.State) {
		ticks++
		if ticks >= flagSimMaxTicks {
			loop.Destroy()
			return
		}
		if autopilotShouldFlap(gameCfg, st) {
			loop.Flap()
		}
	}))

	loop.Flap() // first flap starts the run
	if err := loop.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: simulation ended early: %v\n", err)
	}

	return eng.Snapshot().Score, ticks
}

// autopilotShouldFlap steers toward the center of the nearest pipe gap, or
// holds mid-playfield altitude when nothing is ahead.
func autopilotShouldFlap(gameCfg config.GameConfig, st *engine.State) bool {
	target := gameCfg.Canvas.GroundY() / 2

	var nearest *engine.Pipe
	for i := range st.Pipes {
		p := &st.Pipes[i]
		if p.X+p.W < st.Bird.X {
			continue // already behind
		}
		if nearest == nil || p.X < nearest.X {
			nearest = p
		}
	}
	if nearest != nil {
		target = nearest.TopHeight + (nearest.BottomY-nearest.TopHeight)/2
	}

	// Flap when the bird's center drops below target and it is falling.
	center := st.Bird.Y + st.Bird.H/2
	return center > target && st.Bird.Velocity >= 0
}
