package engine

import (
	"math/rand"
	"time"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
)

// Engine owns the simulation state and advances it one fixed tick at a
// time. All mutation happens inside Step and the input methods; hosts read
// state through Snapshot. There is exactly one writer and no locking;
// hosts that drive the engine from multiple goroutines must serialize
// through Loop.
type Engine struct {
	cfg  config.GameConfig
	diff *config.DifficultyManager

	clock core.Clock
	rng   *rand.Rand
	seed  int64

	mode    Mode
	state   *State
	spawner *Spawner

	onScoreChange func(score int)
	onGameOver    func(finalScore int)

	debugPhase string
	destroyed  bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithCallbacks installs the host's score-changed and game-over hooks.
// Both are invoked synchronously from within Step. Either may be nil.
func WithCallbacks(onScoreChange, onGameOver func(int)) Option {
	return func(e *Engine) {
		e.onScoreChange = onScoreChange
		e.onGameOver = onGameOver
	}
}

// WithClock injects a wall clock. Defaults to the system clock.
func WithClock(c core.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithSeed fixes the RNG seed for deterministic spawning.
// Zero means seed from the current time.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithDebugPhase pre-seeds the state machine for screenshots and tests:
// "playing" starts the run immediately; "gameover" forces a finished run
// with score 42 and high score 100. Unknown values are ignored.
func WithDebugPhase(phase string) Option {
	return func(e *Engine) {
		e.debugPhase = phase
	}
}

// New creates an engine for the given mode.
func New(cfg config.GameConfig, mode Mode, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		diff:  config.NewDifficultyManager(cfg.Difficulty),
		clock: core.SystemClock(),
		mode:  mode,
	}

	for _, opt := range opts {
		opt(e)
	}
	e.init()

	switch e.debugPhase {
	case "playing":
		e.Start()
	case "gameover":
		e.state.Score = 42
		e.state.HighScore = 100
		e.state.Phase = PhaseGameOver
	}

	return e
}

// init builds the RNG, spawner and initial state. Runs once.
func (e *Engine) init() {
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	e.spawner = NewSpawner(e.rng, &e.cfg, e.diff)
	e.state = e.newState(0)
}

// newState builds a fresh run state carrying the given high score.
func (e *Engine) newState(highScore int) *State {
	canvas := e.cfg.Canvas
	return &State{
		Mode:      e.mode,
		Phase:     PhaseStart,
		HighScore: highScore,
		Bird: Bird{
			X: e.cfg.Bird.X,
			Y: canvas.GroundY()/2 - e.cfg.Bird.Height/2,
			W: e.cfg.Bird.Width,
			H: e.cfg.Bird.Height,
		},
	}
}

// Start enters the playing phase. No-op unless in the start phase.
func (e *Engine) Start() {
	if e.destroyed || e.state.Phase != PhaseStart {
		return
	}
	e.state.Phase = PhasePlaying
	e.state.playStarted = e.clock.Now()
}

// Flap applies the upward impulse. The first flap of a run also starts the
// game; after game over it is a no-op until Reset.
func (e *Engine) Flap() {
	if e.destroyed || e.state.GameOver() {
		return
	}
	if e.state.Phase == PhaseStart {
		e.Start()
	}
	e.state.Bird.Velocity = e.cfg.Physics.FlapImpulse
}

// Reset snapshots the high score and reinitializes everything else:
// highScore = max(previous highScore, previous score), all other fields
// back to their start-phase values.
func (e *Engine) Reset() {
	high := e.state.HighScore
	if e.state.Score > high {
		high = e.state.Score
	}
	e.state = e.newState(high)
	e.spawner.Reset()
}

// SetMode switches the rule set and forces a Reset regardless of the
// current phase.
func (e *Engine) SetMode(mode Mode) {
	e.mode = mode
	e.Reset()
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Snapshot returns the current state for rendering and inspection.
// The returned value is a live read-only view: callers must not mutate it
// and must not retain it across ticks.
func (e *Engine) Snapshot() *State {
	return e.state
}

// Step advances the simulation by one fixed tick: input, power-up expiry,
// spawning, physics, collision resolution, survival score accrual, in
// that order. Before the first flap and after game over it only consumes
// input.
func (e *Engine) Step(in core.InputFrame) {
	if e.destroyed || e.state.GameOver() {
		return
	}

	if in.Has(core.ActionFlap) {
		e.Flap()
	}
	if !e.state.IsPlaying() {
		return
	}

	now := e.clock.Now()
	e.state.FrameCount++

	e.expirePowerUps(now)
	e.spawner.Step(e.state)
	e.stepPhysics(now)
	e.resolveCollisions(now)
	if e.state.GameOver() {
		return
	}
	e.accrueSurvivalScore(now)
}

// Destroy permanently stops the engine: further Step/Flap calls are
// no-ops. Idempotent.
func (e *Engine) Destroy() {
	e.destroyed = true
}
