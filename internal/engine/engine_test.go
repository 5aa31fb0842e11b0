package engine

import (
	"testing"
	"time"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
)

func testEngine(t *testing.T, mode Mode, opts ...Option) (*Engine, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(1000, 0))
	opts = append([]Option{WithSeed(42), WithClock(clock)}, opts...)
	return New(config.Default(), mode, opts...), clock
}

func stepN(e *Engine, clock *core.ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second / 60)
		e.Step(core.InputFrame{})
	}
}

func TestFlapStartsGame(t *testing.T) {
	e, _ := testEngine(t, ModeClassic)

	st := e.Snapshot()
	if st.Phase != PhaseStart {
		t.Fatalf("initial phase = %v, want start", st.Phase)
	}

	e.Flap()

	if st.Phase != PhasePlaying {
		t.Errorf("phase after first flap = %v, want playing", st.Phase)
	}
	if st.Bird.Velocity >= 0 {
		t.Errorf("flap velocity = %v, want negative (upward)", st.Bird.Velocity)
	}
}

func TestStepIdleBeforeFirstFlap(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)

	y := e.Snapshot().Bird.Y
	stepN(e, clock, 30)

	if got := e.Snapshot().Bird.Y; got != y {
		t.Errorf("bird moved before first flap: %v -> %v", y, got)
	}
	if fc := e.Snapshot().FrameCount; fc != 0 {
		t.Errorf("frame count advanced before first flap: %d", fc)
	}
}

func TestBirdStaysWithinBounds(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)
	e.Start()

	groundY := config.Default().Canvas.GroundY()
	for i := 0; i < 400; i++ {
		clock.Advance(time.Second / 60)
		in := core.NewInputFrame()
		if i%5 == 0 {
			in.Set(core.ActionFlap)
		}
		e.Step(in)

		b := e.Snapshot().Bird
		if b.Y < 0 {
			t.Fatalf("tick %d: bird above ceiling, y=%v", i, b.Y)
		}
		if b.Y+b.H > groundY {
			t.Fatalf("tick %d: bird below ground, y=%v", i, b.Y)
		}
		if e.Snapshot().GameOver() {
			break
		}
	}
}

func TestCeilingContactZeroesVelocityWithoutPenalty(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)
	e.Start()

	st := e.Snapshot()
	st.Bird.Y = 1
	st.Bird.Velocity = -8

	stepN(e, clock, 1)

	if st.Bird.Y != 0 {
		t.Errorf("bird y = %v, want clamped to 0", st.Bird.Y)
	}
	if st.Bird.Velocity != 0 {
		t.Errorf("bird velocity = %v, want 0 after ceiling clamp", st.Bird.Velocity)
	}
	if st.GameOver() {
		t.Error("ceiling contact should not end the game")
	}
}

func TestGroundContactEndsGame(t *testing.T) {
	var finalScore = -1
	e, clock := testEngine(t, ModeClassic,
		WithCallbacks(nil, func(s int) { finalScore = s }))
	e.Start()

	st := e.Snapshot()
	groundY := config.Default().Canvas.GroundY()
	st.Bird.Y = groundY - st.Bird.H - 1
	st.Bird.Velocity = 10

	stepN(e, clock, 1)

	if !st.GameOver() {
		t.Fatal("game should be over after ground contact")
	}
	if st.IsPlaying() {
		t.Error("isPlaying should be false after game over")
	}
	if finalScore != 0 {
		t.Errorf("game-over callback score = %d, want 0", finalScore)
	}
	if st.Bird.Y+st.Bird.H > groundY {
		t.Errorf("bird not clamped to ground, y=%v", st.Bird.Y)
	}
}

func TestBirdRotationClamped(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)
	e.Start()

	st := e.Snapshot()
	st.Bird.Y = 100

	st.Bird.Velocity = 10
	stepN(e, clock, 1)
	if st.Bird.Rotation <= 0 || st.Bird.Rotation > 90 {
		t.Errorf("falling rotation = %v, want in (0, 90]", st.Bird.Rotation)
	}

	st.Bird.Y = 200
	e.Flap()
	stepN(e, clock, 1)
	if st.Bird.Rotation >= 0 || st.Bird.Rotation < -30 {
		t.Errorf("rising rotation = %v, want in [-30, 0)", st.Bird.Rotation)
	}
}

func TestPipePassScoresExactlyOnce(t *testing.T) {
	var events []int
	e, clock := testEngine(t, ModeClassic,
		WithCallbacks(func(s int) { events = append(events, s) }, nil))
	e.Start()

	st := e.Snapshot()
	// Pipe already behind the bird's x, gap irrelevant
	st.Pipes = append(st.Pipes, Pipe{X: 10, W: 60, TopHeight: 200, BottomY: 350})
	st.Bird.Y = 260

	for i := 0; i < 10; i++ {
		st.Bird.Y = 260
		st.Bird.Velocity = 0
		stepN(e, clock, 1)
	}

	if st.Score != 1 {
		t.Errorf("score = %d, want 1", st.Score)
	}
	if len(events) != 1 || events[0] != 1 {
		t.Errorf("score events = %v, want exactly [1]", events)
	}
}

func TestDoublePowerUpDoublesPipePoints(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.ActivePowerUps = append(st.ActivePowerUps, ActivePowerUp{
		Kind:      PowerDouble,
		ExpiresAt: clock.Now().Add(5 * time.Second),
	})
	st.Pipes = append(st.Pipes, Pipe{X: 10, W: 60, TopHeight: 200, BottomY: 350})
	st.Bird.Y = 260

	stepN(e, clock, 1)

	if st.Score != 2 {
		t.Errorf("score with double active = %d, want 2", st.Score)
	}
}

func TestShieldAbsorbsExactlyOneCollision(t *testing.T) {
	overCalls := 0
	e, clock := testEngine(t, ModePowerUps,
		WithCallbacks(nil, func(int) { overCalls++ }))
	e.Start()

	st := e.Snapshot()
	st.HasShield = true
	st.Bird.Y = 248
	// Top segment covers the bird; the pipe barely scrolls over two ticks
	st.Pipes = append(st.Pipes, Pipe{X: 60, W: 60, TopHeight: 400, BottomY: 520})

	stepN(e, clock, 1)

	if st.GameOver() {
		t.Fatal("first collision should be absorbed by the shield")
	}
	if st.HasShield {
		t.Fatal("shield should be consumed by the first collision")
	}

	st.Bird.Y = 248
	st.Bird.Velocity = 0
	stepN(e, clock, 1)

	if !st.GameOver() {
		t.Fatal("second collision without shield should end the game")
	}
	if overCalls != 1 {
		t.Errorf("game-over callback fired %d times, want 1", overCalls)
	}
}

func TestPowerUpPickup(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.Bird.Y = 260
	pu := &PowerUp{Kind: PowerSlowMo, X: st.Bird.X + 10, Y: 270}
	st.Pipes = append(st.Pipes, Pipe{X: 300, W: 60, TopHeight: 200, BottomY: 350, PowerUp: pu})

	stepN(e, clock, 1)

	if !pu.Collected {
		t.Fatal("overlapping pickup should be collected")
	}
	if !st.ActiveKind(PowerSlowMo, clock.Now()) {
		t.Error("slowmo should be active after pickup")
	}
	if len(st.Effects) != 1 {
		t.Errorf("collect effects = %d, want 1", len(st.Effects))
	}
}

func TestPowerUpPickupRequiresCenterOverlap(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.Bird.Y = 260
	// Trailing edge of the bird grazes the square, center stays outside
	pu := &PowerUp{Kind: PowerSlowMo, X: st.Bird.X - 8, Y: 260}
	st.Pipes = append(st.Pipes, Pipe{X: 300, W: 60, TopHeight: 200, BottomY: 350, PowerUp: pu})

	stepN(e, clock, 1)

	if !st.Bird.Box().Intersects(pu.Box(e.cfg.PowerUps.Size)) {
		t.Fatal("setup: bird box should graze the pickup square")
	}
	if pu.Collected {
		t.Error("grazing pickup should not be collected without center overlap")
	}
	if len(st.ActivePowerUps) != 0 {
		t.Errorf("active effects = %v, want none", st.ActivePowerUps)
	}
}

func TestShieldPickupSetsFlagWithoutTimer(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.Bird.Y = 260
	pu := &PowerUp{Kind: PowerShield, X: st.Bird.X + 10, Y: 270}
	st.Pipes = append(st.Pipes, Pipe{X: 300, W: 60, TopHeight: 200, BottomY: 350, PowerUp: pu})

	stepN(e, clock, 1)

	if !st.HasShield {
		t.Error("shield flag should be set immediately on pickup")
	}
	if len(st.ActivePowerUps) != 0 {
		t.Errorf("shield should not create a timed entry, got %v", st.ActivePowerUps)
	}
}

func TestSlowMoHalvesSpeedThenExpires(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.ActivePowerUps = append(st.ActivePowerUps, ActivePowerUp{
		Kind:      PowerSlowMo,
		ExpiresAt: clock.Now().Add(5 * time.Second),
	})

	if got := e.speedMod(clock.Now()); got != 0.5 {
		t.Errorf("speedMod with slowmo = %v, want 0.5", got)
	}

	// Gravity is halved while slowmo is active
	st.Bird.Y = 200
	st.Bird.Velocity = 0
	stepN(e, clock, 1)
	wantVel := config.Default().Physics.Gravity * 0.5
	if st.Bird.Velocity != wantVel {
		t.Errorf("velocity after slowmo tick = %v, want %v", st.Bird.Velocity, wantVel)
	}

	clock.Advance(5 * time.Second)
	if got := e.speedMod(clock.Now()); got != 1.0 {
		t.Errorf("speedMod after expiry = %v, want 1.0", got)
	}
}

func TestSameKindPickupReplacesNoStacking(t *testing.T) {
	e, clock := testEngine(t, ModePowerUps)
	e.Start()

	st := e.Snapshot()
	st.ActivePowerUps = append(st.ActivePowerUps, ActivePowerUp{
		Kind:      PowerSlowMo,
		ExpiresAt: clock.Now().Add(1 * time.Second),
	})

	pu := &PowerUp{Kind: PowerSlowMo, X: st.Bird.X + 10, Y: 270}
	st.Bird.Y = 260
	st.Pipes = append(st.Pipes, Pipe{X: 300, W: 60, TopHeight: 200, BottomY: 350, PowerUp: pu})

	stepN(e, clock, 1)

	count := 0
	for _, ap := range st.ActivePowerUps {
		if ap.Kind == PowerSlowMo {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("slowmo entries after re-pickup = %d, want 1 (replaced, not stacked)", count)
	}
	// The replacement carries the full fresh duration
	remaining := st.ActivePowerUps[len(st.ActivePowerUps)-1].ExpiresAt.Sub(clock.Now())
	if remaining < 4*time.Second {
		t.Errorf("remaining duration = %v, want close to 5s", remaining)
	}
}

func TestResetCarriesHighScoreForward(t *testing.T) {
	e, _ := testEngine(t, ModeClassic)
	e.Start()

	st := e.Snapshot()
	st.Score = 7
	st.Pipes = append(st.Pipes, Pipe{X: 100, W: 60})
	st.FrameCount = 123

	e.Reset()

	st = e.Snapshot()
	if st.HighScore != 7 {
		t.Errorf("high score after reset = %d, want 7", st.HighScore)
	}
	if st.Score != 0 || st.FrameCount != 0 {
		t.Errorf("score/frames after reset = %d/%d, want 0/0", st.Score, st.FrameCount)
	}
	if len(st.Pipes) != 0 || len(st.Obstacles) != 0 {
		t.Error("entity lists should be empty after reset")
	}
	if st.Phase != PhaseStart {
		t.Errorf("phase after reset = %v, want start", st.Phase)
	}

	// A lower follow-up run must not regress the high score
	e.Start()
	e.Snapshot().Score = 3
	e.Reset()
	if got := e.Snapshot().HighScore; got != 7 {
		t.Errorf("high score after lower run = %d, want 7", got)
	}
}

func TestSetModeForcesReset(t *testing.T) {
	e, _ := testEngine(t, ModeClassic)
	e.Start()
	e.Snapshot().Score = 4

	e.SetMode(ModeSurvival)

	st := e.Snapshot()
	if st.Mode != ModeSurvival {
		t.Errorf("mode = %v, want survival", st.Mode)
	}
	if st.Phase != PhaseStart || st.Score != 0 {
		t.Error("SetMode should reset the run")
	}
	if st.HighScore != 4 {
		t.Errorf("high score = %d, want 4 carried over", st.HighScore)
	}
}

func TestGameOverUpdatesHighScore(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)
	e.Start()

	st := e.Snapshot()
	st.Score = 9
	st.Bird.Y = config.Default().Canvas.GroundY()
	stepN(e, clock, 1)

	if !st.GameOver() {
		t.Fatal("expected game over")
	}
	if st.HighScore != 9 {
		t.Errorf("high score at game over = %d, want 9", st.HighScore)
	}
}

func TestFlapNoOpAfterGameOver(t *testing.T) {
	e, _ := testEngine(t, ModeClassic, WithDebugPhase("gameover"))

	e.Flap()

	st := e.Snapshot()
	if !st.GameOver() {
		t.Error("flap after game over should not revive the run")
	}
	if st.Bird.Velocity != 0 {
		t.Errorf("flap after game over changed velocity: %v", st.Bird.Velocity)
	}
}

func TestDebugPhaseGameOver(t *testing.T) {
	e, _ := testEngine(t, ModeClassic, WithDebugPhase("gameover"))

	st := e.Snapshot()
	if !st.GameOver() || st.Score != 42 || st.HighScore != 100 {
		t.Errorf("debug gameover state = phase %v score %d high %d, want gameover/42/100",
			st.Phase, st.Score, st.HighScore)
	}
}

func TestDestroyStopsEngine(t *testing.T) {
	e, clock := testEngine(t, ModeClassic)
	e.Start()
	stepN(e, clock, 5)
	frames := e.Snapshot().FrameCount

	e.Destroy()
	e.Destroy() // idempotent
	stepN(e, clock, 5)
	e.Flap()

	if got := e.Snapshot().FrameCount; got != frames {
		t.Errorf("engine advanced after Destroy: %d -> %d", frames, got)
	}
}

func TestEndToEndPipePass(t *testing.T) {
	var events []int
	e, clock := testEngine(t, ModeClassic,
		WithCallbacks(func(s int) { events = append(events, s) }, nil))
	e.Start()

	st := e.Snapshot()
	st.Pipes = append(st.Pipes, Pipe{X: 400, W: 60, TopHeight: 200, BottomY: 350})

	// Hold the bird inside the gap band while the pipe scrolls past
	for i := 0; i < 250 && st.Score == 0; i++ {
		st.Bird.Y = 260
		st.Bird.Velocity = 0
		stepN(e, clock, 1)
	}

	if st.GameOver() {
		t.Fatal("bird inside the gap should not collide")
	}
	if st.Score != 1 {
		t.Fatalf("score = %d, want 1 after the pipe passes", st.Score)
	}

	// A few more ticks must not double-count the same pipe
	for i := 0; i < 20; i++ {
		st.Bird.Y = 260
		st.Bird.Velocity = 0
		stepN(e, clock, 1)
	}
	if len(events) != 1 || events[0] != 1 {
		t.Errorf("score events = %v, want exactly [1]", events)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (int, int, float64) {
		clock := core.NewManualClock(time.Unix(1000, 0))
		e := New(config.Default(), ModeClassic, WithSeed(12345), WithClock(clock))
		e.Start()
		for i := 0; i < 300; i++ {
			clock.Advance(time.Second / 60)
			in := core.NewInputFrame()
			if i%15 == 0 {
				in.Set(core.ActionFlap)
			}
			e.Step(in)
			if e.Snapshot().GameOver() {
				break
			}
		}
		st := e.Snapshot()
		return st.Score, st.FrameCount, st.Bird.Y
	}

	s1, f1, y1 := run()
	s2, f2, y2 := run()

	if s1 != s2 || f1 != f2 || y1 != y2 {
		t.Errorf("runs diverged: (%d, %d, %v) vs (%d, %d, %v)", s1, f1, y1, s2, f2, y2)
	}
}
