package engine

import (
	"testing"
	"time"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
)

// survivalEngine returns a playing survival engine with the obstacle
// injected. Obstacle positions account for one tick of scroll.
func survivalEngine(t *testing.T, ob Obstacle, opts ...Option) (*Engine, *core.ManualClock) {
	t.Helper()
	e, clock := testEngine(t, ModeSurvival, opts...)
	e.Start()
	e.Snapshot().Obstacles = append(e.Snapshot().Obstacles, ob)
	return e, clock
}

func TestSpikeLethal(t *testing.T) {
	spike := &Spike{obstacleBase: obstacleBase{X: 84, Y: 240, W: 30, H: 40}}
	e, clock := survivalEngine(t, spike)

	stepN(e, clock, 1)

	if !e.Snapshot().GameOver() {
		t.Error("spike contact should end the game")
	}
}

func TestLaserLethalOnlyWhileOn(t *testing.T) {
	t.Run("off", func(t *testing.T) {
		laser := &Laser{
			obstacleBase: obstacleBase{X: 84, Y: 250, W: 120, H: 6},
			On:           false,
			OnFrames:     60,
			OffFrames:    10000,
		}
		e, clock := survivalEngine(t, laser)
		stepN(e, clock, 1)

		if e.Snapshot().GameOver() {
			t.Error("flying through an off laser should be safe")
		}
	})

	t.Run("on", func(t *testing.T) {
		laser := &Laser{
			obstacleBase: obstacleBase{X: 84, Y: 250, W: 120, H: 6},
			On:           true,
			OnFrames:     10000,
			OffFrames:    60,
		}
		e, clock := survivalEngine(t, laser)
		stepN(e, clock, 1)

		if !e.Snapshot().GameOver() {
			t.Error("an on laser should be lethal")
		}
	})
}

func TestLaserDutyCycle(t *testing.T) {
	l := &Laser{On: true, OnFrames: 3, OffFrames: 2}

	states := make([]bool, 0, 10)
	for i := 0; i < 10; i++ {
		l.Advance(0)
		states = append(states, l.On)
	}

	want := []bool{true, true, false, false, true, true, true, false, false, true}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("duty cycle = %v, want %v", states, want)
		}
	}
}

func TestPortalTeleportsOneShot(t *testing.T) {
	portal := &Portal{obstacleBase: obstacleBase{X: 84, Y: 240, W: 24, H: 48}}
	e, clock := survivalEngine(t, portal)

	stepN(e, clock, 1)

	st := e.Snapshot()
	if st.GameOver() {
		t.Fatal("portals must never be lethal")
	}
	if !portal.Teleported {
		t.Fatal("portal should be spent after contact")
	}
	if st.Score != config.Default().Survival.PortalBonus {
		t.Errorf("score = %d, want portal bonus %d", st.Score, config.Default().Survival.PortalBonus)
	}
	if st.Bird.Velocity != 0 {
		t.Errorf("velocity after teleport = %v, want 0", st.Bird.Velocity)
	}
	groundY := config.Default().Canvas.GroundY()
	if st.Bird.Y < 0 || st.Bird.Y+st.Bird.H > groundY {
		t.Errorf("teleport destination y=%v outside the playfield", st.Bird.Y)
	}

	// Re-contact with the same spent portal awards nothing
	portal.X = st.Bird.X
	portal.Y = st.Bird.Y
	stepN(e, clock, 1)
	if st.Score != config.Default().Survival.PortalBonus {
		t.Errorf("score after re-contact = %d, want unchanged", st.Score)
	}
	if st.GameOver() {
		t.Error("spent portal should be inert")
	}
}

func TestMeteorUsesCircularHitbox(t *testing.T) {
	// Corner graze: bounding boxes overlap but the circle misses
	miss := &Meteor{
		obstacleBase: obstacleBase{X: 66, Y: 230, W: 24, H: 24},
		FloorY:       600,
	}
	e, clock := survivalEngine(t, miss)
	stepN(e, clock, 1)

	st := e.Snapshot()
	hitbox := st.Bird.Hitbox(config.Default().Bird.HitboxInset)
	if !hitbox.Intersects(miss.Bounds()) {
		t.Fatal("test setup: bounding boxes should overlap for a meaningful graze")
	}
	if st.GameOver() {
		t.Fatal("corner graze outside the circle should be safe")
	}

	hit := &Meteor{
		obstacleBase: obstacleBase{X: 87, Y: 248, W: 24, H: 24},
		FloorY:       600,
	}
	e2, clock2 := survivalEngine(t, hit)
	stepN(e2, clock2, 1)

	if !e2.Snapshot().GameOver() {
		t.Error("direct meteor hit should end the game")
	}
}

func TestMeteorFallsAndExpiresBelowFloor(t *testing.T) {
	m := &Meteor{
		obstacleBase: obstacleBase{X: 300, Y: 100, W: 24, H: 24},
		FallSpeed:    5,
		Drift:        1,
		FloorY:       200,
	}

	m.Advance(2)

	if m.X != 297 {
		t.Errorf("x after advance = %v, want 297 (scroll + drift)", m.X)
	}
	if m.Y != 105 {
		t.Errorf("y after advance = %v, want 105", m.Y)
	}
	if m.Expired(50) {
		t.Error("meteor above the floor should not be expired")
	}

	m.Y = 201
	if !m.Expired(50) {
		t.Error("meteor below the floor should be expired")
	}
}

func TestBarrierGapSafety(t *testing.T) {
	newBarrier := func(gapY float64) *Barrier {
		groundY := config.Default().Canvas.GroundY()
		return &Barrier{
			obstacleBase: obstacleBase{X: 75, Y: 0, W: 30, H: groundY},
			GapY:         gapY,
			GapH:         140,
			GapSpeed:     0,
			GapDir:       1,
			MinY:         50,
			MaxY:         groundY - 50 - 140,
		}
	}

	t.Run("inside gap", func(t *testing.T) {
		e, clock := survivalEngine(t, newBarrier(230))
		stepN(e, clock, 1)
		if e.Snapshot().GameOver() {
			t.Error("bird inside the gap should be safe")
		}
	})

	t.Run("outside gap", func(t *testing.T) {
		e, clock := survivalEngine(t, newBarrier(300))
		stepN(e, clock, 1)
		if !e.Snapshot().GameOver() {
			t.Error("bird outside the gap should collide with the column")
		}
	})
}

func TestBarrierGapOscillationBounces(t *testing.T) {
	b := &Barrier{
		GapY:     95,
		GapH:     140,
		GapSpeed: 10,
		GapDir:   1,
		MinY:     50,
		MaxY:     100,
	}

	b.Advance(0)
	if b.GapY != 100 || b.GapDir != -1 {
		t.Fatalf("after lower bound: gapY=%v dir=%v, want 100/-1", b.GapY, b.GapDir)
	}

	for i := 0; i < 5; i++ {
		b.Advance(0)
	}
	if b.GapY != 50 || b.GapDir != 1 {
		t.Fatalf("after upper bound: gapY=%v dir=%v, want 50/1", b.GapY, b.GapDir)
	}
}

func TestSurvivalTimeScoring(t *testing.T) {
	var events []int
	e, clock := testEngine(t, ModeSurvival,
		WithCallbacks(func(s int) { events = append(events, s) }, nil))
	e.Start()

	for i := 0; i < 30; i++ {
		clock.Advance(100 * time.Millisecond)
		e.Step(core.InputFrame{})
	}

	st := e.Snapshot()
	if st.GameOver() {
		t.Fatal("bird should survive a 3s free fall on the default canvas")
	}
	if st.Score != 3 {
		t.Errorf("score after 3s = %d, want 3", st.Score)
	}
	if len(events) != 3 || events[0] != 1 || events[2] != 3 {
		t.Errorf("score events = %v, want [1 2 3]", events)
	}
}

func TestSurvivalPointsIgnoreDoubleMultiplier(t *testing.T) {
	e, clock := testEngine(t, ModeSurvival)
	e.Start()

	st := e.Snapshot()
	st.ActivePowerUps = append(st.ActivePowerUps, ActivePowerUp{
		Kind:      PowerDouble,
		ExpiresAt: clock.Now().Add(time.Hour),
	})

	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		e.Step(core.InputFrame{})
	}

	if st.Score != 1 {
		t.Errorf("score after 1s with double active = %d, want 1 (time points are flat)", st.Score)
	}
}
