package engine

import (
	"time"

	"github.com/birdrush/birdrush/internal/core"
)

// speedMod returns this tick's speed modifier: the slow-mo factor while a
// slowmo effect is active, 1.0 otherwise.
func (e *Engine) speedMod(now time.Time) float64 {
	if e.state.ActiveKind(PowerSlowMo, now) {
		return e.cfg.PowerUps.SlowFactor
	}
	return 1.0
}

// stepPhysics advances bird motion, horizontal scroll and variant-specific
// obstacle motion for one tick. Ground contact is left to the collision
// resolver; ceiling contact clamps without penalty.
func (e *Engine) stepPhysics(now time.Time) {
	st := e.state
	mod := e.speedMod(now)
	phys := e.cfg.Physics

	// Bird
	b := &st.Bird
	b.Velocity += phys.Gravity * mod
	if b.Velocity > phys.MaxFallSpeed {
		b.Velocity = phys.MaxFallSpeed
	}
	b.Y += b.Velocity * mod
	b.Rotation = core.ClampF(b.Velocity*3, -30, 90)

	// Ceiling: clamp and zero velocity, no penalty
	if b.Y < 0 {
		b.Y = 0
		b.Velocity = 0
	}

	// Horizontal scroll
	scroll := e.diff.ScrollSpeed(phys.ScrollSpeed, st.Score, st.FrameCount) * mod
	for i := range st.Pipes {
		st.Pipes[i].X -= scroll
		if pu := st.Pipes[i].PowerUp; pu != nil {
			pu.X -= scroll
		}
	}
	for _, ob := range st.Obstacles {
		ob.Advance(scroll)
	}

	e.pruneEntities()
}

// pruneEntities removes pipes and obstacles that scrolled off the playfield.
func (e *Engine) pruneEntities() {
	st := e.state
	margin := e.cfg.Pipes.DespawnMargin

	live := st.Pipes[:0]
	for _, p := range st.Pipes {
		if p.X+p.W >= -margin {
			live = append(live, p)
		}
	}
	st.Pipes = live

	liveObs := st.Obstacles[:0]
	for _, ob := range st.Obstacles {
		if !ob.Expired(margin) {
			liveObs = append(liveObs, ob)
		}
	}
	st.Obstacles = liveObs
}

// expirePowerUps drops timed effects whose expiry has passed and fades out
// stale collect effects.
func (e *Engine) expirePowerUps(now time.Time) {
	st := e.state

	live := st.ActivePowerUps[:0]
	for _, ap := range st.ActivePowerUps {
		if ap.ExpiresAt.After(now) {
			live = append(live, ap)
		}
	}
	st.ActivePowerUps = live

	liveFx := st.Effects[:0]
	for _, fx := range st.Effects {
		if now.Sub(fx.SpawnedAt) < collectEffectLifetime {
			liveFx = append(liveFx, fx)
		}
	}
	st.Effects = liveFx
}

// collectEffectLifetime is how long a pickup flash stays renderable.
const collectEffectLifetime = 600 * time.Millisecond
