package engine

import (
	"time"

	"github.com/birdrush/birdrush/internal/core"
)

// resolveCollisions runs the per-tick sweep: ground contact, then the
// mode-specific dispatch. Must run after stepPhysics on the same tick.
func (e *Engine) resolveCollisions(now time.Time) {
	st := e.state
	groundY := e.cfg.Canvas.GroundY()
	b := &st.Bird

	if b.Y+b.H > groundY {
		b.Y = groundY - b.H
		b.Velocity = 0
		e.handleCollision(now)
		if st.GameOver() {
			return
		}
	}

	if st.Mode.UsesPipes() {
		e.resolvePipes(now)
	} else {
		e.resolveObstacles(now)
	}
}

// resolvePipes tests pickups first, then pipe hits, then pass scoring.
func (e *Engine) resolvePipes(now time.Time) {
	st := e.state
	hitbox := st.Bird.Hitbox(e.cfg.Bird.HitboxInset)
	groundY := e.cfg.Canvas.GroundY()

	// A pickup is collected when the bird's center enters its square, so
	// grazing the square's edge with a wingtip does not count.
	cx, cy := st.Bird.Box().CenterF()
	for i := range st.Pipes {
		pu := st.Pipes[i].PowerUp
		if pu != nil && !pu.Collected && pu.Box(e.cfg.PowerUps.Size).Contains(cx, cy) {
			e.collectPowerUp(pu, now)
		}
	}

	for i := range st.Pipes {
		p := &st.Pipes[i]
		if hitbox.Intersects(p.TopRect()) || hitbox.Intersects(p.BottomRect(groundY)) {
			e.handleCollision(now)
			if st.GameOver() {
				return
			}
		}
	}

	for i := range st.Pipes {
		p := &st.Pipes[i]
		if !p.Passed && st.Bird.X > p.X+p.W {
			p.Passed = true
			e.addScore(1 * e.scoreMultiplier(now))
		}
	}
}

// scoreMultiplier returns the per-pipe point multiplier: the configured
// factor while a double effect is active, 1 otherwise.
func (e *Engine) scoreMultiplier(now time.Time) int {
	if e.state.ActiveKind(PowerDouble, now) {
		return e.cfg.PowerUps.ScoreMultiplier
	}
	return 1
}

// collectPowerUp applies a pickup. Shields set a flag immediately; timed
// kinds replace any active effect of the same kind (no stacking).
func (e *Engine) collectPowerUp(pu *PowerUp, now time.Time) {
	st := e.state
	pu.Collected = true

	if pu.Kind == PowerShield {
		st.HasShield = true
	} else {
		duration := time.Duration(e.cfg.PowerUps.DurationMS) * time.Millisecond
		live := st.ActivePowerUps[:0]
		for _, ap := range st.ActivePowerUps {
			if ap.Kind != pu.Kind {
				live = append(live, ap)
			}
		}
		st.ActivePowerUps = append(live, ActivePowerUp{
			Kind:      pu.Kind,
			ExpiresAt: now.Add(duration),
		})
	}

	st.Effects = append(st.Effects, CollectEffect{
		Kind:      pu.Kind,
		X:         pu.X,
		Y:         pu.Y,
		SpawnedAt: now,
	})
}

// resolveObstacles dispatches survival collisions by obstacle variant.
func (e *Engine) resolveObstacles(now time.Time) {
	st := e.state
	hitbox := st.Bird.Hitbox(e.cfg.Bird.HitboxInset)

	for _, ob := range st.Obstacles {
		switch o := ob.(type) {
		case *Spike:
			if hitbox.Intersects(o.Bounds()) {
				e.handleCollision(now)
			}
		case *Laser:
			if o.On && hitbox.Intersects(o.Bounds()) {
				e.handleCollision(now)
			}
		case *Portal:
			if !o.Teleported && hitbox.Intersects(o.Bounds()) {
				e.teleportThroughPortal(o)
			}
		case *Meteor:
			cx, cy := o.Center()
			if core.CircleIntersectsRect(cx, cy, o.Radius(), hitbox) {
				e.handleCollision(now)
			}
		case *Barrier:
			// The gap is safe only if the bird fits vertically inside it.
			if hitbox.Intersects(o.Bounds()) &&
				(hitbox.Y < o.GapY || hitbox.Y+hitbox.H > o.GapY+o.GapH) {
				e.handleCollision(now)
			}
		}
		if st.GameOver() {
			return
		}
	}
}

// teleportThroughPortal relocates the bird to a random safe height, zeroes
// its velocity and awards the flat portal bonus. One-shot per portal,
// never lethal.
func (e *Engine) teleportThroughPortal(p *Portal) {
	st := e.state
	cfg := e.cfg.Survival.Portal

	lo := cfg.BandTop
	hi := e.cfg.Canvas.GroundY() - cfg.BandFloor - st.Bird.H
	y := lo
	if hi > lo {
		y = lo + e.rng.Float64()*(hi-lo)
	}

	st.Bird.Y = y
	st.Bird.Velocity = 0
	p.Teleported = true
	e.addScore(e.cfg.Survival.PortalBonus)
}

// handleCollision ends the run, unless a shield is active, in which case
// the shield absorbs exactly this one hit.
func (e *Engine) handleCollision(now time.Time) {
	st := e.state

	if st.HasShield {
		st.HasShield = false
		st.ShieldBrokeAt = now
		return
	}

	st.Phase = PhaseGameOver
	if st.Score > st.HighScore {
		st.HighScore = st.Score
	}
	if e.onGameOver != nil {
		e.onGameOver(st.Score)
	}
}

// addScore awards points and notifies the host.
func (e *Engine) addScore(points int) {
	e.state.Score += points
	if e.onScoreChange != nil {
		e.onScoreChange(e.state.Score)
	}
}

// accrueSurvivalScore awards +1 per elapsed score interval of play time.
// Wall-clock based and independent of the pipe multiplier.
func (e *Engine) accrueSurvivalScore(now time.Time) {
	st := e.state
	if st.Mode != ModeSurvival || !st.IsPlaying() {
		return
	}

	interval := time.Duration(e.cfg.Survival.ScoreIntervalMS) * time.Millisecond
	if interval <= 0 {
		return
	}

	earned := int(st.PlayDuration(now) / interval)
	if earned > st.survivalPoints {
		e.addScore(earned - st.survivalPoints)
		st.survivalPoints = earned
	}
}
