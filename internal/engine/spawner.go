package engine

import (
	"math/rand"

	"github.com/birdrush/birdrush/internal/config"
)

// Spawner procedurally creates pipes and survival obstacles. Spawning is
// fire-and-forget: placement is drawn from the injected RNG and no overlap
// constraints are checked. Cadence counts frames, never wall time.
type Spawner struct {
	rng  *rand.Rand
	cfg  *config.GameConfig
	diff *config.DifficultyManager

	// nextObstacleIn counts down frames to the next survival spawn; the
	// interval is re-jittered after every spawn.
	nextObstacleIn int
}

// NewSpawner creates a spawner drawing from the given RNG.
func NewSpawner(rng *rand.Rand, cfg *config.GameConfig, diff *config.DifficultyManager) *Spawner {
	s := &Spawner{rng: rng, cfg: cfg, diff: diff}
	s.Reset()
	return s
}

// Reset re-arms the survival spawn countdown.
func (s *Spawner) Reset() {
	s.nextObstacleIn = s.jitteredInterval(0, 0)
}

// Step emits at most one new entity into the state, following the mode's
// spawn cadence.
func (s *Spawner) Step(st *State) {
	if st.Mode.UsesPipes() {
		interval := s.cfg.Pipes.SpawnInterval
		if interval <= 0 {
			interval = 1
		}
		if st.FrameCount%interval == 0 {
			st.Pipes = append(st.Pipes, s.spawnPipe(st))
		}
		return
	}

	s.nextObstacleIn--
	if s.nextObstacleIn <= 0 {
		st.Obstacles = append(st.Obstacles, s.spawnObstacle())
		s.nextObstacleIn = s.jitteredInterval(st.Score, st.FrameCount)
	}
}

// jitteredInterval draws the next survival spawn delay in frames.
func (s *Spawner) jitteredInterval(score, ticks int) int {
	base := s.diff.SpawnInterval(s.cfg.Survival.SpawnInterval, score, ticks)
	jitter := s.cfg.Survival.SpawnJitter
	if jitter > 0 {
		base += s.rng.Intn(2*jitter+1) - jitter
	}
	if base < 1 {
		base = 1
	}
	return base
}

// spawnPipe creates a pipe at the right edge with a uniformly random gap
// position, attaching a pickup in powerups mode.
func (s *Spawner) spawnPipe(st *State) Pipe {
	canvas := s.cfg.Canvas
	gap := s.diff.PipeGap(s.cfg.Pipes.Gap, st.Score, st.FrameCount)
	minH := s.cfg.Pipes.MinHeight

	// Both segments must keep at least minH within the playfield.
	maxTop := canvas.GroundY() - gap - minH
	topH := minH
	if maxTop > minH {
		topH = minH + s.rng.Float64()*(maxTop-minH)
	}

	pipe := Pipe{
		X:         canvas.Width,
		W:         s.cfg.Pipes.Width,
		TopHeight: topH,
		BottomY:   topH + gap,
	}

	if st.Mode == ModePowerUps && s.rng.Float64() < s.cfg.PowerUps.Chance {
		pipe.PowerUp = &PowerUp{
			Kind: PowerUpKind(s.rng.Intn(3)),
			X:    pipe.X + pipe.W/2,
			Y:    topH + gap/2,
		}
	}

	return pipe
}

// spawnObstacle creates one survival obstacle of a uniformly random kind.
// Each kind has its own placement policy.
func (s *Spawner) spawnObstacle() Obstacle {
	switch ObstacleKind(s.rng.Intn(5)) {
	case ObstacleSpike:
		return s.spawnSpike()
	case ObstacleLaser:
		return s.spawnLaser()
	case ObstaclePortal:
		return s.spawnPortal()
	case ObstacleMeteor:
		return s.spawnMeteor()
	default:
		return s.spawnBarrier()
	}
}

func (s *Spawner) spawnSpike() *Spike {
	cfg := s.cfg.Survival.Spike
	canvas := s.cfg.Canvas

	sp := &Spike{
		obstacleBase: obstacleBase{
			X: canvas.Width,
			W: cfg.Width,
			H: cfg.Height,
		},
		OnCeiling: s.rng.Intn(2) == 0,
	}
	if sp.OnCeiling {
		sp.Y = 0
	} else {
		sp.Y = canvas.GroundY() - cfg.Height
	}
	return sp
}

func (s *Spawner) spawnLaser() *Laser {
	cfg := s.cfg.Survival.Laser
	canvas := s.cfg.Canvas

	return &Laser{
		obstacleBase: obstacleBase{
			X: canvas.Width,
			Y: s.bandY(cfg.BandTop, cfg.BandFloor, cfg.Height),
			W: cfg.Width,
			H: cfg.Height,
		},
		On:        true,
		OnFrames:  cfg.OnFrames,
		OffFrames: cfg.OffFrames,
	}
}

func (s *Spawner) spawnPortal() *Portal {
	cfg := s.cfg.Survival.Portal

	return &Portal{
		obstacleBase: obstacleBase{
			X: s.cfg.Canvas.Width,
			Y: s.bandY(cfg.BandTop, cfg.BandFloor, cfg.Height),
			W: cfg.Width,
			H: cfg.Height,
		},
	}
}

func (s *Spawner) spawnMeteor() *Meteor {
	cfg := s.cfg.Survival.Meteor
	canvas := s.cfg.Canvas

	// Spawn above the visible canvas somewhere in the right half.
	x := canvas.Width/2 + s.rng.Float64()*canvas.Width/2
	return &Meteor{
		obstacleBase: obstacleBase{
			X: x,
			Y: -cfg.Size,
			W: cfg.Size,
			H: cfg.Size,
		},
		FallSpeed: cfg.FallSpeed,
		Drift:     cfg.DriftSpeed,
		FloorY:    canvas.Height,
	}
}

func (s *Spawner) spawnBarrier() *Barrier {
	cfg := s.cfg.Survival.Barrier
	canvas := s.cfg.Canvas

	minY := cfg.Margin
	maxY := canvas.GroundY() - cfg.Margin - cfg.GapHeight
	if maxY < minY {
		maxY = minY
	}

	gapY := minY
	if maxY > minY {
		gapY = minY + s.rng.Float64()*(maxY-minY)
	}

	dir := 1.0
	if s.rng.Intn(2) == 0 {
		dir = -1.0
	}

	return &Barrier{
		obstacleBase: obstacleBase{
			X: canvas.Width,
			Y: 0,
			W: cfg.Width,
			H: canvas.GroundY(),
		},
		GapY:     gapY,
		GapH:     cfg.GapHeight,
		GapSpeed: cfg.GapSpeed,
		GapDir:   dir,
		MinY:     minY,
		MaxY:     maxY,
	}
}

// bandY draws a uniform y position within [top, groundY - floorClearance - h].
func (s *Spawner) bandY(top, floorClearance, h float64) float64 {
	lo := top
	hi := s.cfg.Canvas.GroundY() - floorClearance - h
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
