package engine

import "github.com/birdrush/birdrush/internal/core"

// ObstacleKind identifies a survival obstacle variant.
type ObstacleKind int

const (
	ObstacleSpike ObstacleKind = iota
	ObstacleLaser
	ObstaclePortal
	ObstacleMeteor
	ObstacleBarrier
)

// String returns a short identifier for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleSpike:
		return "spike"
	case ObstacleLaser:
		return "laser"
	case ObstaclePortal:
		return "portal"
	case ObstacleMeteor:
		return "meteor"
	case ObstacleBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// Obstacle is a survival-mode hazard. Each variant is its own type so that
// variant-specific fields exist only where they are meaningful; the
// collision resolver dispatches on the concrete type. The interface is
// sealed to this package.
type Obstacle interface {
	Kind() ObstacleKind
	// Bounds returns the obstacle's current bounding box.
	Bounds() core.RectF
	// Advance moves the obstacle one tick. scroll is this tick's leftward
	// shift (already speed-modified); variant motion runs on top of it.
	Advance(scroll float64)
	// Expired reports whether the obstacle left the playfield and should
	// be removed. margin is the allowed overshoot past the left edge.
	Expired(margin float64) bool

	sealed()
}

// obstacleBase carries the fields every variant shares.
type obstacleBase struct {
	X, Y float64
	W, H float64
}

func (b *obstacleBase) Bounds() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

func (b *obstacleBase) Advance(scroll float64) {
	b.X -= scroll
}

func (b *obstacleBase) Expired(margin float64) bool {
	return b.X+b.W < -margin
}

func (b *obstacleBase) sealed() {}

// Spike is a static triangle anchored to the ground or the ceiling.
// Always lethal on contact.
type Spike struct {
	obstacleBase
	OnCeiling bool
}

func (s *Spike) Kind() ObstacleKind { return ObstacleSpike }

// Laser is a horizontal beam that cycles on and off on a frame schedule.
// Lethal only while on. The duty cycle counts frames, not wall time, so
// slow-mo does not stretch it.
type Laser struct {
	obstacleBase
	On        bool
	OnFrames  int
	OffFrames int
	timer     int
}

func (l *Laser) Kind() ObstacleKind { return ObstacleLaser }

func (l *Laser) Advance(scroll float64) {
	l.X -= scroll
	l.timer++
	if l.On && l.timer >= l.OnFrames {
		l.On = false
		l.timer = 0
	} else if !l.On && l.timer >= l.OffFrames {
		l.On = true
		l.timer = 0
	}
}

// Portal teleports the bird to a random safe height on first contact,
// awarding a bonus. One-shot: a teleported portal is inert.
type Portal struct {
	obstacleBase
	Teleported bool
}

func (p *Portal) Kind() ObstacleKind { return ObstaclePortal }

// Meteor falls from the top of the canvas at a constant downward velocity
// while drifting left faster than the scroll. Uses a circular hitbox.
type Meteor struct {
	obstacleBase
	FallSpeed float64
	Drift     float64
	FloorY    float64 // despawn once fully below this line
}

func (m *Meteor) Kind() ObstacleKind { return ObstacleMeteor }

func (m *Meteor) Advance(scroll float64) {
	m.X -= scroll + m.Drift
	m.Y += m.FallSpeed
}

func (m *Meteor) Expired(margin float64) bool {
	return m.X+m.W < -margin || m.Y > m.FloorY
}

// Center returns the meteor's circle center.
func (m *Meteor) Center() (float64, float64) {
	return m.X + m.W/2, m.Y + m.H/2
}

// Radius returns the meteor's circular hitbox radius.
func (m *Meteor) Radius() float64 {
	return m.W / 2
}

// Barrier is a full-height column with a gap that oscillates vertically
// between MinY and MaxY, reversing direction on bound contact. Lethal
// unless the bird is entirely inside the gap window.
type Barrier struct {
	obstacleBase
	GapY      float64
	GapH      float64
	GapSpeed  float64
	GapDir    float64 // +1 down, -1 up
	MinY      float64
	MaxY      float64 // max allowed GapY (gap bottom stays above ground)
}

func (b *Barrier) Kind() ObstacleKind { return ObstacleBarrier }

func (b *Barrier) Advance(scroll float64) {
	b.X -= scroll
	b.GapY += b.GapSpeed * b.GapDir
	if b.GapY <= b.MinY {
		b.GapY = b.MinY
		b.GapDir = 1
	} else if b.GapY >= b.MaxY {
		b.GapY = b.MaxY
		b.GapDir = -1
	}
}

// GapRect returns the current safe window.
func (b *Barrier) GapRect() core.RectF {
	return core.NewRectF(b.X, b.GapY, b.W, b.GapH)
}
