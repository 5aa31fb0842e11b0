package engine

import (
	"time"

	"github.com/birdrush/birdrush/internal/core"
)

// Bird is the player entity. Position is the top-left of its box on the
// virtual canvas; velocity is vertical only (horizontal position is fixed).
type Bird struct {
	X, Y     float64
	W, H     float64
	Velocity float64
	Rotation float64 // degrees, derived from velocity, cosmetic
}

// Box returns the bird's full bounding box.
func (b Bird) Box() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// Hitbox returns the bird's collision box deflated by inset on every side.
func (b Bird) Hitbox(inset float64) core.RectF {
	return b.Box().Deflate(inset)
}

// Pipe is a vertical obstacle pair with a gap between TopHeight and BottomY.
// Invariant: BottomY = TopHeight + gap at spawn time.
type Pipe struct {
	X         float64
	W         float64
	TopHeight float64
	BottomY   float64
	Passed    bool
	PowerUp   *PowerUp // optional, powerups mode only
}

// TopRect returns the collision rectangle for the upper pipe segment.
func (p Pipe) TopRect() core.RectF {
	return core.NewRectF(p.X, 0, p.W, p.TopHeight)
}

// BottomRect returns the collision rectangle for the lower pipe segment,
// extending down to the ground.
func (p Pipe) BottomRect(groundY float64) core.RectF {
	return core.NewRectF(p.X, p.BottomY, p.W, groundY-p.BottomY)
}

// PowerUpKind identifies a pickup type.
type PowerUpKind int

const (
	PowerShield PowerUpKind = iota
	PowerSlowMo
	PowerDouble
)

// String returns a short identifier for the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerShield:
		return "shield"
	case PowerSlowMo:
		return "slowmo"
	case PowerDouble:
		return "double"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup embedded in a pipe's gap. It scrolls with its parent
// pipe and is destroyed when collected or when the pipe despawns.
type PowerUp struct {
	Kind      PowerUpKind
	X, Y      float64 // center position
	Collected bool
}

// Box returns the pickup's hitbox, a square of the given edge length
// centered on the pickup.
func (p PowerUp) Box(size float64) core.RectF {
	return core.NewRectF(p.X-size/2, p.Y-size/2, size, size)
}

// ActivePowerUp is a timed effect created on pickup. Shields are not timed;
// they set State.HasShield instead.
type ActivePowerUp struct {
	Kind      PowerUpKind
	ExpiresAt time.Time
}

// CollectEffect is a transient visual marker recorded when a pickup is
// collected. Purely cosmetic; the renderer fades it out.
type CollectEffect struct {
	Kind      PowerUpKind
	X, Y      float64
	SpawnedAt time.Time
}
