// Package engine implements the birdrush simulation: bird physics, pipe and
// obstacle spawning, collision resolution, scoring, and the start/playing/
// gameover state machine. The package is pure game logic with no terminal
// or storage dependencies; hosts drive it one fixed tick at a time.
package engine

import (
	"fmt"

	"github.com/birdrush/birdrush/internal/registry"
)

// Mode selects the active rule set.
type Mode int

const (
	// ModeClassic is plain pipes with per-pipe scoring.
	ModeClassic Mode = iota
	// ModePowerUps is pipes that may carry shield/slowmo/double pickups.
	ModePowerUps
	// ModeSurvival replaces pipes with five obstacle kinds and time-based
	// scoring.
	ModeSurvival
)

// String returns the stable identifier for the mode, used for CLI commands
// and score storage.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModePowerUps:
		return "powerups"
	case ModeSurvival:
		return "survival"
	default:
		return "unknown"
	}
}

// Title returns the display name for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModePowerUps:
		return "Power-Up Rush"
	case ModeSurvival:
		return "Survival"
	default:
		return "Unknown"
	}
}

// UsesPipes reports whether the mode spawns pipes (as opposed to survival
// obstacles).
func (m Mode) UsesPipes() bool {
	return m == ModeClassic || m == ModePowerUps
}

// AllModes returns every playable mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeClassic, ModePowerUps, ModeSurvival}
}

// ParseMode resolves a mode identifier string.
func ParseMode(id string) (Mode, error) {
	switch id {
	case "classic":
		return ModeClassic, nil
	case "powerups":
		return ModePowerUps, nil
	case "survival":
		return ModeSurvival, nil
	default:
		return 0, fmt.Errorf("engine: unknown mode %q", id)
	}
}

// IsValidModeID reports whether id names a playable mode.
func IsValidModeID(id string) bool {
	_, err := ParseMode(id)
	return err == nil
}

// Register the modes with the catalog.
func init() {
	registry.Register(registry.ModeInfo{
		ID:      ModeClassic.String(),
		Title:   ModeClassic.Title(),
		Tagline: "Thread the pipes, one point each",
	})
	registry.Register(registry.ModeInfo{
		ID:      ModePowerUps.String(),
		Title:   ModePowerUps.Title(),
		Tagline: "Pipes with shield, slow-mo and double-score pickups",
	})
	registry.Register(registry.ModeInfo{
		ID:      ModeSurvival.String(),
		Title:   ModeSurvival.Title(),
		Tagline: "Dodge spikes, lasers, meteors and barriers as long as you can",
	})
}
