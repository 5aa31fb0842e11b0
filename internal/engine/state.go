package engine

import "time"

// Phase is the engine's top-level state.
type Phase int

const (
	// PhaseStart is the idle state before the first flap.
	PhaseStart Phase = iota
	// PhasePlaying is the active simulation.
	PhasePlaying
	// PhaseGameOver is terminal until Reset.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// State is the aggregate simulation state. It has exactly one writer: the
// engine's update pipeline. Hosts read it through Engine.Snapshot and must
// not mutate it.
type State struct {
	Mode  Mode
	Phase Phase

	Bird      Bird
	Pipes     []Pipe
	Obstacles []Obstacle

	Score     int
	HighScore int

	FrameCount int

	ActivePowerUps []ActivePowerUp
	HasShield      bool
	ShieldBrokeAt  time.Time
	Effects        []CollectEffect

	// playStarted is when the current run entered PhasePlaying; survival
	// scoring accrues against it.
	playStarted    time.Time
	survivalPoints int // time-accrued survival points already awarded
}

// IsPlaying reports whether the simulation is active.
func (s *State) IsPlaying() bool {
	return s.Phase == PhasePlaying
}

// GameOver reports whether the run has ended.
func (s *State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// ActiveKind reports whether a timed effect of the given kind is active at
// the given instant.
func (s *State) ActiveKind(kind PowerUpKind, now time.Time) bool {
	for _, ap := range s.ActivePowerUps {
		if ap.Kind == kind && ap.ExpiresAt.After(now) {
			return true
		}
	}
	return false
}

// PlayDuration returns how long the current run has been in PhasePlaying.
// Zero before the first flap.
func (s *State) PlayDuration(now time.Time) time.Duration {
	if s.playStarted.IsZero() {
		return 0
	}
	return now.Sub(s.playStarted)
}
