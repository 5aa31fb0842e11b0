package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
	"github.com/birdrush/birdrush/internal/engine"
	"github.com/birdrush/birdrush/internal/storage"
)

// Model is the Bubble Tea model for a single game screen. It drives the
// engine one Step per TickMsg on the UI goroutine, which keeps the
// single-writer discipline without locks.
type Model struct {
	eng        *engine.Engine
	renderer   gameRenderer
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	mode       engine.Mode
	playerName string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	tick       time.Duration
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel creates a game model for the given mode.
func NewModel(mode engine.Mode, gameCfg config.GameConfig, store *storage.Store, cfg core.RuntimeConfig, playerName string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if playerName == "" {
		playerName = "Anonymous"
	}

	return Model{
		eng:        engine.New(gameCfg, mode, engine.WithSeed(cfg.Seed)),
		renderer:   gameRenderer{cfg: gameCfg},
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		mode:       mode,
		playerName: playerName,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		tick:       tickInterval(cfg.TickRate),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.eng.Destroy()
		return m, tea.Quit
	}

	// Back to menu from the start and game-over screens only
	if m.inputFrame.Has(core.ActionBack) {
		st := m.eng.Snapshot()
		if st.GameOver() || st.Phase == engine.PhaseStart {
			m.backToMenu = true
		}
		m.inputFrame.Clear()
	}

	return m, nil
}

// handleResize adjusts the screen buffer. The simulation runs on a
// virtual canvas, so no engine reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	st := m.eng.Snapshot()

	// Restart from the game-over screen
	if m.inputFrame.Has(core.ActionRestart) && st.GameOver() {
		m.eng.Reset()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.tick)
	}

	m.eng.Step(m.inputFrame)
	m.inputFrame.Clear()

	st = m.eng.Snapshot()
	if st.GameOver() && !m.scoreSaved {
		m.persistRun(st)
		m.scoreSaved = true
	}

	return m, tickCmd(m.tick)
}

// persistRun saves the finished run's score and metrics. Best-effort: a
// broken database never interrupts play.
func (m *Model) persistRun(st *engine.State) {
	if m.store == nil {
		return
	}
	if st.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.playerName, m.mode.String(), st.Score)
	}
	//nolint:errcheck // Best-effort save
	m.store.RecordGame(m.mode.String(), st.Score, st.PlayDuration(time.Now()))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.screen, m.eng.Snapshot(), time.Now())

	dir := filepath.Join(os.Getenv("HOME"), ".birdrush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.mode, timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.eng.Snapshot(), time.Now())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game mode.
func Run(mode engine.Mode, gameCfg config.GameConfig, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(mode, gameCfg, store, cfg, os.Getenv("USER"))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
