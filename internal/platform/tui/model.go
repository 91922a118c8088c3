package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/core"
	"github.com/vovakirdan/mathrun/internal/games/platformer"
	"github.com/vovakirdan/mathrun/internal/registry"
	"github.com/vovakirdan/mathrun/internal/storage"
)

// eventSource is implemented by games that report what happened each frame.
type eventSource interface {
	DrainEvents() []platformer.Event
}

// tunable is implemented by games that accept a reloaded configuration.
type tunable interface {
	ApplyConfig(cfg config.PlatformerConfig)
}

// abandoner is implemented by games that settle unfinished business when a run is left.
type abandoner interface {
	Abandon()
}

// ModelOptions carries the optional collaborators of a Model.
type ModelOptions struct {
	Logger  *log.Logger     // nil disables the event log
	Watcher *config.Watcher // nil disables hot reload
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	hold       *holdTracker
	taps       core.InputFrame
	clock      *core.FrameClock
	now        func() time.Time
	logger     *log.Logger
	watcher    *config.Watcher
	gameState  core.GameState
	exitOnBack bool
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		hold:      newHoldTracker(),
		taps:      core.NewInputFrame(),
		clock:     core.NewFrameClock(core.DefaultMaxFrameDelta),
		now:       time.Now,
		logger:    opts.Logger,
		watcher:   opts.Watcher,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.clock.Reset()
	if m.logger != nil {
		m.logger.Info("run started", "game", m.game.ID(), "player", m.config.PlayerName, "seed", m.config.Seed)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.finishRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.finishRun()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}

	case isHeld(action):
		m.hold.Press(action, m.now())

	case action != core.ActionNone:
		m.taps.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The world is laid out in logical units, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the game by the clamped time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.applyReloads()

	dt := m.clock.Delta(now)
	frame := m.taps.Clone()
	m.hold.Apply(&frame, now)

	result := m.game.Step(frame, dt)
	m.gameState = result.State
	if result.RunEnded {
		m.saveRun(result.Final)
		m.runSaved = false
	}
	m.logEvents()

	// Taps last one frame; holds are tracked separately.
	m.taps.Clear()

	return m, tickCmd(m.config.TickRate)
}

// applyReloads hands a hot-reloaded config to the game between frames.
func (m *Model) applyReloads() {
	if m.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-m.watcher.Updates:
		if !ok {
			m.watcher = nil
			return
		}
		if g, ok := m.game.(tunable); ok {
			g.ApplyConfig(cfg)
		}
		if m.logger != nil {
			m.logger.Info("config reloaded", "path", m.watcher.Path())
		}
	case err, ok := <-m.watcher.Errors:
		if !ok {
			m.watcher = nil
			return
		}
		if m.logger != nil {
			m.logger.Warn("config reload failed", "error", err)
		}
	default:
	}
}

// logEvents drains the game's events and writes the interesting ones to the log.
func (m *Model) logEvents() {
	src, ok := m.game.(eventSource)
	if !ok {
		return
	}
	events := src.DrainEvents()
	if m.logger == nil {
		return
	}
	for _, e := range events {
		switch e.Kind {
		case platformer.EventDeath:
			m.logger.Info("death", "level", e.Level, "x", int(e.X), "y", int(e.Y))
		case platformer.EventRespawn:
			m.logger.Info("quiz passed", "level", e.Level)
		case platformer.EventLevelReset:
			m.logger.Info("quiz failed", "level", e.Level, "score", m.gameState.Score)
		case platformer.EventLevelComplete:
			m.logger.Info("level complete", "level", e.Level, "score", m.gameState.Score)
		case platformer.EventRunWrapped:
			if e.Final != nil {
				m.logger.Info("campaign complete", "score", e.Final.Score, "correct", e.Final.Correct, "wrong", e.Final.Wrong)
			}
		default:
			m.logger.Debug(e.Kind.String(), "level", e.Level, "x", int(e.X), "y", int(e.Y))
		}
	}
}

// finishRun persists the current run once when the player leaves.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	if a, ok := m.game.(abandoner); ok {
		a.Abandon()
		m.logEvents()
	}
	m.saveRun(m.game.State())
	m.runSaved = true
}

// saveRun records a run with any progress. Failures are logged and otherwise ignored.
func (m *Model) saveRun(st core.GameState) {
	if m.store == nil || (st.Score <= 0 && st.Level <= 1 && st.Correct+st.Wrong == 0) {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		Name:    m.config.PlayerName,
		Mode:    registry.ModeOf(m.game.ID()),
		Score:   st.Score,
		Level:   st.Level,
		Correct: st.Correct,
		Wrong:   st.Wrong,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".mathrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// Back leaves the program when there is no menu to return to.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, store, cfg, opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
