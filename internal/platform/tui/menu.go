package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mathrun/internal/core"
	"github.com/vovakirdan/mathrun/internal/games/platformer"
	"github.com/vovakirdan/mathrun/internal/registry"
	"github.com/vovakirdan/mathrun/internal/storage"
)

const maxNameLen = 16

// Menu focus targets
const (
	focusName = iota
	focusMode
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuItem represents a selectable play mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Mode   string
}

// MenuModel is the Bubble Tea model for the start screen: player name and mode.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	focus          int
	name           textinput.Model
	best           map[string]int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	err            error
	quitting       bool
	selected       *MenuItem // Set when user starts a run
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model, prefilled from stored preferences.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Mode:   g.Mode,
		})
	}

	var prefs storage.Preferences
	best := make(map[string]int)
	if store != nil {
		//nolint:errcheck // Missing preferences fall back to defaults
		prefs, _ = store.LoadPreferences()
		for _, it := range items {
			if b, err := store.BestScore(it.Mode); err == nil {
				best[it.Mode] = b
			}
		}
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 1
	ti.Prompt = ""
	switch {
	case cfg.PlayerName != "":
		ti.SetValue(cfg.PlayerName)
	case prefs.Name != "":
		ti.SetValue(prefs.Name)
	}
	ti.Focus()

	cursor := 0
	for i, it := range items {
		if it.Mode == prefs.Mode {
			cursor = i
		}
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		focus:     focusName,
		name:      ti,
		best:      best,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.setFocus(focusName)
		return m, nil

	case MenuActionDown:
		m.setFocus(focusMode)
		return m, nil

	case MenuActionLeft, MenuActionRight:
		if m.focus == focusMode && len(m.items) > 0 {
			step := 1
			if action == MenuActionLeft {
				step = -1
			}
			m.cursor = (m.cursor + step + len(m.items)) % len(m.items)
			return m, nil
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			return m.start()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	if m.focus == focusMode {
		// Letters do nothing on the mode row; q quits like everywhere else.
		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *MenuModel) setFocus(f int) {
	m.focus = f
	if f == focusName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
}

// start records the preferences and exits the menu with the chosen mode.
func (m MenuModel) start() (tea.Model, tea.Cmd) {
	name := m.PlayerName()
	if m.store != nil {
		m.err = m.store.SavePreferences(storage.Preferences{Name: name, Mode: m.items[m.cursor].Mode})
	}
	m.config.PlayerName = name
	selected := m.items[m.cursor]
	m.selected = &selected
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  M A T H   R U N  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Run, jump, and answer to come back to life", m.width))
	b.WriteString("\n\n")

	label := "  Name: "
	if m.focus == focusName {
		label = "> Name: "
	}
	b.WriteString(centerText(label+m.name.View(), m.width))
	b.WriteString("\n\n")

	if len(m.items) > 0 {
		it := m.items[m.cursor]
		mode := fmt.Sprintf("Mode: < %s >", it.Title)
		if m.focus == focusMode {
			mode = menuFocusStyle.Render("> " + mode)
		} else {
			mode = "  " + mode
		}
		b.WriteString(centerText(mode, m.width))
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(modeDescription(it.Mode)), m.width))
		b.WriteString("\n")
		if best := m.best[it.Mode]; best > 0 {
			b.WriteString(centerText(fmt.Sprintf("Best: %d", best), m.width))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(centerText(menuErrStyle.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Field  |  Left/Right: Mode  |  Enter: Start  |  Tab: Scores  |  Esc: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func modeDescription(mode string) string {
	if mode == platformer.ModePractice.String() {
		return "No quiz timer, wrong answers cost nothing"
	}
	return "Timed quiz, wrong answers cost points"
}

// PlayerName returns the trimmed name, or "Player" when empty.
func (m MenuModel) PlayerName() string {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		return "Player"
	}
	return name
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize or name entry).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
