package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mathrun/internal/core"
	"github.com/vovakirdan/mathrun/internal/storage"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets int
	frames []core.InputFrame
	dts    []time.Duration
	state  core.GameState
	ended  bool
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.Set(0, 0, 'X') }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.dts = append(g.dts, dt)
	res := core.StepResult{State: g.state}
	if g.ended {
		res.RunEnded = true
		res.Final = g.state
		g.ended = false
	}
	return res
}

// quizGame is left with a question on screen; abandoning it counts a wrong answer.
type quizGame struct {
	*stubGame
	abandoned int
}

func (g *quizGame) Abandon() {
	g.abandoned++
	g.state.Wrong++
}

var t0 = time.Unix(5000, 0)

func newTestModel(t *testing.T, game *stubGame, store *storage.Store) Model {
	t.Helper()
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1, PlayerName: "tester"}, ModelOptions{})
	m.now = func() time.Time { return t0 }
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule the first tick")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, at time.Duration) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(t0.Add(at)))
	return m
}

func openModelStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelInitResetsGame(t *testing.T) {
	game := &stubGame{}
	newTestModel(t, game, nil)
	if game.resets != 1 {
		t.Errorf("resets = %d, expected 1", game.resets)
	}
}

func TestModelHeldKeyAcrossTicks(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	m, _ = update(t, m, runeKey("a"))
	m = tick(t, m, 16*time.Millisecond)
	m = tick(t, m, 32*time.Millisecond)
	m = tick(t, m, 400*time.Millisecond)

	if len(game.frames) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(game.frames))
	}
	if !game.frames[0].Has(core.ActionLeft) || !game.frames[1].Has(core.ActionLeft) {
		t.Error("left should stay held between key events")
	}
	if game.frames[2].Has(core.ActionLeft) {
		t.Error("left should be released once the key goes quiet")
	}
}

func TestModelTapLastsOneFrame(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	m, _ = update(t, m, runeKey("2"))
	m = tick(t, m, 16*time.Millisecond)
	tick(t, m, 32*time.Millisecond)

	if !game.frames[0].Has(core.ActionAnswer2) {
		t.Error("tap should reach the next step")
	}
	if game.frames[1].Has(core.ActionAnswer2) {
		t.Error("tap should be cleared after one step")
	}
}

func TestModelClampsDelta(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	m = tick(t, m, 0)
	m = tick(t, m, 10*time.Millisecond)
	tick(t, m, 5*time.Second)

	expected := []time.Duration{0, 10 * time.Millisecond, core.DefaultMaxFrameDelta}
	for i, want := range expected {
		if game.dts[i] != want {
			t.Errorf("dt[%d] = %v, expected %v", i, game.dts[i], want)
		}
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if game.resets != 1 {
		t.Error("resize should not reset the game")
	}
}

func TestModelQuitSavesRun(t *testing.T) {
	store := openModelStore(t)
	game := &stubGame{state: core.GameState{Score: 70, Level: 2, Correct: 1}}
	m := newTestModel(t, game, store)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 70 || runs[0].Name != "tester" || runs[0].Level != 2 {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestModelQuitDuringQuizCountsAnswer(t *testing.T) {
	store := openModelStore(t)
	game := &quizGame{stubGame: &stubGame{state: core.GameState{Level: 1, AwaitingQuiz: true}}}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1, PlayerName: "tester"}, ModelOptions{})
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if game.abandoned != 1 {
		t.Errorf("Abandon called %d times, expected 1", game.abandoned)
	}
	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Wrong != 1 {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestModelBackWithoutProgressSavesNothing(t *testing.T) {
	store := openModelStore(t)
	game := &stubGame{state: core.GameState{Level: 1}}
	m := newTestModel(t, game, store)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("esc should leave the run")
	}
	if cmd != nil {
		t.Error("back inside a session should not quit the program")
	}

	// The run is over; further ticks do not step the game.
	tick(t, m, 16*time.Millisecond)
	if len(game.frames) != 0 {
		t.Error("ticks after leaving should not step the game")
	}

	runs, _ := store.TopRuns("stub", 10)
	if len(runs) != 0 {
		t.Errorf("a run without progress should not be saved, got %+v", runs)
	}
}

func TestModelSavesWrappedRun(t *testing.T) {
	store := openModelStore(t)
	game := &stubGame{state: core.GameState{Score: 300, Level: 12, Correct: 4, Wrong: 1}, ended: true}
	m := newTestModel(t, game, store)

	m = tick(t, m, 16*time.Millisecond)

	runs, _ := store.TopRuns("stub", 10)
	if len(runs) != 1 || runs[0].Score != 300 || runs[0].Wrong != 1 {
		t.Fatalf("wrapped run not saved: %+v", runs)
	}

	// Quitting afterwards records the new run in progress too.
	game.state = core.GameState{Score: 10, Level: 1}
	update(t, m, runeKey("q"))
	runs, _ = store.TopRuns("stub", 10)
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestModelView(t *testing.T) {
	game := &stubGame{}
	m := newTestModel(t, game, nil)

	if !strings.Contains(m.View(), "X") {
		t.Error("View should contain what the game rendered")
	}
}
