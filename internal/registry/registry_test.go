package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/mathrun/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{} }
func (g *stubGame) Step(core.InputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

// modedGame stores its runs under a shared mode name.
type modedGame struct {
	stubGame
	mode string
}

func (g *modedGame) ModeName() string { return g.mode }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub zz_stub"
		}
	}
	if !found {
		t.Error("List() should include the title of the registered game")
	}
}

func TestModeMetadata(t *testing.T) {
	Register("zz_moded", func() Game { return &modedGame{stubGame: stubGame{id: "zz_moded"}, mode: "shared"} })
	Register("zz_plain", func() Game { return &stubGame{id: "zz_plain"} })
	Register("zz_blank", func() Game { return &modedGame{stubGame: stubGame{id: "zz_blank"}} })

	tests := []struct {
		id, mode string
	}{
		{"zz_moded", "shared"},
		{"zz_plain", "zz_plain"}, // not Moded: the ID is the mode
		{"zz_blank", "zz_blank"}, // empty mode name falls back to the ID
		{"zz_missing", "zz_missing"},
	}
	for _, tc := range tests {
		if got := ModeOf(tc.id); got != tc.mode {
			t.Errorf("ModeOf(%q) = %q, expected %q", tc.id, got, tc.mode)
		}
	}

	info, ok := Lookup("zz_moded")
	if !ok || info.Title != "Stub zz_moded" || info.Mode != "shared" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
	if _, ok := Lookup("zz_missing"); ok {
		t.Error("Lookup() of an unknown id should fail")
	}
}

func TestListSorted(t *testing.T) {
	Register("zz_b", func() Game { return &stubGame{id: "zz_b"} })
	Register("zz_a", func() Game { return &stubGame{id: "zz_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
