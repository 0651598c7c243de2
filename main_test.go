package main

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-tetris/internal/config"
	"go-tetris/internal/game"
	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDurationFlag(t *testing.T) {
	var d durationFlag
	if err := d.Set("250ms"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if time.Duration(d) != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", d.String())
	}
	if err := d.Set("2"); err != nil || time.Duration(d) != 2*time.Second {
		t.Errorf("Expected 2s, got %s (err %v)", d.String(), err)
	}
	if err := d.Set("0"); err == nil {
		t.Error("Zero interval should be rejected")
	}
	if err := d.Set("later"); err == nil {
		t.Error("Garbage should be rejected")
	}
}

func TestStrictIntFlag(t *testing.T) {
	var i strictIntFlag
	if err := i.Set("true"); err == nil {
		t.Error("Bare flag should require a value")
	}
	if err := i.Set("12"); err != nil || int(i) != 12 {
		t.Errorf("Expected 12, got %d (err %v)", int(i), err)
	}
	if err := i.Set("x"); err == nil {
		t.Error("Non-numeric value should fail")
	}
}

func TestNewRands(t *testing.T) {
	for _, seed := range []uint64{0, 9} {
		bagRng, layoutRng := newRands(seed, true)
		if layoutRng == nil {
			t.Fatal("Expected a layout generator")
		}
		got, want := piece.NewBag(bagRng), piece.NewSeededBag(seed)
		for i := 0; i < 21; i++ {
			if g, w := got.Next(), want.Next(); g != w {
				t.Fatalf("seed %d draw %d: got %s, want %s", seed, i, g, w)
			}
		}
	}

	bagRng, layoutRng := newRands(0, false)
	if bagRng == nil || layoutRng == nil {
		t.Error("Unseeded generators should not be nil")
	}
}

func TestHelpKeys(t *testing.T) {
	got := helpKeys([]string{"a", "left", " "})
	if got != "a/←/space" {
		t.Errorf("Unexpected help keys %q", got)
	}
}

func TestPickLayout(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if l, err := pickLayout(nil, rng); l != nil || err != nil {
		t.Errorf("No paths should give no layout, got %v %v", l, err)
	}

	path := filepath.Join(t.TempDir(), "l.txt")
	_ = os.WriteFile(path, []byte("r.........\n---\n.g........\n"), 0o644)
	l, err := pickLayout([]string{path}, rng)
	if err != nil {
		t.Fatalf("pickLayout failed: %v", err)
	}
	if l == nil || len(l.Rows) != 1 {
		t.Errorf("Expected a one-row layout, got %+v", l)
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	_ = os.WriteFile(empty, []byte("# nothing here\n"), 0o644)
	if _, err := pickLayout([]string{empty}, rng); err == nil {
		t.Error("Expected error when no layouts are found")
	}
}

func newTestModel(t *testing.T) *LocalState {
	t.Helper()
	storage := scoring.NewJSONFileStorageAt(filepath.Join(t.TempDir(), "scores.json"))
	sess, err := game.NewSession(game.Config{Bag: piece.NewSeededBag(3)}, storage, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	cfg := config.Default()
	return newLocalState(sess, newKeyMap(cfg.Keys), time.Second, cfg.Preview, slog.New(slog.DiscardHandler))
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t)
	g := m.Session.Game
	x0, _ := g.Current().Position()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if x, _ := g.Current().Position(); x != x0-1 {
		t.Errorf("'a' should move left: x=%d, was %d", x, x0)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if x, _ := g.Current().Position(); x != x0 {
		t.Errorf("right arrow should move right: x=%d, want %d", x, x0)
	}

	ghost, _ := g.GhostY()
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if _, y := g.Current().Position(); y != ghost {
		t.Errorf("space should hard drop to %d, got %d", ghost, y)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_Tick(t *testing.T) {
	m := newTestModel(t)
	_, y0 := m.Session.Game.Current().Position()

	_, cmd := m.Update(TickMsg(time.Now()))

	if cmd == nil {
		t.Error("Tick should schedule the next tick")
	}
	if _, y := m.Session.Game.Current().Position(); y != y0+1 {
		t.Errorf("Tick should drop the piece one row: y=%d, was %d", y, y0)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	for _, want := range []string{"SCORE", "NEXT", "GAMES: 0", "rotate"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	logger, closeLog, err := setupLogger(false)
	if err != nil || logger == nil {
		t.Fatalf("setupLogger(false) = %v, %v", logger, err)
	}
	closeLog()
}
