package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/cloudchamber/config"
)

func testModel(t *testing.T, variant string) Model {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	m, err := NewModel(cfg, variant, 1)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestModelTickAdvancesAnimation(t *testing.T) {
	m := testModel(t, "nav")

	next, cmd := m.Update(TickMsg(time.Unix(0, 0)))
	m = next.(Model)

	if m.animation.Tick() != 1 {
		t.Errorf("tick = %d after one TickMsg, want 1", m.animation.Tick())
	}
	if cmd == nil {
		t.Error("TickMsg did not re-arm the tick command")
	}
	if len(m.popHistory) != 1 {
		t.Errorf("population history has %d samples, want 1", len(m.popHistory))
	}
}

func TestModelWindowSizeResizesCanvas(t *testing.T) {
	m := testModel(t, "nav")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	w, h := m.canvas.Size()
	if w != 116 || h != 112 {
		t.Errorf("canvas = %dx%d dots, want 116x112 for a 100x30 terminal", w, h)
	}
	if got := len(m.animation.Particles()); got != 8 {
		t.Errorf("population after resize = %d, want nav's 8", got)
	}
}

func TestModelCyclesVariant(t *testing.T) {
	m := testModel(t, "nav")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	m = next.(Model)

	if got := m.animation.Variant(); got != "hero" {
		t.Errorf("variant after cycle = %q, want hero", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	m = next.(Model)

	if got := m.animation.Variant(); got != "nav" {
		t.Errorf("variant after second cycle = %q, want nav again", got)
	}
}

func TestModelViewRendersPanes(t *testing.T) {
	m := testModel(t, "hero")

	next, _ := m.Update(TickMsg(time.Unix(0, 0)))
	m = next.(Model)

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	for _, want := range []string{"CLOUD CHAMBER", "hero", "Population"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
