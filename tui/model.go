// Package tui hosts the backdrop in a terminal: a braille-canvas surface
// driven from a bubbletea program, for eyeballing variants without opening
// a window.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pthm-cable/cloudchamber/anim"
	"github.com/pthm-cable/cloudchamber/config"
	"github.com/pthm-cable/cloudchamber/sim"
	"github.com/pthm-cable/cloudchamber/telemetry"
)

const (
	initialCols = 64
	initialRows = 20

	minCanvasCols = 20
	minCanvasRows = 6

	statsPaneWidth = 38
	historyCap     = 120 // population samples kept for the sparkline
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsPaneWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// latestStats is shared between the model value and the stats callback so
// flushed windows survive bubbletea's model copying.
type latestStats struct {
	stats telemetry.WindowStats
	valid bool
}

// Model runs one animation on a braille canvas next to a stats pane.
type Model struct {
	cfg       *config.Config
	animation *anim.Animation
	canvas    *Canvas
	latest    *latestStats

	paused     bool
	showHelp   bool
	popHistory []float64
}

// NewModel builds the terminal preview. A nil cfg uses the global config.
func NewModel(cfg *config.Config, variant string, seed int64) (Model, error) {
	if cfg == nil {
		cfg = config.Cfg()
	}

	canvas := NewCanvas(initialCols, initialRows)
	latest := &latestStats{}

	a, err := anim.New(anim.Options{
		Variant: variant,
		Surface: canvas,
		Config:  cfg,
		Seed:    seed,
		IsDark:  lipgloss.HasDarkBackground,
		StatsCallback: func(ws telemetry.WindowStats) {
			latest.stats = ws
			latest.valid = true
		},
	})
	if err != nil {
		return Model{}, err
	}

	return Model{
		cfg:       cfg,
		animation: a,
		canvas:    canvas,
		latest:    latest,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.animation.Close()
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "v":
			m.cycleVariant()
		case "r":
			m.animation.Resize(m.canvas.Size())
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		cols := msg.Width - statsPaneWidth - 4
		rows := msg.Height - 2
		if cols < minCanvasCols {
			cols = minCanvasCols
		}
		if rows < minCanvasRows {
			rows = minCanvasRows
		}
		m.canvas.Reset(cols, rows)
		m.animation.Resize(m.canvas.Size())

	case TickMsg:
		if !m.paused {
			m.animation.Update(time.Time(msg))
		}
		m.popHistory = append(m.popHistory, float64(len(m.animation.Particles())))
		if len(m.popHistory) > historyCap {
			m.popHistory = m.popHistory[1:]
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) cycleVariant() {
	names := m.cfg.Derived.VariantNames
	if len(names) == 0 {
		return
	}
	current := m.animation.Variant()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.animation.SetVariant(next)
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(m.statsPane())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		help := helpStyle.Render("p pause/resume · v cycle variant · r reseed · ? close help · q quit")
		return lipgloss.JoinVertical(lipgloss.Left, mainView, help)
	}
	return mainView
}

func (m Model) statsPane() string {
	ps := m.animation.Particles()

	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("CLOUD CHAMBER") + "\n")
	b.WriteString(status + "\n\n")

	b.WriteString(labelStyle.Render("Variant") + valueStyle.Render(m.animation.Variant()) + "\n")
	b.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.animation.Tick())) + "\n")
	b.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d", len(ps))) + "\n")
	b.WriteString(labelStyle.Render("Generations") + valueStyle.Render(fmt.Sprintf("%d/%d/%d",
		sim.CountGeneration(ps, 0), sim.CountGeneration(ps, 1), sim.CountGeneration(ps, 2))) + "\n")
	b.WriteString(labelStyle.Render("Deepest") + valueStyle.Render(fmt.Sprintf("%d", sim.DeepestGeneration(ps))) + "\n")

	if len(m.popHistory) > 1 {
		chart := asciigraph.Plot(m.popHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("population"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.latest.valid {
		s := m.latest.stats
		b.WriteString("\n" + headerStyle.Render("LAST WINDOW") + "\n")
		b.WriteString(labelStyle.Render("Decays/s") + valueStyle.Render(fmt.Sprintf("%.2f", s.DecaysPerSec)) + "\n")
		b.WriteString(labelStyle.Render("Daughters") + valueStyle.Render(fmt.Sprintf("%.2f", s.MeanDaughters)) + "\n")
		b.WriteString(labelStyle.Render("Speed p50") + valueStyle.Render(fmt.Sprintf("%.2f", s.SpeedP50)) + "\n")
		b.WriteString(labelStyle.Render("Life frac") + valueStyle.Render(fmt.Sprintf("%.2f", s.MeanLifeFrac)) + "\n")
	}

	b.WriteString(helpStyle.Render("? help · q quit"))
	return b.String()
}

// Run hosts the preview until the user quits.
func Run(cfg *config.Config, variant string, seed int64) error {
	m, err := NewModel(cfg, variant, seed)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal preview: %w", err)
	}
	return nil
}
