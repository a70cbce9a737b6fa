// Package tui is the terminal frontend: the CPU reference pipeline
// renders at braille sub-pixel resolution into a bubbletea view, with a
// frame-time strip and the core parameter keys.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/config"
	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/render"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/taa"
)

const (
	canvasCols = 72
	canvasRows = 22

	tickRate        = time.Second / 30
	historyCapacity = 120

	// Dots light up above this luminance.
	lumThreshold = 0.18

	rotateStep = 0.08
	focalStep  = 0.25
	iterStep   = 50
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live terminal preview.
type Model struct {
	app    *state.App
	cam    *camera.State
	pipe   *render.Pipeline
	canvas *Canvas
	rng    *rand.Rand

	elapsed  float64
	last     time.Time
	frameMS  []float64
	running  bool
	showHelp bool
}

// NewModel seeds the core state from the configuration.
func NewModel(cfg *config.Config) Model {
	app := state.NewApp()
	if len(cfg.Fractal.C) == 4 {
		app.Fractal.C = qmath.Vec4{
			X: cfg.Fractal.C[0], Y: cfg.Fractal.C[1],
			Z: cfg.Fractal.C[2], W: cfg.Fractal.C[3],
		}
	} else if p, ok := fractal.PresetByName(cfg.Fractal.Preset); ok {
		app.Fractal.C = p.C
	}
	app.Slice.SetAmplitude(cfg.Fractal.SliceAmplitude)
	app.Slice.Speed = cfg.Fractal.SliceSpeed
	app.Slice.Animate = cfg.Fractal.SliceAnimate
	app.Quality.SetMaxIter(cfg.Render.MaxIter)
	app.Color.SetPalette(cfg.Render.Palette)
	app.TAA.Enabled = cfg.Render.TAA
	app.TAA.BlendFactor = float32(cfg.Render.TAABlend)
	app.TAA.Clamp()

	cam := camera.New()
	cam.SetFocal(cfg.Render.FocalLength)

	return Model{
		app:     app,
		cam:     cam,
		pipe:    render.NewPipeline(canvasCols*2, canvasRows*4, app.TAA),
		canvas:  NewCanvas(canvasCols, canvasRows),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		frameMS: make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.app.Fractal.Randomize(m.rng)
			m.pipe.ResetHistory()
		case "s":
			m.app.Slice.Animate = !m.app.Slice.Animate
		case "p":
			m.app.Color.SetPalette((m.app.Color.Palette + 1) % 11)
		case "t":
			m.app.TAA.Enabled = !m.app.TAA.Enabled
			m.pipe.ResetHistory()
		case "i":
			m.app.Quality.AddMaxIter(iterStep)
		case "k":
			m.app.Quality.AddMaxIter(-iterStep)
		case "c":
			m.app.Clip.Mode = m.app.Clip.Mode.Cycle()
		case "left":
			m.cam.Rotate(-rotateStep, 0)
		case "right":
			m.cam.Rotate(rotateStep, 0)
		case "up":
			m.cam.Rotate(0, rotateStep)
		case "down":
			m.cam.Rotate(0, -rotateStep)
		case "+", "=":
			m.cam.SetFocal(m.cam.FocalLength + focalStep)
		case "-", "_":
			m.cam.SetFocal(m.cam.FocalLength - focalStep)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		dt := tickRate.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now

		if m.running {
			m.elapsed += dt
			m.app.Slice.Advance(dt)
			m.cam.Update(dt)
		}
		start := time.Now()
		target := m.pipe.Frame(m.app, m.cam, m.elapsed)
		m.rasterize(target)

		m.frameMS = append(m.frameMS, float64(time.Since(start).Milliseconds()))
		if len(m.frameMS) > historyCapacity {
			m.frameMS = m.frameMS[1:]
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// rasterize thresholds the resolved frame into braille dots.
func (m *Model) rasterize(t *taa.Target) {
	m.canvas.Clear()
	for y := 0; y < canvasRows*4; y++ {
		for x := 0; x < canvasCols*2; x++ {
			r, g, b := t.At(x, y)
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			if lum > lumThreshold {
				m.canvas.Set(x, y)
			}
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("QJULIA") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.frameMS) > 1 {
		chart := asciigraph.Plot(m.frameMS,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("frame ms"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	c := m.app.Fractal.C
	s.WriteString(labelStyle.Render("c") + valueStyle.Render(
		fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", c.X, c.Y, c.Z, c.W)) + "\n")
	s.WriteString(labelStyle.Render("slice") + valueStyle.Render(
		fmt.Sprintf("%.3f", m.app.Slice.Value)) + "\n")
	s.WriteString(labelStyle.Render("iter") + valueStyle.Render(
		fmt.Sprintf("%d", m.app.Quality.MaxIter)) + "\n")
	s.WriteString(labelStyle.Render("palette") + valueStyle.Render(
		fmt.Sprintf("%d", m.app.Color.Palette)) + "\n")
	s.WriteString(labelStyle.Render("clip") + valueStyle.Render(
		fmt.Sprintf("%d", int(m.app.Clip.Mode))) + "\n")
	s.WriteString(labelStyle.Render("focal") + valueStyle.Render(
		fmt.Sprintf("%.2f", m.cam.FocalLength)) + "\n")
	taaState := "off"
	if m.app.TAA.Enabled {
		taaState = "on"
	}
	s.WriteString(labelStyle.Render("taa") + valueStyle.Render(taaState) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Random Q:Quit\nP:Palette T:TAA ?:Help\n←→↑↓:Orbit I/K:Iter"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Randomize constant       ║
║  S        - Toggle slice animation   ║
║  P        - Cycle palette            ║
║  T        - Toggle TAA               ║
║  C        - Cycle cross-section      ║
║  I/K      - Max iterations +/-       ║
║  Arrows   - Orbit camera             ║
║  +/-      - Focal length             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view and blocks until quit.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}
