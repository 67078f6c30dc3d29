// Package viz provides the interactive terminal view of a running
// model, built on bubbletea.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/avelent/mingle/internal/agent"
	"github.com/avelent/mingle/internal/sim"
)

const (
	canvasW = 70
	canvasH = 22
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	borderStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	greetedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// counters tallies greet events on the side; Watch values are copied
// by bubbletea, so the tally lives behind a pointer.
type counters struct {
	greets int
}

func (c *counters) OnGreet(tick int, from, to agent.Agent) { c.greets++ }
func (c *counters) OnTick(tick int, agents []agent.Agent)  {}

// Watch is the bubbletea model wrapping a simulation model.
type Watch struct {
	model     *sim.Model
	counts    *counters
	ticks     int
	frameRate int
	paused    bool
	err       error
}

func NewWatch(m *sim.Model, ticks, frameRate int) Watch {
	c := &counters{}
	m.AddObserver(c)
	return Watch{
		model:     m,
		counts:    c,
		ticks:     ticks,
		frameRate: frameRate,
	}
}

// Run drives the watch UI until the tick limit or the user quits.
func Run(m *sim.Model, ticks, frameRate int) error {
	p := tea.NewProgram(NewWatch(m, ticks, frameRate))
	_, err := p.Run()
	return err
}

func (w Watch) Init() tea.Cmd {
	return w.tickCmd()
}

func (w Watch) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(w.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (w Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return w, tea.Quit
		case " ":
			w.paused = !w.paused
		case "s":
			if w.paused {
				if err := w.advance(); err != nil {
					w.err = err
					return w, tea.Quit
				}
			}
		}
	case TickMsg:
		if !w.paused {
			if err := w.advance(); err != nil {
				w.err = err
				return w, tea.Quit
			}
			if w.done() {
				return w, tea.Quit
			}
		}
		return w, w.tickCmd()
	}
	return w, nil
}

func (w *Watch) advance() error {
	if w.done() {
		return nil
	}
	return w.model.Step()
}

func (w Watch) done() bool {
	return w.ticks > 0 && w.model.Tick() >= w.ticks
}

func (w Watch) View() string {
	agents := w.model.Agents()
	canvas := drawCanvas(agents)

	greeted := 0
	for _, a := range agents {
		if a.Greeted() {
			greeted++
		}
	}

	stats := []string{
		headerStyle.Render("mingle"),
		labelStyle.Render("tick") + valueStyle.Render(fmt.Sprintf("%d", w.model.Tick())),
		labelStyle.Render("agents") + valueStyle.Render(fmt.Sprintf("%d", len(agents))),
		labelStyle.Render("greeted") + greetedStyle.Render(fmt.Sprintf("%d", greeted)),
		labelStyle.Render("greet events") + valueStyle.Render(fmt.Sprintf("%d", w.counts.greets)),
	}
	if w.paused {
		stats = append(stats, headerStyle.Render("paused"))
	}

	view := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Render(canvas),
		lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(stats, "\n")),
	)
	return view + helpStyle.Render("\nspace pause · s step · q quit")
}

func drawCanvas(agents []agent.Agent) string {
	grid := make([][]rune, canvasH)
	for i := range grid {
		grid[i] = make([]rune, canvasW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	for _, a := range agents {
		bound = bound.Extend(a.Position())
	}
	bound = bound.Pad(1)

	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]
	for _, a := range agents {
		p := a.Position()
		x := int((p[0] - bound.Min[0]) / spanX * float64(canvasW-1))
		y := int((bound.Max[1] - p[1]) / spanY * float64(canvasH-1))
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			continue
		}
		if a.Greeted() {
			grid[y][x] = '@'
		} else {
			grid[y][x] = '.'
		}
	}

	rows := make([]string, canvasH)
	for i, row := range grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}
