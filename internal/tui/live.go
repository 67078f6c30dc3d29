// Package tui renders the plane to the terminal with raw ANSI escapes,
// one frame per tick (throttled).
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/avelent/mingle/internal/agent"
)

const (
	width       = 70
	height      = 22
	clearScreen = "\033[2J\033[H"
)

// LiveRenderer draws the agent set after each tick. It implements
// sim.Observer; attach it to a model and drive the model normally.
type LiveRenderer struct {
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	greets    int
}

func NewLiveRenderer(frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnGreet(tick int, from, to agent.Agent) {
	r.greets++
}

func (r *LiveRenderer) OnTick(tick int, agents []agent.Agent) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()

	bound := viewBound(agents)
	greeted := 0
	for _, a := range agents {
		if a.Greeted() {
			greeted++
		}
		cx, cy := project(a.Position(), bound)
		c := '.'
		if a.Greeted() {
			c = '@'
		}
		r.set(cx, cy, c)
	}

	r.render(tick, len(agents), greeted)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) render(tick, agents, greeted int) {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	sb.WriteString(fmt.Sprintf("tick %d | agents %d | greeted %d | greet events %d\n",
		tick, agents, greeted, r.greets))
	sb.WriteString("+" + strings.Repeat("-", width) + "+\n")
	for _, row := range r.canvas {
		sb.WriteString("|")
		sb.WriteString(string(row))
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", width) + "+\n")
	fmt.Print(sb.String())
}

// viewBound fits the frame to the current population, padded so edge
// agents stay visible.
func viewBound(agents []agent.Agent) orb.Bound {
	b := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	for _, a := range agents {
		b = b.Extend(a.Position())
	}
	return b.Pad(1)
}

func project(p orb.Point, b orb.Bound) (int, int) {
	spanX := b.Max[0] - b.Min[0]
	spanY := b.Max[1] - b.Min[1]
	x := int((p[0] - b.Min[0]) / spanX * float64(width-1))
	// Terminal rows grow downward.
	y := int((b.Max[1] - p[1]) / spanY * float64(height-1))
	return x, y
}
