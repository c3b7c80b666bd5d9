package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/theapemachine/qbloch"
)

const (
	cameraAzimuth   = math.Pi / 6
	cameraElevation = math.Pi / 9
	textRows        = 6
)

// statusLine keeps the last diagnostic for the footer.
type statusLine struct {
	mu      sync.Mutex
	message string
}

func (s *statusLine) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = err.Error()
}

func (s *statusLine) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

/*
canvas owns the marker table for the terminal: handles arrive through
Frame.NewMarkers and are dropped on a Cleared frame.
*/
type canvas struct {
	mu sync.Mutex

	screen    tcell.Screen
	view      *qbloch.View
	status    *statusLine
	markers   map[qbloch.MarkerHandle]r3.Vec
	last      qbloch.Frame
	hasFrame  bool
	estimates bool
	rng       *rand.Rand
}

func newCanvas(screen tcell.Screen, view *qbloch.View, status *statusLine) *canvas {
	return &canvas{
		screen:  screen,
		view:    view,
		status:  status,
		markers: make(map[qbloch.MarkerHandle]r3.Vec),
		rng:     rand.New(rand.NewPCG(1, 2)),
	}
}

func (c *canvas) apply(frame qbloch.Frame) {
	c.mu.Lock()
	if frame.Cleared {
		c.markers = make(map[qbloch.MarkerHandle]r3.Vec)
		c.last = qbloch.Frame{}
		c.hasFrame = false
	} else {
		for _, marker := range frame.NewMarkers {
			c.markers[marker.Handle] = marker.Point
		}
		c.last = frame
		c.hasFrame = true
	}
	c.mu.Unlock()

	c.draw()
}

func (c *canvas) toggleEstimates() {
	c.mu.Lock()
	c.estimates = !c.estimates
	show := c.estimates
	c.mu.Unlock()

	c.view.SetShowEstimates(show)
}

func (c *canvas) draw() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.Clear()

	width, height := c.screen.Size()
	ry := float64(height-textRows-2) / 2
	rx := ry * 2
	if rx > float64(width-2)/2 {
		rx = float64(width-2) / 2
		ry = rx / 2
	}
	cx, cy := float64(width)/2, ry+1

	plot := func(p r3.Vec, glyph rune, style tcell.Style) {
		u, v, _ := project(p)
		c.screen.SetContent(int(math.Round(cx+u*rx)), int(math.Round(cy-v*ry)), glyph, nil, style)
	}

	outline := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i := 0; i < 180; i++ {
		theta := 2 * math.Pi * float64(i) / 180
		c.screen.SetContent(
			int(math.Round(cx+math.Cos(theta)*rx)),
			int(math.Round(cy-math.Sin(theta)*ry)),
			'.', nil, outline,
		)

		equator := r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
		if _, _, depth := project(equator); depth >= 0 {
			plot(equator, '-', outline)
		}
	}

	label := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	c.label(cx, cy, rx, ry, r3.Vec{Z: 1.15}, "|0⟩", label)
	c.label(cx, cy, rx, ry, r3.Vec{Z: -1.15}, "|1⟩", label)
	c.label(cx, cy, rx, ry, r3.Vec{X: 1.15}, "|+⟩", label)
	c.label(cx, cy, rx, ry, r3.Vec{Y: 1.15}, "|i⟩", label)

	if c.hasFrame {
		for _, point := range c.last.Trail {
			p, ok := c.markers[point.Marker]
			if !ok {
				continue
			}
			plot(p, trailGlyph(point.Weight), trailStyle(point.Weight))
		}
	}

	current := qbloch.RotatePoint(c.view.Animator().Orientation(), qbloch.NorthPole)
	if c.hasFrame {
		current = c.last.Point
	}
	plot(current, '◉', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	c.footer(height)
	c.screen.Show()
}

func (c *canvas) label(cx, cy, rx, ry float64, p r3.Vec, text string, style tcell.Style) {
	u, v, _ := project(p)
	drawText(c.screen, int(math.Round(cx+u*rx)), int(math.Round(cy-v*ry)), style, text)
}

func (c *canvas) footer(height int) {
	state := c.view.State()
	p0, p1 := state.Probabilities()
	row := height - textRows

	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(c.screen, 1, row, plain, "ψ = "+state.String())
	drawText(c.screen, 1, row+1, plain, fmt.Sprintf("P(0) = %.4f  P(1) = %.4f", p0, p1))
	drawText(c.screen, 1, row+2, plain, "gates: "+strings.Join(c.view.History(), " "))

	if c.hasFrame {
		drawText(c.screen, 1, row+3, dim, fmt.Sprintf(
			"%v #%d  %3.0f%%  queued %d  markers %d",
			c.last.Gate.Gate, c.last.Gate.Seq, c.last.Progress*100, c.last.Queued, len(c.markers),
		))
	}

	if c.estimates {
		if histogram, ok := c.view.Estimates(c.rng); ok {
			zero, one := histogram.Estimates()
			drawText(c.screen, 1, row+4, dim, fmt.Sprintf(
				"%d shots: |0⟩ %d (≈%.0f)  |1⟩ %d (≈%.0f)",
				histogram.Shots, histogram.Zero, zero, histogram.One, one,
			))
		}
	}

	if message := c.status.String(); message != "" {
		drawText(c.screen, 1, row+5, tcell.StyleDefault.Foreground(tcell.ColorRed), message)
	}
}

/*
project views the sphere from a camera turned cameraAzimuth about Z and raised
by cameraElevation. u runs right, v up, depth toward the viewer.
*/
func project(p r3.Vec) (u, v, depth float64) {
	sinA, cosA := math.Sincos(cameraAzimuth)
	sinE, cosE := math.Sincos(cameraElevation)

	toward := p.X*cosA + p.Y*sinA
	u = -p.X*sinA + p.Y*cosA
	v = p.Z*cosE - toward*sinE
	depth = toward*cosE + p.Z*sinE
	return u, v, depth
}

func trailGlyph(weight float64) rune {
	switch {
	case weight < 0.33:
		return '·'
	case weight < 0.66:
		return '•'
	}
	return '●'
}

func trailStyle(weight float64) tcell.Style {
	level := int32(60 + 195*weight)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(level/3, level/2, level))
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
