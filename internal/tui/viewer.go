// Package tui is the interactive hosting application for a loaded structure
// graph. It consumes the graph through its read-only surface and drives the
// periodic boundary model's Shift operation from key presses; it never
// parses or reconciles anything itself.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cgview/internal/diag"
	"github.com/san-kum/cgview/internal/pbc"
	"github.com/san-kum/cgview/internal/stats"
	"github.com/san-kum/cgview/internal/structure"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const tableRows = 12

type model struct {
	graph *structure.Graph
	pb    *pbc.Model
	diags []diag.Diagnostic

	step     float64
	axis     pbc.Axis
	top      int // first particle row shown
	showHist bool

	width  int
	height int
}

// New builds the viewer model. step is the box-shift increment per key
// press.
func New(graph *structure.Graph, pb *pbc.Model, diags []diag.Diagnostic, step float64) tea.Model {
	if step <= 0 {
		step = 0.5
	}
	return model{graph: graph, pb: pb, diags: diags, step: step, width: 80, height: 24}
}

// Run starts the viewer and blocks until the user quits.
func Run(graph *structure.Graph, pb *pbc.Model, diags []diag.Diagnostic, step float64) error {
	_, err := tea.NewProgram(New(graph, pb, diags, step), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "x":
		m.pb.Shift(pbc.AxisX, m.step)
	case "X":
		m.pb.Shift(pbc.AxisX, -m.step)
	case "y":
		m.pb.Shift(pbc.AxisY, m.step)
	case "Y":
		m.pb.Shift(pbc.AxisY, -m.step)
	case "z":
		m.pb.Shift(pbc.AxisZ, m.step)
	case "Z":
		m.pb.Shift(pbc.AxisZ, -m.step)
	case "+", "=":
		m.step *= 2
	case "-":
		m.step /= 2
	case "a":
		m.axis = (m.axis + 1) % 3
	case "h":
		m.showHist = !m.showHist
	case "up", "k":
		if m.top > 0 {
			m.top--
		}
	case "down", "j":
		if m.top < m.pb.Len()-tableRows {
			m.top++
		}
	case "g":
		m.top = 0
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	meta := m.graph.Meta
	b.WriteString(cyan.Render("cgview") + dim.Render(fmt.Sprintf("  t=%d  box %.2f %.2f %.2f  strands %d",
		meta.Timestep, meta.Box.X, meta.Box.Y, meta.Box.Z, meta.NumStrands)) + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("E total %.4f  potential %.4f  kinetic %.4f",
		meta.Energy.Total, meta.Energy.Potential, meta.Energy.Kinetic)) + "\n")

	off := m.pb.Offset()
	b.WriteString(yellow.Render(fmt.Sprintf("offset %.3f %.3f %.3f", off.X, off.Y, off.Z)) +
		dim.Render(fmt.Sprintf("  step %.3f  %d particles  %d bonds", m.step, m.pb.Len(), m.pb.NumBonds())) + "\n\n")

	if m.showHist {
		b.WriteString(m.histogram())
	} else {
		b.WriteString(m.table())
	}

	if n := len(m.diags); n > 0 {
		b.WriteString("\n" + yellow.Render(fmt.Sprintf("%d diagnostics", n)) +
			dim.Render("  (shown on load)") + "\n")
	}

	b.WriteString("\n" + dim.Render("x/X y/Y z/Z shift  +/- step  h histogram  a axis  j/k scroll  q quit"))
	return b.String()
}

func (m model) table() string {
	var b strings.Builder
	b.WriteString(white.Render(fmt.Sprintf("%6s %5s %6s %10s %10s %10s", "index", "type", "strand", "x", "y", "z")) + "\n")
	end := m.top + tableRows
	if end > m.pb.Len() {
		end = m.pb.Len()
	}
	for i := m.top; i < end; i++ {
		p := m.graph.Particles[i]
		pos := m.pb.Position(i)
		b.WriteString(fmt.Sprintf("%6d %5d %6d %10.4f %10.4f %10.4f\n",
			p.Index, p.Type, p.Strand, pos.X, pos.Y, pos.Z))
	}
	if m.pb.Len() > end {
		b.WriteString(dim.Render(fmt.Sprintf("... %d more", m.pb.Len()-end)) + "\n")
	}
	return b.String()
}

func (m model) histogram() string {
	positions := make([]r3.Vec, m.pb.Len())
	for i := range positions {
		positions[i] = m.pb.Position(i)
	}
	vals := stats.Component(positions, m.axis)

	size := m.pb.Box().Size(m.axis)
	lo, hi := 0.0, size
	if size == 0 {
		s := stats.Summarize(vals)
		lo, hi = s.Min, s.Max
	}
	counts := stats.Histogram(vals, lo, hi, 16)
	graph := asciigraph.Plot(counts,
		asciigraph.Height(8),
		asciigraph.Caption(fmt.Sprintf("particles per %s bin", m.axis)))
	return green.Render(graph) + "\n"
}
