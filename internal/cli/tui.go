package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/slider"
)

const (
	tuiHeaderLines = 2
	tuiMinGrid     = 8

	glyphTrack  = "░"
	glyphActive = "█"
	glyphHandle = "●"
)

// tuiCommand creates the tui command.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Drag the sliders with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m, err := newSliderModel(slider.NewController(cfg.Widget), cfg.Style)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(sliderModel); ok {
				fmt.Fprintln(cmd.OutOrStdout(), sliderTable(fm.ctrl))
			}
			return nil
		},
	}
}

// sliderModel draws the widget into a character grid and feeds mouse
// presses, motion and releases to the controller.
//
// Terminal cells are about twice as tall as they are wide, so the grid has
// twice as many columns as rows to keep the rings round.
type sliderModel struct {
	ctrl *slider.Controller

	track, active, handle lipgloss.Style

	gridW, gridH int
}

func newSliderModel(ctrl *slider.Controller, style sink.Style) (sliderModel, error) {
	style = style.WithDefaults()
	track, err := sink.HexColor(style.TrackColor)
	if err != nil {
		return sliderModel{}, err
	}
	active, err := sink.HexColor(style.ActiveColor)
	if err != nil {
		return sliderModel{}, err
	}
	handle, err := sink.HexColor(style.HandleStroke)
	if err != nil {
		return sliderModel{}, err
	}
	m := sliderModel{
		ctrl:   ctrl,
		track:  lipgloss.NewStyle().Foreground(lipgloss.Color(track)),
		active: lipgloss.NewStyle().Foreground(lipgloss.Color(active)),
		handle: lipgloss.NewStyle().Foreground(lipgloss.Color(handle)).Bold(true),
	}
	m.resize(80, 24)
	return m, nil
}

func (m sliderModel) Init() tea.Cmd {
	return nil
}

func (m sliderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m *sliderModel) mouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if p, ok := m.cellPoint(msg.X, msg.Y-tuiHeaderLines); ok {
			m.ctrl.PointerDown(p)
		}
	case tea.MouseActionMotion:
		// Motion outside the grid is clamped so a drag that leaves the
		// ring keeps following the pointer's direction.
		p, _ := m.cellPoint(msg.X, msg.Y-tuiHeaderLines)
		m.ctrl.PointerMove(p)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

func (m *sliderModel) resize(width, height int) {
	footer := len(m.ctrl.States()) + 1
	h := min(height-tuiHeaderLines-footer, width/2)
	m.gridH = max(h, tuiMinGrid)
	m.gridW = 2 * m.gridH
}

func (m sliderModel) scale() (sx, sy float64) {
	vp := m.ctrl.Viewport()
	return vp.Width / float64(m.gridW), vp.Height / float64(m.gridH)
}

// cellPoint returns the container-local point at the center of a grid cell,
// and whether the cell lies inside the grid.
func (m sliderModel) cellPoint(col, row int) (geometry.Point, bool) {
	inside := col >= 0 && col < m.gridW && row >= 0 && row < m.gridH
	col = max(0, min(m.gridW-1, col))
	row = max(0, min(m.gridH-1, row))
	sx, sy := m.scale()
	return geometry.Point{X: (float64(col) + 0.5) * sx, Y: (float64(row) + 0.5) * sy}, inside
}

// handleCells maps grid cells to the slider whose handle sits there.
func (m sliderModel) handleCells() map[[2]int]bool {
	center := m.ctrl.Viewport().Center()
	sx, sy := m.scale()
	cells := make(map[[2]int]bool)
	for _, f := range m.ctrl.Frames() {
		// Frames are in group space; the group is drawn rotated by -90°.
		p := geometry.Rotate(f.Handle, center, -90)
		cells[[2]int{int(p.X / sx), int(p.Y / sy)}] = true
	}
	return cells
}

func (m sliderModel) cell(col, row int, handles map[[2]int]bool) string {
	if handles[[2]int{col, row}] {
		return m.handle.Render(glyphHandle)
	}
	p, _ := m.cellPoint(col, row)
	center := m.ctrl.Viewport().Center()
	d := p.Distance(center)
	_, sy := m.scale()
	tol := sy * 0.55

	var ring *slider.State
	best := math.Inf(1)
	for _, s := range m.ctrl.States() {
		if gap := math.Abs(d - s.Radius()); gap <= tol && gap < best {
			ring, best = s, gap
		}
	}
	if ring == nil {
		return " "
	}
	deg := geometry.RadiansToDegrees(geometry.PointerAngle(p.X, p.Y, center.X, center.Y))
	if deg <= ring.AngleDegrees() {
		return m.active.Render(glyphActive)
	}
	return m.track.Render(glyphTrack)
}

func (m sliderModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("arcslider"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("drag a ring with the mouse  q quit"))
	b.WriteString("\n")

	handles := m.handleCells()
	for row := 0; row < m.gridH; row++ {
		for col := 0; col < m.gridW; col++ {
			b.WriteString(m.cell(col, row, handles))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	active := m.ctrl.ActiveID()
	for i, s := range m.ctrl.States() {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%-12s %8.2f°  %10.1f", s.ID(), s.AngleDegrees(), s.Value())
		if s.ID() == active {
			b.WriteString(StyleNumber.Render("▸ " + line))
		} else {
			b.WriteString(StyleValue.Render("  " + line))
		}
	}
	return b.String()
}
