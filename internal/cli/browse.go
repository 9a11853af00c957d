package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Terminal cells are roughly twice as tall as they are wide, so one row
// covers twice the points of one column.
const (
	defaultPointsPerColumn = 4.0
	rowAspect              = 2.0
	browseChromeRows       = 3
	minBrowseColumns       = 20
)

// browseCommand creates the browse command, an interactive viewport that
// re-lays the grid out whenever the terminal is resized.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		in inputFlags
		lf layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [tiles-file|-]",
		Short: "Scroll through a layout in the terminal",
		Long: `Scroll through a layout in the terminal.

The container width follows the terminal width: resizing the window
prepares a new layout. Only the tiles intersecting the visible rectangle are
drawn.

Keys: ↑/↓ or j/k scroll, pgup/pgdown page, g/G top/bottom, +/- zoom, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, _, err := in.load(cmd, args)
			if err != nil {
				return err
			}
			opts := c.options(lf)
			opts.Tiles = tiles
			opts.SetLayoutDefaults()
			engine, packing, err := pipeline.PrepareEngine(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if n := len(packing.Remainder); n > 0 {
				c.Logger.Warn("trailing tiles were not placed", "count", n)
			}

			m := newBrowseModel(engine, tile.AssignColors(opts.Tiles, opts.Seed))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	in.register(cmd)
	registerLayoutFlags(cmd, &lf)
	return cmd
}

// browseModel is the bubbletea model behind "tilegrid browse".
type browseModel struct {
	engine *layout.Engine
	tiles  []tile.Tile

	cols, rows int     // drawing area in cells
	perCol     float64 // points per terminal column
	scrollY    float64 // top of the viewport in points

	visible []layout.Frame
	err     error
}

func newBrowseModel(engine *layout.Engine, tiles []tile.Tile) browseModel {
	return browseModel{engine: engine, tiles: tiles, perCol: defaultPointsPerColumn}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, minBrowseColumns)
		m.rows = max(msg.Height-browseChromeRows, 1)
		m.relayout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-m.perRow())
		case "down", "j":
			m.scroll(m.perRow())
		case "pgup", "b":
			m.scroll(-m.viewport().Height)
		case "pgdown", " ", "f":
			m.scroll(m.viewport().Height)
		case "g", "home":
			m.scrollY = 0
			m.refresh()
		case "G", "end":
			m.scrollY = m.maxScroll()
			m.refresh()
		case "+", "=":
			m.zoom(0.5)
		case "-", "_":
			m.zoom(2)
		}
	}
	return m, nil
}

func (m browseModel) perRow() float64 { return m.perCol * rowAspect }

// viewport returns the visible rectangle in layout coordinates.
func (m browseModel) viewport() layout.Rect {
	return layout.Rect{
		Y:      m.scrollY,
		Width:  float64(m.cols) * m.perCol,
		Height: float64(m.rows) * m.perRow(),
	}
}

func (m browseModel) maxScroll() float64 {
	size, err := m.engine.ContentSize()
	if err != nil {
		return 0
	}
	return max(size.Height-m.viewport().Height, 0)
}

// relayout prepares the engine for the width the terminal now shows,
// keeping the relative scroll position.
func (m *browseModel) relayout() {
	width := float64(m.cols) * m.perCol
	if !m.engine.Invalidate(width) {
		m.refresh()
		return
	}
	frac := 0.0
	if ms := m.maxScroll(); ms > 0 {
		frac = m.scrollY / ms
	}
	if _, err := m.engine.Layout(width); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.scrollY = frac * m.maxScroll()
	m.refresh()
}

func (m *browseModel) scroll(dy float64) {
	m.scrollY = min(max(m.scrollY+dy, 0), m.maxScroll())
	m.refresh()
}

func (m *browseModel) zoom(factor float64) {
	next := m.perCol * factor
	if next < 1 || next > 64 {
		return
	}
	m.perCol = next
	m.relayout()
}

// refresh queries the frames under the viewport.
func (m *browseModel) refresh() {
	if m.cols == 0 {
		return
	}
	frames, err := m.engine.FramesIntersecting(m.viewport())
	if err != nil {
		m.err = err
		return
	}
	m.visible = frames
}

func (m browseModel) View() string {
	if m.cols == 0 {
		return "loading…"
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(markError + " " + m.err.Error())
		b.WriteString("\n")
	} else {
		b.WriteString(m.grid())
	}
	b.WriteString(StyleDim.Render("↑/↓ scroll  pgup/pgdn page  g/G top/bottom  +/- zoom  q quit"))
	return b.String()
}

func (m browseModel) header() string {
	size, _ := m.engine.ContentSize()
	v := m.viewport()
	return StyleTitle.Render(appName) + " " + StyleDim.Render(fmt.Sprintf(
		"width %s · y %s-%s of %s · %d visible of %d",
		num(v.Width), num(math.Round(v.Y)), num(math.Round(min(v.MaxY(), size.Height))), num(size.Height),
		len(m.visible), len(m.tiles)))
}

// grid paints the visible frames into a cell buffer. Each cell holds the
// index of the tile covering it, or -1, and the rune drawn there.
func (m browseModel) grid() string {
	owner := make([][]int, m.rows)
	text := make([][]rune, m.rows)
	for r := range owner {
		owner[r] = make([]int, m.cols)
		text[r] = []rune(strings.Repeat(" ", m.cols))
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	v := m.viewport()
	for _, f := range m.visible {
		c0, c1 := m.span(f.MinX(), f.MaxX(), 0, m.perCol, m.cols)
		r0, r1 := m.span(f.MinY(), f.MaxY(), v.Y, m.perRow(), m.rows)
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				owner[r][c] = f.Index
			}
		}
		if f.MinY() >= v.Y && r0 < r1 {
			label := []rune(strconv.Itoa(f.Index))
			if len(label) <= c1-c0 {
				copy(text[r0][c0:], label)
			}
		}
	}

	var b strings.Builder
	for r, row := range owner {
		for c := 0; c < len(row); {
			end := c
			for end < len(row) && row[end] == row[c] {
				end++
			}
			b.WriteString(m.cellStyle(row[c]).Render(string(text[r][c:end])))
			c = end
		}
		b.WriteString("\n")
	}
	return b.String()
}

// span converts [lo, hi) in points to a cell range clipped to [0, n).
func (m browseModel) span(lo, hi, origin, per float64, n int) (int, int) {
	a := int(math.Floor((lo - origin) / per))
	z := int(math.Ceil((hi - origin) / per))
	return min(max(a, 0), n), min(max(z, 0), n)
}

func (m browseModel) cellStyle(idx int) lipgloss.Style {
	if idx < 0 || idx >= len(m.tiles) {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.tiles[idx].Color)).
		Foreground(colorBright).
		Bold(true)
}
