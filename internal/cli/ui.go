package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorFail    = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorBright  = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

// Styles shared by tables, the browser and status lines.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorBright)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey         = styleLabel.Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
)

// Status line markers, rendered in their own color.
var (
	markSuccess = StyleSuccess.Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	markInfo    = styleLabel.Render("›")
	markFile    = StyleDim.Render("→")
)

// status writes human-oriented progress lines. Documents, artifacts and
// tables go to stdout; status lines go to the command's stderr so piping
// "-o -" output stays clean.
type status struct{ w io.Writer }

func newStatus(cmd *cobra.Command) status { return status{w: cmd.ErrOrStderr()} }

func (s status) line(mark, format string, args ...any) {
	fmt.Fprintln(s.w, mark+" "+fmt.Sprintf(format, args...))
}

func (s status) success(format string, args ...any) { s.line(markSuccess, format, args...) }
func (s status) fail(format string, args ...any)    { s.line(markError, format, args...) }
func (s status) info(format string, args ...any)    { s.line(markInfo, format, args...) }

// detail prints an indented, dimmed line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+markFile+" "+StyleValue.Render(path))
}

func (s status) keyValue(key, value string) {
	fmt.Fprintln(s.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func (s status) stats(tiles, segments, remainder int, cached bool) {
	fmt.Fprintln(s.w, statsLine(tiles, segments, remainder, cached))
}

// nextStep suggests the command to run next, preceded by a blank line.
func (s status) nextStep(description, command string) {
	fmt.Fprintln(s.w)
	fmt.Fprintln(s.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}

// statsLine renders "17 tiles · 7 segments · cached", adding the number of
// unplaced tiles when there is a remainder.
func statsLine(tiles, segments, remainder int, cached bool) string {
	parts := []string{
		StyleDim.Render(plural(tiles, "tile")),
		StyleDim.Render(plural(segments, "segment")),
	}
	if remainder > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unplaced", remainder)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleLabel.Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
