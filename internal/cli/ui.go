package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines to a single writer.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) error(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// file prints a file output line.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// keyValue prints a labeled value.
func (p printer) keyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(p.w, keyStyle.Render(key)+" "+styleValue.Render(value))
}

func (p printer) title(s string) {
	fmt.Fprintln(p.w, styleTitle.Render(s))
}

// table renders rows under headers with a rounded border. Rows whose index
// is in highlight are drawn in the number style.
func (p printer) table(headers []string, rows [][]string, highlight map[int]bool) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if highlight[row] {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

// joinStats joins short stat fragments with a dim separator.
func joinStats(parts ...string) string {
	styled := make([]string, len(parts))
	for i, part := range parts {
		styled[i] = styleNumber.Render(part)
	}
	return strings.Join(styled, styleDim.Render(" · "))
}
