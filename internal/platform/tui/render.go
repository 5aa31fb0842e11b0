package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/birdrush/birdrush/internal/core"
)

// styleTable holds one lipgloss style per cell color, derived from the
// color's ANSI palette code. Built once; read concurrently by SSH sessions.
var styleTable = buildStyleTable()

func buildStyleTable() [core.ColorGray + 1]lipgloss.Style {
	var table [core.ColorGray + 1]lipgloss.Style
	for c := range table {
		st := lipgloss.NewStyle()
		if code := core.Color(c).ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		table[c] = st
	}
	return table
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(styleTable) {
		c = core.ColorDefault
	}
	return styleTable[c]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent same-colored cells are emitted as one styled run to keep the
// ANSI escape overhead down.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		runColor := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				flushRun(&sb, &run, runColor)
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		flushRun(&sb, &run, runColor)
	}
	return sb.String()
}

func flushRun(dst *strings.Builder, run *strings.Builder, c core.Color) {
	if run.Len() == 0 {
		return
	}
	dst.WriteString(styleFor(c).Render(run.String()))
	run.Reset()
}
