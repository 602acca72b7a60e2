package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// CellWidth is the number of terminal columns a single cell occupies
	CellWidth = 2

	clearScreen = "\033[2J\033[H"
)

var (
	aliveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	deadStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235"))
)

// TerminalRenderer draws a grid as rows of two-column cells
type TerminalRenderer struct{}

// Render returns the grid as a multi-line string, one line per row
func (r *TerminalRenderer) Render(g *Grid) string {
	var sb strings.Builder
	for y := range g.height {
		// Runs of equal cells are styled together to keep escape codes down.
		runStart := 0
		for x := 1; x <= g.width; x++ {
			if x < g.width && g.cells[y][x] == g.cells[y][runStart] {
				continue
			}
			sb.WriteString(renderRun(g.cells[y][runStart], x-runStart))
			runStart = x
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderRun(alive bool, n int) string {
	if alive {
		return aliveStyle.Render(strings.Repeat(gridPosBlock, n))
	}
	return deadStyle.Render(strings.Repeat(gridPosEmpty, n))
}

// Display writes the rendered grid to w
func (r *TerminalRenderer) Display(w io.Writer, g *Grid) {
	fmt.Fprintln(w, r.Render(g))
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(w io.Writer) {
	fmt.Fprint(w, clearScreen)
}
