package tui

import (
	"fmt"
	"packetsniffer/internal/session"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	selectMarker = "> "
	captureGlyph = "●"
)

var (
	colorBorder = lipgloss.Color("240")
	colorMuted  = lipgloss.Color("241")
	colorAccent = lipgloss.Color("#04B575")

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FAFAFA"))

	itemStyle = lipgloss.NewStyle()

	hintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	statusStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

func (m Model) View() string {
	return Render(m.session, m.width, m.height, m.help.View(m.keys))
}

// Render draws s into a width x height block: a bordered content pane above
// a one-line status. It reads s and nothing else.
func Render(s *session.Session, width, height int, hint string) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	switch s.Mode() {
	case session.Capturing:
		return renderCapturing(s, width, height)
	default:
		return renderSelecting(s, width, height, hint)
	}
}

func renderSelecting(s *session.Session, width, height int, hint string) string {
	names := s.Interfaces()
	selected := s.SelectedIndex()
	inner := max(width-2, 0)
	rows := max(height-3, 0)

	start := scrollOffset(selected, rows)
	lines := make([]string, 0, rows)
	for i := start; i < len(names) && i < start+rows; i++ {
		label := fmt.Sprintf("%d: %s", i+1, names[i])
		if i == selected {
			row := ansi.Truncate(selectMarker+label, inner, "…")
			lines = append(lines, selectedStyle.Width(inner).Render(row))
			continue
		}
		row := ansi.Truncate(strings.Repeat(" ", len(selectMarker))+label, inner, "…")
		lines = append(lines, itemStyle.Render(row))
	}

	pane := renderPane("Select Interface", lines, width, height-1)
	status := hintStyle.MaxWidth(width).Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, pane, status)
}

func renderCapturing(s *session.Session, width, height int) string {
	pane := renderPane("Packets", nil, width, height-1)

	name, ok := s.ActiveInterface()
	if !ok {
		name = "unknown"
	}
	text := fmt.Sprintf("interface: %s   %s capturing", name, captureGlyph)
	if frames := s.Stats().Totals().Frames; frames > 0 {
		text += fmt.Sprintf("   %d frames", frames)
	}

	status := statusStyle.MaxWidth(width).Render(text)
	return lipgloss.JoinVertical(lipgloss.Left, pane, status)
}

// scrollOffset returns the first visible row so that selected stays on screen.
func scrollOffset(selected, rows int) int {
	if rows <= 0 || selected < rows {
		return 0
	}
	return selected - rows + 1
}

// renderPane draws lines inside a normal border of the given outer size
// with title embedded in the top edge.
func renderPane(title string, lines []string, width, height int) string {
	inner := max(width-2, 0)
	innerHeight := max(height-2, 0)

	border := titledBorder(title, width, lipgloss.NormalBorder())
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(colorBorder).
		Width(inner).
		Height(innerHeight).
		MaxHeight(height)

	return style.Render(strings.Join(lines, "\n"))
}

// titledBorder returns b with title embedded in its top edge. title must be
// plain text since lipgloss repeats the edge rune by rune, e.g.
//
//	┌─ Packets ───────────┐
func titledBorder(title string, totalWidth int, b lipgloss.Border) lipgloss.Border {
	innerWidth := totalWidth - lipgloss.Width(b.TopLeft) - lipgloss.Width(b.TopRight)
	if innerWidth <= 0 {
		return b
	}

	label := b.Top + " " + title + " "
	if lipgloss.Width(label) > innerWidth {
		return b
	}
	b.Top = label + strings.Repeat(b.Top, innerWidth-lipgloss.Width(label))
	return b
}
