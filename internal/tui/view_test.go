package tui

import (
	"fmt"
	"packetsniffer/internal/capture"
	"packetsniffer/internal/models"
	"packetsniffer/internal/session"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHint = "↑/↓ select • enter confirm • q quit"

type listProvider []string

func (p listProvider) Interfaces() ([]string, error) {
	return append([]string(nil), p...), nil
}

func newSession(t *testing.T, explicit string, names ...string) *session.Session {
	t.Helper()
	s, err := session.New(capture.Null{}, listProvider(names), explicit)
	require.NoError(t, err)
	return s
}

func renderLines(s *session.Session, width, height int) []string {
	return strings.Split(ansi.Strip(Render(s, width, height, testHint)), "\n")
}

func TestRender_SelectingLayout(t *testing.T) {
	s := newSession(t, "", "eth0", "lo", "wlan0")
	lines := renderLines(s, 80, 24)

	require.Len(t, lines, 24)
	assert.Contains(t, lines[0], "Select Interface")
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[22], "└"))
	assert.Contains(t, lines[1], "> 1: eth0")
	assert.Contains(t, lines[2], "  2: lo")
	assert.Contains(t, lines[3], "  3: wlan0")
	assert.Equal(t, testHint, strings.TrimRight(lines[23], " "))

	for i, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 80, "line %d", i)
	}
}

func TestRender_SelectionFollowsCursor(t *testing.T) {
	s := newSession(t, "", "eth0", "lo")
	s.HandleEvent(session.Press(session.KeyDown))

	lines := renderLines(s, 80, 24)
	assert.Contains(t, lines[1], "  1: eth0")
	assert.NotContains(t, lines[1], ">")
	assert.Contains(t, lines[2], "> 2: lo")
}

func TestRender_ScrollsLongLists(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("veth%d", i)
	}
	s := newSession(t, "", names...)
	for i := 0; i < 20; i++ {
		s.HandleEvent(session.Press(session.KeyDown))
	}

	out := strings.Join(renderLines(s, 60, 10), "\n")
	assert.Contains(t, out, "> 21: veth20")
	assert.Contains(t, out, "15: veth14")
	assert.NotContains(t, out, " 1: veth0 ")
	assert.NotContains(t, out, "14: veth13")
	assert.Len(t, strings.Split(out, "\n"), 10)
}

func TestRender_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 100)
	s := newSession(t, "", long)

	for i, line := range renderLines(s, 40, 8) {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, "line %d", i)
	}
}

func TestRender_Capturing(t *testing.T) {
	s := newSession(t, "eth0", "eth0")
	lines := renderLines(s, 80, 24)

	require.Len(t, lines, 24)
	assert.Contains(t, lines[0], "Packets")
	assert.Equal(t, "interface: eth0   ● capturing", strings.TrimRight(lines[23], " "))
	for _, line := range lines[1:22] {
		assert.Equal(t, "│"+strings.Repeat(" ", 78)+"│", line)
	}
}

type frameSource struct{ n int }

func (f *frameSource) NextFrame() (models.Frame, bool) {
	if f.n == 0 {
		return models.Frame{}, false
	}
	f.n--
	return models.Frame{Length: 60}, true
}

func TestRender_CapturingShowsFrameCount(t *testing.T) {
	s, err := session.New(&frameSource{n: 3}, listProvider{"eth0"}, "eth0")
	require.NoError(t, err)
	s.Tick(nil)

	lines := renderLines(s, 80, 24)
	assert.Contains(t, lines[23], "3 frames")
}

func TestRender_DefaultsSizeBeforeResize(t *testing.T) {
	s := newSession(t, "", "eth0")
	lines := renderLines(s, 0, 0)
	assert.Len(t, lines, defaultHeight)
	assert.Equal(t, defaultWidth, lipgloss.Width(lines[0]))
}

func TestRender_DoesNotMutateSession(t *testing.T) {
	s := newSession(t, "", "eth0", "lo")
	s.HandleEvent(session.Press(session.KeyDown))

	_ = Render(s, 80, 24, testHint)
	_ = Render(s, 10, 3, testHint)

	assert.Equal(t, session.SelectingInterface, s.Mode())
	assert.Equal(t, 1, s.SelectedIndex())
	assert.False(t, s.ShouldQuit())
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		selected, rows, want int
	}{
		{0, 5, 0},
		{4, 5, 0},
		{5, 5, 1},
		{9, 5, 5},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scrollOffset(tt.selected, tt.rows), "selected=%d rows=%d", tt.selected, tt.rows)
	}
}

func TestTitledBorder(t *testing.T) {
	b := titledBorder("Packets", 20, lipgloss.NormalBorder())
	assert.Equal(t, "─ Packets ────────", b.Top)
	assert.Equal(t, 18, lipgloss.Width(b.Top))

	narrow := titledBorder("Select Interface", 10, lipgloss.NormalBorder())
	assert.Equal(t, lipgloss.NormalBorder().Top, narrow.Top)
}
