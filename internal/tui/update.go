package tui

import (
	"packetsniffer/internal/logger"
	"packetsniffer/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.pending = append(m.pending, m.keys.event(msg))

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.pending = append(m.pending, session.ResizeEvent{Width: msg.Width, Height: msg.Height})

	case tea.MouseMsg:
		m.pending = append(m.pending, session.MouseEvent{X: msg.X, Y: msg.Y})

	case tea.FocusMsg:
		m.pending = append(m.pending, session.FocusEvent{Focused: true})

	case tea.BlurMsg:
		m.pending = append(m.pending, session.FocusEvent{Focused: false})

	case frameTickMsg:
		return m.tick()

	case sourceOpenedMsg:
		logger.Infof("packet source attached on %s", msg.device)

	case sourceFailedMsg:
		m.err = msg.err
		logger.Errorf("could not open packet source: %v", msg.err)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) tick() (tea.Model, tea.Cmd) {
	m.session.Tick(m.pending)
	m.pending = nil

	if m.session.ShouldQuit() {
		return m, tea.Quit
	}

	cmds := []tea.Cmd{tickCmd(m.tickInterval)}

	if device, ok := m.session.ActiveInterface(); ok && m.open != nil && !m.opening && !m.source.Attached() {
		m.opening = true
		cmds = append(cmds, openCmd(m.open, device, m.source))
	}

	return m, tea.Batch(cmds...)
}
