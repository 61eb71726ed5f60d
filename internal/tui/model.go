package tui

import (
	"context"
	"errors"
	"packetsniffer/internal/capture"
	"packetsniffer/internal/logger"
	"packetsniffer/internal/session"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickInterval is how long the loop waits for input before ticking the session.
const DefaultTickInterval = 16 * time.Millisecond

// OpenFunc opens a packet source on the named device. It runs off the
// update goroutine and may block.
type OpenFunc func(device string) (capture.PacketSource, error)

// Options configures a Model.
type Options struct {
	TickInterval time.Duration
	// Open is optional. Its result is attached to the session's source, which
	// must be a *capture.Deferred; otherwise Open is ignored.
	Open OpenFunc
	Keys *KeyMap
}

// Model drives a session from the bubbletea event loop. Input is batched
// between frame ticks and applied in arrival order.
type Model struct {
	session      *session.Session
	keys         KeyMap
	help         help.Model
	tickInterval time.Duration

	source  *capture.Deferred
	open    OpenFunc
	opening bool

	pending []session.Event
	width   int
	height  int
	err     error
}

// NewModel creates a Model around s.
func NewModel(s *session.Session, opts Options) Model {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	source, _ := s.Source().(*capture.Deferred)
	open := opts.Open
	if open != nil && source == nil {
		logger.Warnf("session source %T cannot take a live capture; ignoring Open", s.Source())
		open = nil
	}

	return Model{
		session:      s,
		keys:         keys,
		help:         help.New(),
		tickInterval: interval,
		source:       source,
		open:         open,
	}
}

// Session returns the session driven by the model.
func (m Model) Session() *session.Session {
	return m.session
}

// Err returns the error that ended the program early, if any.
func (m Model) Err() error {
	return m.err
}

type frameTickMsg time.Time

type sourceOpenedMsg struct {
	device string
}

type sourceFailedMsg struct {
	err error
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// openCmd attaches the opened source from the command goroutine so that a
// source opened after the program has quit is still closed with target.
func openCmd(open OpenFunc, device string, target *capture.Deferred) tea.Cmd {
	return func() tea.Msg {
		src, err := open(device)
		if err != nil {
			return sourceFailedMsg{err: err}
		}
		target.Attach(src)
		return sourceOpenedMsg{device: device}
	}
}

// DisplayError reports a failure of the terminal surface.
type DisplayError struct {
	Op  string
	Err error
}

func (e *DisplayError) Error() string {
	return "display " + e.Op + ": " + e.Err.Error()
}

func (e *DisplayError) Unwrap() error {
	return e.Err
}

// Run takes over the terminal with the alternate screen and runs m until the
// session quits or ctx is cancelled. The terminal is restored on every exit
// path, including panics inside the program.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			if fm, ok := final.(Model); ok {
				return fm, nil
			}
			return m, nil
		}
		return m, &DisplayError{Op: "run", Err: err}
	}

	fm, ok := final.(Model)
	if !ok {
		return m, &DisplayError{Op: "run", Err: errors.New("unexpected final model")}
	}
	return fm, nil
}
