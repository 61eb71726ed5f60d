package session

import (
	"packetsniffer/internal/analysis"
	"packetsniffer/internal/capture"
	"packetsniffer/internal/iface"
	"packetsniffer/internal/logger"
)

// Mode is the current phase of interaction.
type Mode int

const (
	SelectingInterface Mode = iota
	Capturing
)

func (m Mode) String() string {
	switch m {
	case SelectingInterface:
		return "selecting-interface"
	case Capturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// Session is the state of one interactive run. Only Tick and HandleEvent
// mutate it, and both must be called from a single goroutine.
type Session struct {
	mode       Mode
	interfaces []string
	selected   int
	active     string
	hasActive  bool
	shouldQuit bool

	source capture.PacketSource
	stats  *analysis.FrameStats
}

// New enumerates interfaces through provider and builds a session.
// When explicit is non-empty the session starts capturing on that interface,
// which must be one of the enumerated names.
func New(source capture.PacketSource, provider iface.Provider, explicit string) (*Session, error) {
	interfaces, err := provider.Interfaces()
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}
	if len(interfaces) == 0 {
		return nil, ErrNoInterfaces
	}

	s := &Session{
		mode:       SelectingInterface,
		interfaces: interfaces,
		source:     source,
		stats:      analysis.NewFrameStats(),
	}

	if explicit != "" {
		if !contains(interfaces, explicit) {
			return nil, &InterfaceNotFoundError{Name: explicit}
		}
		s.mode = Capturing
		s.active = explicit
		s.hasActive = true
	}

	logger.Debugf("session created: mode=%s interfaces=%v", s.mode, interfaces)
	return s, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Interfaces returns the enumerated interface names in enumeration order.
func (s *Session) Interfaces() []string {
	out := make([]string, len(s.interfaces))
	copy(out, s.interfaces)
	return out
}

// SelectedIndex returns the selection cursor.
func (s *Session) SelectedIndex() int { return s.selected }

// ActiveInterface returns the interface being captured on, if any.
func (s *Session) ActiveInterface() (string, bool) { return s.active, s.hasActive }

// ShouldQuit reports whether the operator asked to leave.
func (s *Session) ShouldQuit() bool { return s.shouldQuit }

// Source returns the packet source drained by Tick.
func (s *Session) Source() capture.PacketSource { return s.source }

// Stats returns the counters of frames drained so far.
func (s *Session) Stats() *analysis.FrameStats { return s.stats }

// Tick drains every frame the source has ready, then applies events in order.
func (s *Session) Tick(events []Event) {
	for {
		frame, ok := s.source.NextFrame()
		if !ok {
			break
		}
		s.stats.Observe(frame)
	}

	for _, ev := range events {
		s.HandleEvent(ev)
	}
}

// HandleEvent applies a single event. Events that mean nothing in the
// current mode are ignored.
func (s *Session) HandleEvent(ev Event) {
	key, ok := ev.(KeyEvent)
	if !ok || key.Kind != KeyPress {
		return
	}

	switch s.mode {
	case SelectingInterface:
		s.handleSelecting(key)
	case Capturing:
		if key.Key == KeyQuit {
			s.quit()
		}
	}
}

func (s *Session) handleSelecting(key KeyEvent) {
	switch key.Key {
	case KeyUp:
		if s.selected > 0 {
			s.selected--
		}
	case KeyDown:
		if s.selected < len(s.interfaces)-1 {
			s.selected++
		}
	case KeyEnter:
		if s.selected < len(s.interfaces) {
			s.active = s.interfaces[s.selected]
			s.hasActive = true
			s.mode = Capturing
			logger.Infof("capturing on %s", s.active)
		}
	case KeyQuit:
		s.quit()
	}
}

func (s *Session) quit() {
	if !s.shouldQuit {
		logger.Debugf("quit requested in mode %s", s.mode)
	}
	s.shouldQuit = true
}
