package session

// Event is an input delivered to the session by the host loop.
type Event interface {
	isEvent()
}

// Key identifies a key the session may react to.
type Key int

const (
	// KeyOther is any key without a binding.
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyQuit:
		return "quit"
	default:
		return "other"
	}
}

// KeyKind distinguishes presses from release and auto-repeat signals.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Key  Key
	Kind KeyKind
	// Text is the raw key as reported by the terminal, kept for logging.
	Text string
}

// Press is shorthand for a KeyPress event of k.
func Press(k Key) KeyEvent {
	return KeyEvent{Key: k, Kind: KeyPress}
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

// MouseEvent reports mouse activity.
type MouseEvent struct {
	X, Y int
}

// FocusEvent reports the terminal gaining or losing focus.
type FocusEvent struct {
	Focused bool
}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (MouseEvent) isEvent()  {}
func (FocusEvent) isEvent()  {}
