package capture

import (
	"errors"
	"io"
	"packetsniffer/internal/models"
	"sync"
)

// ErrPermissionDenied is returned when the process may not open a capture handle.
var ErrPermissionDenied = errors.New("permission denied (requires CAP_NET_RAW and sudo)")

// PacketSource yields frames that have already been captured.
// NextFrame must never block: it reports false when nothing is available right now.
type PacketSource interface {
	NextFrame() (models.Frame, bool)
}

// Null never produces a frame.
type Null struct{}

// NextFrame implements PacketSource.
func (Null) NextFrame() (models.Frame, bool) {
	return models.Frame{}, false
}

// Deferred is a PacketSource whose backend is attached after construction,
// once the interface to capture on is known. Attach may be called from a
// different goroutine than NextFrame.
type Deferred struct {
	mu     sync.Mutex
	src    PacketSource
	closed bool
}

// NewDeferred returns a Deferred with nothing attached.
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Attach installs src, closing any previously attached source. A source
// attached after Close is closed immediately.
func (d *Deferred) Attach(src PacketSource) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		closeSource(src)
		return
	}
	prev := d.src
	d.src = src
	d.mu.Unlock()

	if prev != nil {
		closeSource(prev)
	}
}

// Attached reports whether a backend is installed.
func (d *Deferred) Attached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.src != nil
}

// NextFrame implements PacketSource.
func (d *Deferred) NextFrame() (models.Frame, bool) {
	d.mu.Lock()
	src := d.src
	d.mu.Unlock()

	if src == nil {
		return models.Frame{}, false
	}
	return src.NextFrame()
}

// Dropped returns the attached backend's drop counter, or zero if it keeps none.
func (d *Deferred) Dropped() uint64 {
	d.mu.Lock()
	src := d.src
	d.mu.Unlock()

	if c, ok := src.(interface{ Dropped() uint64 }); ok {
		return c.Dropped()
	}
	return 0
}

// Close releases the attached backend. It is safe to call more than once.
func (d *Deferred) Close() error {
	d.mu.Lock()
	src := d.src
	d.src = nil
	d.closed = true
	d.mu.Unlock()

	if src == nil {
		return nil
	}
	return closeSource(src)
}

func closeSource(src PacketSource) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
