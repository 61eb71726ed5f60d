package analysis

import (
	"packetsniffer/internal/models"
	"sync"
	"time"
)

// Totals is a snapshot of FrameStats.
type Totals struct {
	Frames     int64
	Bytes      int64 // Captured bytes
	WireBytes  int64 // Original lengths on the wire
	FirstFrame time.Time
	LastFrame  time.Time
}

// FrameStats counts frames handed to it by the drain step.
// It is safe to read from another goroutine while the owner observes.
type FrameStats struct {
	mu     sync.Mutex
	totals Totals
}

// NewFrameStats creates an empty FrameStats.
func NewFrameStats() *FrameStats {
	return &FrameStats{}
}

// Observe records one frame.
func (s *FrameStats) Observe(f models.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totals.Frames++
	s.totals.Bytes += int64(len(f.Data))
	s.totals.WireBytes += int64(f.Length)

	if s.totals.FirstFrame.IsZero() || f.Timestamp.Before(s.totals.FirstFrame) {
		s.totals.FirstFrame = f.Timestamp
	}
	if f.Timestamp.After(s.totals.LastFrame) {
		s.totals.LastFrame = f.Timestamp
	}
}

// Totals returns the counters accumulated so far.
func (s *FrameStats) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}
