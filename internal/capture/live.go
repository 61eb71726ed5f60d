package capture

import (
	"errors"
	"fmt"
	"packetsniffer/internal/logger"
	"packetsniffer/internal/models"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

const (
	// The same default as tcpdump.
	defaultSnapLen = 262144
	defaultQueue   = 1000
)

// LiveConfig controls how a libpcap handle is opened.
type LiveConfig struct {
	SnapLen int32
	Promisc bool
	// Timeout bounds each blocking read so the reader notices Close.
	Timeout time.Duration
	// Filter is an optional BPF expression.
	Filter string
	// Queue is the number of frames buffered between the reader and NextFrame.
	Queue int
}

// DefaultLiveConfig returns the settings used when none are configured.
func DefaultLiveConfig() LiveConfig {
	return LiveConfig{
		SnapLen: defaultSnapLen,
		Promisc: true,
		Timeout: 100 * time.Millisecond,
		Queue:   defaultQueue,
	}
}

// handle is the part of *pcap.Handle that Live reads from.
type handle interface {
	gopacket.PacketDataSource
	Close()
}

var openHandle = func(device string, cfg LiveConfig) (handle, error) {
	h, err := pcap.OpenLive(device, cfg.SnapLen, cfg.Promisc, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.Filter != "" {
		if err := h.SetBPFFilter(cfg.Filter); err != nil {
			h.Close()
			return nil, fmt.Errorf("could not set BPF filter %q: %w", cfg.Filter, err)
		}
	}
	return h, nil
}

// Live captures from a network device. A background goroutine performs the
// blocking reads and hands frames over through a bounded queue, so NextFrame
// never waits. Frames arriving while the queue is full are dropped.
type Live struct {
	device  string
	handle  handle
	frames  chan models.Frame
	stop    chan struct{}
	done    chan struct{}
	dropped atomic.Uint64

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// OpenLive opens device for capture and starts reading from it.
func OpenLive(device string, cfg LiveConfig) (*Live, error) {
	h, err := openHandle(device, cfg)
	if err != nil {
		return nil, classifyOpenError(device, err)
	}
	logger.Infof("capture started on %s (snaplen=%d promisc=%t filter=%q)", device, cfg.SnapLen, cfg.Promisc, cfg.Filter)
	return newLive(device, h, cfg.Queue), nil
}

func newLive(device string, h handle, queue int) *Live {
	if queue <= 0 {
		queue = defaultQueue
	}
	l := &Live{
		device: device,
		handle: h,
		frames: make(chan models.Frame, queue),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.read()
	return l
}

func (l *Live) read() {
	defer close(l.done)

	for {
		select {
		case <-l.stop:
			return
		default:
		}

		data, ci, err := l.handle.ReadPacketData()
		if err != nil {
			if errors.Is(err, pcap.NextErrorTimeoutExpired) {
				continue
			}
			l.mu.Lock()
			l.err = err
			l.mu.Unlock()
			logger.Warnf("capture on %s stopped: %v", l.device, err)
			return
		}

		frame := models.Frame{
			Timestamp: ci.Timestamp,
			Data:      data,
			Length:    ci.Length,
		}

		select {
		case l.frames <- frame:
		case <-l.stop:
			return
		default:
			l.dropped.Add(1)
		}
	}
}

// NextFrame implements PacketSource.
func (l *Live) NextFrame() (models.Frame, bool) {
	select {
	case f := <-l.frames:
		return f, true
	default:
		return models.Frame{}, false
	}
}

// Dropped returns how many frames were discarded because the queue was full.
func (l *Live) Dropped() uint64 {
	return l.dropped.Load()
}

// Err returns the error that ended the reader, if any.
func (l *Live) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close stops the reader and releases the handle. Frames still queued are discarded.
func (l *Live) Close() error {
	l.closeOnce.Do(func() {
		close(l.stop)
		<-l.done
		l.handle.Close()
		logger.Infof("capture on %s closed (%d dropped)", l.device, l.Dropped())
	})
	return nil
}

func classifyOpenError(device string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission") || strings.Contains(msg, "not permitted") {
		return fmt.Errorf("open %s: %w", device, ErrPermissionDenied)
	}
	return fmt.Errorf("open %s: %w", device, err)
}
