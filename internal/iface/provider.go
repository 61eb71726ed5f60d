package iface

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/google/gopacket/pcap"
)

// DefaultProcPath is the Linux network device accounting table.
const DefaultProcPath = "/proc/net/dev"

// Provider enumerates network interface names in the order the backend reports them.
type Provider interface {
	Interfaces() ([]string, error)
}

// Proc reads interface names from a /proc/net/dev style table.
type Proc struct {
	// Path overrides DefaultProcPath when set.
	Path string
}

// Interfaces implements Provider.
func (p Proc) Interfaces() ([]string, error) {
	path := p.Path
	if path == "" {
		path = DefaultProcPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseProcNetDev(f)
}

// ParseProcNetDev extracts interface names from the contents of /proc/net/dev.
// The first two lines are column headers. Every other line starts with the
// interface name followed by a colon.
func ParseProcNetDev(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	names := []string{}
	line := 0

	for scanner.Scan() {
		line++
		if line <= 2 {
			continue
		}

		name, _, _ := strings.Cut(scanner.Text(), ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read device table: %w", err)
	}

	return names, nil
}

// Pcap lists the devices libpcap can open.
type Pcap struct{}

// Interfaces implements Provider.
func (Pcap) Interfaces() ([]string, error) {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(devices))
	for _, device := range devices {
		names = append(names, device.Name)
	}
	return names, nil
}

// Net lists interfaces known to the Go runtime, ordered by kernel index.
type Net struct{}

// Interfaces implements Provider.
func (Net) Interfaces() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ifaces))
	for _, i := range ifaces {
		names = append(names, i.Name)
	}
	return names, nil
}

// Kinds lists the provider names accepted by New.
var Kinds = []string{"proc", "pcap", "net"}

// New returns the provider registered under kind.
func New(kind string) (Provider, error) {
	switch kind {
	case "proc", "":
		return Proc{}, nil
	case "pcap":
		return Pcap{}, nil
	case "net":
		return Net{}, nil
	default:
		return nil, fmt.Errorf("unknown interface provider %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}
