package reporting

import (
	"fmt"
	"html"
	"os"
	"packetsniffer/internal/analysis"
	"path/filepath"
	"strings"
	"time"
)

// Summary describes a finished session.
type Summary struct {
	Interface  string // Empty when the operator quit before selecting one
	Interfaces []string
	Started    time.Time
	Ended      time.Time
	Totals     analysis.Totals
	Dropped    uint64
}

// GenerateSessionReport writes a report of the session into dir and returns its path.
// Currently supports "html" format.
func GenerateSessionReport(sum Summary, format, dir string) (string, error) {
	if format != "html" {
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := sum.Ended.Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("report_%s.html", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	iface := sum.Interface
	if iface == "" {
		iface = "none selected"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Packet Sniffer Session Report - %s</title>
    <style>
        body { font-family: sans-serif; margin: 20px; color: #333; }
        h1, h2 { color: #2c3e50; }
        table { width: 100%%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        .summary { background: #eef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .active { color: #04B575; font-weight: bold; }
    </style>
</head>
<body>
    <h1>Packet Sniffer Session Report</h1>
    <div class="summary">
        <p><strong>Interface:</strong> %s</p>
        <p><strong>Started:</strong> %s</p>
        <p><strong>Duration:</strong> %s</p>
        <p><strong>Frames:</strong> %d</p>
        <p><strong>Captured Data:</strong> %s</p>
        <p><strong>Data On Wire:</strong> %s</p>
        <p><strong>Dropped Frames:</strong> %d</p>
    </div>

    <h2>Interfaces</h2>
    <table>
        <thead>
            <tr>
                <th>#</th>
                <th>Name</th>
            </tr>
        </thead>
        <tbody>
`, timestamp,
		html.EscapeString(iface),
		sum.Started.Format(time.RFC1123),
		sum.Ended.Sub(sum.Started).Round(time.Millisecond),
		sum.Totals.Frames,
		formatBytes(sum.Totals.Bytes),
		formatBytes(sum.Totals.WireBytes),
		sum.Dropped)

	for i, name := range sum.Interfaces {
		class := ""
		if name == sum.Interface {
			class = ` class="active"`
		}
		fmt.Fprintf(&b, "            <tr><td>%d</td><td%s>%s</td></tr>\n", i+1, class, html.EscapeString(name))
	}

	b.WriteString(`        </tbody>
    </table>
</body>
</html>`)

	if _, err := file.WriteString(b.String()); err != nil {
		return "", err
	}

	return filename, nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
