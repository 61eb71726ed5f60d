package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", Debug, false},
		{"DEBUG", Debug, false},
		{"info", Info, false},
		{"warn", Warn, false},
		{"warning", Warn, false},
		{"ERROR", Error, false},
		{"verbose", Info, true},
		{"", Info, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Warn)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "WARN: warn 3")
	assert.Contains(t, out, "ERROR: error 4")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestInitialize_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sniffer.log")
	Initialize(Config{Level: Debug, File: path, MaxSizeMB: 1, MaxBackups: 1})
	defer Initialize(Config{Level: Info})

	Debugf("selected %s", "eth0")
	require.NoError(t, GetLogger().Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: selected eth0")
}

func TestPackageLogger_DiscardsByDefault(t *testing.T) {
	assert.NotPanics(t, func() {
		Infof("nothing to see")
		Errorf("still nothing")
	})
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "LEVEL(9)", LogLevel(9).String())
}
