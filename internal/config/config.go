package config

import (
	"fmt"
	"math"
	"packetsniffer/internal/capture"
	"packetsniffer/internal/iface"
	"packetsniffer/internal/logger"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PKTSNIFF_LOG_LEVEL.
const EnvPrefix = "PKTSNIFF"

// Config represents the application configuration
type Config struct {
	// Interface starts the session capturing on this interface when set
	Interface string `mapstructure:"interface"`
	// Provider selects how interfaces are enumerated (proc, pcap, net)
	Provider string `mapstructure:"provider"`
	// Live opens a libpcap handle once an interface is active
	Live bool `mapstructure:"live"`
	// TickInterval is how long the UI waits for input between session ticks
	TickInterval time.Duration `mapstructure:"tick_interval"`

	Capture CaptureConfig `mapstructure:"capture"`
	Log     LogConfig     `mapstructure:"log"`
	Report  ReportConfig  `mapstructure:"report"`
}

// CaptureConfig holds libpcap settings for live capture
type CaptureConfig struct {
	SnapLen int           `mapstructure:"snaplen"`
	Promisc bool          `mapstructure:"promisc"`
	Timeout time.Duration `mapstructure:"timeout"`
	Filter  string        `mapstructure:"filter"`
	Queue   int           `mapstructure:"queue"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the minimum log level to output (debug, info, warn, error)
	Level string `mapstructure:"level"`
	// File is the path to the log file. If empty, nothing is logged
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum size of log file before rotation
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
}

// ReportConfig controls the end-of-session report
type ReportConfig struct {
	// Dir enables the report when set
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	live := capture.DefaultLiveConfig()

	v.SetDefault("interface", "")
	v.SetDefault("provider", "proc")
	v.SetDefault("live", false)
	v.SetDefault("tick_interval", 16*time.Millisecond)

	v.SetDefault("capture.snaplen", int(live.SnapLen))
	v.SetDefault("capture.promisc", live.Promisc)
	v.SetDefault("capture.timeout", live.Timeout)
	v.SetDefault("capture.filter", "")
	v.SetDefault("capture.queue", live.Queue)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("report.dir", "")
	v.SetDefault("report.format", "html")
}

// Load resolves the configuration from defaults, the optional file at path,
// PKTSNIFF_* environment variables and any flags already bound to v.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if !contains(iface.Kinds, c.Provider) {
		return fmt.Errorf("invalid provider %q: want one of %s", c.Provider, strings.Join(iface.Kinds, ", "))
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid tick_interval %s: must be positive", c.TickInterval)
	}
	if c.Capture.SnapLen <= 0 || c.Capture.SnapLen > math.MaxInt32 {
		return fmt.Errorf("invalid capture.snaplen %d: must be between 1 and %d", c.Capture.SnapLen, math.MaxInt32)
	}
	if c.Capture.Queue <= 0 {
		return fmt.Errorf("invalid capture.queue %d: must be positive", c.Capture.Queue)
	}
	if c.Capture.Timeout <= 0 {
		return fmt.Errorf("invalid capture.timeout %s: must be positive", c.Capture.Timeout)
	}
	if _, err := logger.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if c.Report.Format != "html" {
		return fmt.Errorf("invalid report.format %q: only html is supported", c.Report.Format)
	}
	return nil
}

// LiveConfig converts the capture settings for capture.OpenLive.
func (c CaptureConfig) LiveConfig() capture.LiveConfig {
	return capture.LiveConfig{
		SnapLen: int32(c.SnapLen),
		Promisc: c.Promisc,
		Timeout: c.Timeout,
		Filter:  c.Filter,
		Queue:   c.Queue,
	}
}

// LoggerConfig converts the logging settings for logger.Initialize.
func (c LogConfig) LoggerConfig() logger.Config {
	level, _ := logger.ParseLogLevel(c.Level)
	return logger.Config{
		Level:      level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
