package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"packetsniffer/internal/capture"
	"packetsniffer/internal/config"
	"packetsniffer/internal/iface"
	"packetsniffer/internal/logger"
	"packetsniffer/internal/reporting"
	"packetsniffer/internal/session"
	"packetsniffer/internal/tui"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"interface":  "interface",
	"provider":   "provider",
	"live":       "live",
	"filter":     "capture.filter",
	"log-file":   "log.file",
	"log-level":  "log.level",
	"report-dir": "report.dir",
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           "packet-sniffer",
		Short:         "a network packet sniffing tool",
		Long:          "Pick a network interface and capture on it from an interactive terminal UI.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("interface", "i", "", "The network interface to capture on")
	flags.StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml)")
	flags.String("provider", "proc", "How to enumerate interfaces: proc, pcap or net")
	flags.Bool("live", false, "Capture with libpcap once an interface is active (needs CAP_NET_RAW)")
	flags.String("filter", "", "BPF filter for live capture")
	flags.String("log-file", "", "Write logs to this file (rotated)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("report-dir", "", "Write an HTML session report into this directory on exit")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Initialize(cfg.Log.LoggerConfig())
	defer logger.GetLogger().Close()

	provider, err := iface.New(cfg.Provider)
	if err != nil {
		return err
	}

	source := capture.NewDeferred()
	defer source.Close()

	sess, err := session.New(source, provider, cfg.Interface)
	if err != nil {
		logger.Errorf("could not start session: %v", err)
		return err
	}

	opts := tui.Options{
		TickInterval: cfg.TickInterval,
	}
	if cfg.Live {
		live := cfg.Capture.LiveConfig()
		opts.Open = func(device string) (capture.PacketSource, error) {
			return capture.OpenLive(device, live)
		}
	}

	started := time.Now()
	logger.Infof("session started (provider=%s live=%t)", cfg.Provider, cfg.Live)

	final, err := tui.Run(ctx, tui.NewModel(sess, opts))
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}

	totals := sess.Stats().Totals()
	logger.Infof("session ended: %d frames, %d bytes, %d dropped", totals.Frames, totals.WireBytes, source.Dropped())

	if cfg.Report.Dir != "" {
		active, _ := sess.ActiveInterface()
		path, err := reporting.GenerateSessionReport(reporting.Summary{
			Interface:  active,
			Interfaces: sess.Interfaces(),
			Started:    started,
			Ended:      time.Now(),
			Totals:     totals,
			Dropped:    source.Dropped(),
		}, cfg.Report.Format, cfg.Report.Dir)
		if err != nil {
			logger.Errorf("could not write report: %v", err)
		} else {
			fmt.Printf("Session report written to %s\n", path)
		}
	}

	return final.Err()
}
