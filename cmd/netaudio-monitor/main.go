// Command netaudio-monitor discovers Dante and AES67 audio devices on the
// local network and manages their channel routing.
//
// Each refresh pass browses mDNS for Dante services, consolidates the
// records into devices, listens for SAP/SDP stream announcements and
// reconciles AES67 subscriptions against the stream cache.
//
// Usage:
//
//	netaudio-monitor [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-interface string   Network interface for mDNS browsing
//	-interval duration  Refresh interval (default 30s)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-log-file string    Protocol log file path (CBOR)
//	-once               Run a single refresh pass and exit
//	-interactive        Enable interactive command mode
//
// Examples:
//
//	# Periodic discovery with console output
//	netaudio-monitor -log-level debug
//
//	# One-shot pass with protocol logging
//	netaudio-monitor -once -log-file session.nlog
//
//	# Interactive routing control
//	netaudio-monitor -interactive
//
// Interactive Commands:
//
//	devices     - List discovered devices
//	device <name> - Show device details
//	streams     - List cached AES67 streams
//	sources     - List routable sources
//	subscribe <device> <rx#> <source> - Route a source to a channel
//	unsubscribe <device> <rx#> - Clear a channel's routing
//	rate <device> <hz> - Set device sample rate
//	refresh     - Run a refresh pass now
//	status      - Show monitor status
//	quit        - Exit the monitor
package main

import (
	"context"
	"flag"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/netaudio-project/netaudio-go/pkg/aes67"
	"github.com/netaudio-project/netaudio-go/pkg/control"
	"github.com/netaudio-project/netaudio-go/pkg/coordinator"
	"github.com/netaudio-project/netaudio-go/pkg/discovery"
	"github.com/netaudio-project/netaudio-go/pkg/log"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// Config holds the monitor configuration. Flag values override file values.
type Config struct {
	Interface   string        `yaml:"interface"`
	Interval    time.Duration `yaml:"interval"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	Once        bool          `yaml:"-"`
	Interactive bool          `yaml:"-"`
}

var (
	configFile string
	config     = Config{
		Interval: coordinator.DefaultScanInterval,
		LogLevel: "info",
	}
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&config.Interface, "interface", "", "Network interface for mDNS browsing")
	flag.DurationVar(&config.Interval, "interval", coordinator.DefaultScanInterval, "Refresh interval")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.LogFile, "log-file", "", "Protocol log file path (CBOR)")
	flag.BoolVar(&config.Once, "once", false, "Run a single refresh pass and exit")
	flag.BoolVar(&config.Interactive, "interactive", false, "Enable interactive command mode")
}

func main() {
	// File values load first so explicit flags can override them.
	loadConfigFile()
	flag.Parse()

	stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)

	protoLogger, closeLogger, err := buildLogger()
	if err != nil {
		stdlog.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLogger()

	browser := discovery.NewBrowser(discovery.BrowserConfig{
		BrowseWindow: discovery.BrowseWindow,
		Interface:    config.Interface,
	}, protoLogger)
	listener := sap.NewListener(sap.DefaultListenerConfig(), protoLogger)
	subscriber := aes67.NewClient(aes67.DefaultClientConfig(), protoLogger)

	coord := coordinator.New(coordinator.Config{
		Browser:        browser,
		Listener:       listener,
		Subscriber:     subscriber,
		ControlFactory: control.NewNopClient,
		Logger:         protoLogger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.Once {
		if err := runPass(ctx, coord); err != nil {
			stdlog.Fatalf("Refresh failed: %v", err)
		}
		return
	}

	stdlog.Printf("netaudio-monitor starting (interval %s)", config.Interval)
	go runRefreshLoop(ctx, coord)

	if config.Interactive {
		ic, err := newInteractive(coord)
		if err != nil {
			stdlog.Fatalf("Failed to create interactive mode: %v", err)
		}
		// Route log output through readline so it does not clobber the prompt.
		stdlog.SetOutput(ic.Stdout())
		go ic.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		stdlog.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	stdlog.Println("Shutting down...")
	cancel()
}

func loadConfigFile() {
	// Peek at -config before the full parse so the file loads first.
	for i, arg := range os.Args[1:] {
		if arg == "-config" || arg == "--config" {
			if i+2 <= len(os.Args[1:]) {
				configFile = os.Args[i+2]
			}
		}
	}
	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		stdlog.Fatalf("Failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		stdlog.Fatalf("Failed to parse config file: %v", err)
	}
}

// buildLogger assembles the protocol logger from config: an slog console
// adapter at debug level, a CBOR file logger when -log-file is set, or both.
func buildLogger() (log.Logger, func(), error) {
	var loggers []log.Logger

	if config.LogLevel == "debug" {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(handler)))
	}

	var fileLogger *log.FileLogger
	if config.LogFile != "" {
		fl, err := log.NewFileLogger(config.LogFile)
		if err != nil {
			return nil, nil, err
		}
		fileLogger = fl
		loggers = append(loggers, fl)
	}

	closeFn := func() {
		if fileLogger != nil {
			_ = fileLogger.Close()
		}
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	default:
		return log.NewMultiLogger(loggers...), closeFn, nil
	}
}

func runPass(ctx context.Context, coord *coordinator.Coordinator) error {
	start := time.Now()
	snapshot, err := coord.Refresh(ctx)
	if err != nil {
		return err
	}
	stdlog.Printf("Pass complete in %s: %d device(s), %d stream(s)",
		time.Since(start).Round(time.Millisecond), len(snapshot), coord.Streams().Len())
	return nil
}

func runRefreshLoop(ctx context.Context, coord *coordinator.Coordinator) {
	if err := runPass(ctx, coord); err != nil {
		stdlog.Printf("Refresh failed: %v", err)
	}

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := runPass(ctx, coord); err != nil {
				stdlog.Printf("Refresh failed: %v", err)
			}
		}
	}
}
