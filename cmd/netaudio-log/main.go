// Command netaudio-log views and analyzes protocol log files.
//
// Log files are created by running netaudio-monitor with the -log-file
// flag. They contain CBOR-encoded events from the discovery, SAP, command
// and service layers.
//
// Usage:
//
//	netaudio-log <command> [flags] <file.nlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	netaudio-log view session.nlog
//
//	# View only SAP-layer events
//	netaudio-log view -layer sap session.nlog
//
//	# View one refresh pass
//	netaudio-log view -pass 6f1c2a.. session.nlog
//
//	# Show statistics
//	netaudio-log stats session.nlog
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/netaudio-project/netaudio-go/pkg/log"
)

const usage = `netaudio-log - Protocol Log Analyzer

Usage:
  netaudio-log <command> [flags] <file.nlog>

Commands:
  view     View log file in human-readable format
  stats    Show statistics about the log file

Use "netaudio-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	layer := fs.String("layer", "", "Filter by layer (discovery, sap, command, service)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	passID := fs.String("pass", "", "Filter by refresh-pass ID")
	device := fs.String("device", "", "Filter by device display name")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		os.Exit(1)
	}

	filter := log.Filter{PassID: *passID, Device: *device}

	if *layer != "" {
		l, err := parseLayer(*layer)
		if err != nil {
			fatal(err)
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := parseDirection(*direction)
		if err != nil {
			fatal(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := parseCategory(*category)
		if err != nil {
			fatal(err)
		}
		filter.Category = &c
	}

	reader, err := log.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		fatal(err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatal(err)
		}
		printEvent(event)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		os.Exit(1)
	}

	reader, err := log.NewReader(fs.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer reader.Close()

	total := 0
	byLayer := make(map[log.Layer]int)
	byCategory := make(map[log.Category]int)
	passes := make(map[string]bool)
	devices := make(map[string]bool)

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatal(err)
		}
		total++
		byLayer[event.Layer]++
		byCategory[event.Category]++
		if event.PassID != "" {
			passes[event.PassID] = true
		}
		if event.Device != "" {
			devices[event.Device] = true
		}
	}

	fmt.Printf("Events:  %d\n", total)
	fmt.Printf("Passes:  %d\n", len(passes))
	fmt.Printf("Devices: %d\n", len(devices))

	fmt.Println("\nBy layer:")
	for _, l := range []log.Layer{log.LayerDiscovery, log.LayerSAP, log.LayerCommand, log.LayerService} {
		if byLayer[l] > 0 {
			fmt.Printf("  %-10s %d\n", l.String(), byLayer[l])
		}
	}

	fmt.Println("\nBy category:")
	for _, c := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if byCategory[c] > 0 {
			fmt.Printf("  %-10s %d\n", c.String(), byCategory[c])
		}
	}

	if len(devices) > 0 {
		names := make([]string, 0, len(devices))
		for name := range devices {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("\nDevices seen:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
}

func printEvent(event log.Event) {
	ts := event.Timestamp.Format("15:04:05.000")
	prefix := fmt.Sprintf("%s %-3s %-9s %-7s",
		ts, event.Direction.String(), event.Layer.String(), event.Category.String())

	switch {
	case event.Record != nil:
		fmt.Printf("%s %s %s (%s:%d)\n",
			prefix, event.Record.ServiceType, event.Record.Host,
			event.Record.IPv4, event.Record.Port)
	case event.Stream != nil:
		fmt.Printf("%s %s %s:%d %s x%d\n",
			prefix, event.Stream.SessionName, event.Stream.MulticastAddr,
			event.Stream.Port, event.Stream.Codec, event.Stream.Channels)
	case event.Frame != nil:
		data := event.Frame.Data
		if len(data) > 16 {
			data = data[:16]
		}
		fmt.Printf("%s %s frame %d bytes: %s...\n",
			prefix, event.RemoteAddr, event.Frame.Size, hex.EncodeToString(data))
	case event.State != nil:
		if event.State.OldState != "" {
			fmt.Printf("%s %s: %s -> %s %s\n",
				prefix, event.State.Entity, event.State.OldState,
				event.State.NewState, event.State.Reason)
		} else {
			fmt.Printf("%s %s: %s %s\n",
				prefix, event.State.Entity, event.State.NewState, event.State.Reason)
		}
	case event.Error != nil:
		fmt.Printf("%s [%s] %s\n", prefix, event.Error.Context, event.Error.Message)
	default:
		fmt.Println(prefix)
	}
}

func parseLayer(s string) (log.Layer, error) {
	switch s {
	case "discovery":
		return log.LayerDiscovery, nil
	case "sap":
		return log.LayerSAP, nil
	case "command":
		return log.LayerCommand, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("unknown layer: %s (use: discovery, sap, command, service)", s)
	}
}

func parseDirection(s string) (log.Direction, error) {
	switch s {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("unknown direction: %s (use: in, out)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch s {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (use: message, state, error)", s)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
