package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/netaudio-project/netaudio-go/pkg/control"
	"github.com/netaudio-project/netaudio-go/pkg/coordinator"
)

// interactiveMonitor handles interactive mode for netaudio-monitor.
type interactiveMonitor struct {
	coord *coordinator.Coordinator
	rl    *readline.Instance
}

func newInteractive(coord *coordinator.Coordinator) (*interactiveMonitor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "netaudio> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &interactiveMonitor{coord: coord, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (m *interactiveMonitor) Stdout() io.Writer {
	return m.rl.Stdout()
}

// Run starts the interactive command loop.
func (m *interactiveMonitor) Run(ctx context.Context, cancel context.CancelFunc) {
	defer m.rl.Close()

	m.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := m.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			m.printHelp()

		case "devices", "list", "ls":
			m.cmdDevices()

		case "device", "d":
			m.cmdDevice(args)

		case "streams":
			m.cmdStreams()

		case "sources":
			m.cmdSources()

		case "subscribe", "sub":
			m.cmdSubscribe(ctx, args)

		case "unsubscribe", "unsub":
			m.cmdUnsubscribe(ctx, args)

		case "rate":
			m.cmdRate(ctx, args)

		case "refresh":
			m.cmdRefresh(ctx)

		case "status":
			m.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(m.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (m *interactiveMonitor) printHelp() {
	fmt.Fprintln(m.rl.Stdout(), `
Netaudio Monitor Commands:
  Discovery:
    devices                           - List discovered devices
    device <name>                     - Show device details
    streams                           - List cached AES67 streams
    refresh                           - Run a refresh pass now

  Routing:
    sources                           - List routable sources
    subscribe <device> <rx#> <source> - Route a source to a channel
    unsubscribe <device> <rx#>        - Clear a channel's routing

  Control:
    rate <device> <hz>                - Set device sample rate

  General:
    status                            - Show monitor status
    help                              - Show this help
    quit                              - Exit the monitor`)
}

// cmdDevices handles the devices command.
func (m *interactiveMonitor) cmdDevices() {
	snapshot := m.coord.Snapshot()
	if len(snapshot) == 0 {
		fmt.Fprintln(m.rl.Stdout(), "No devices discovered")
		return
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(m.rl.Stdout(), "\nDiscovered Devices (%d):\n", len(snapshot))
	fmt.Fprintln(m.rl.Stdout(), "-------------------------------------------")
	for _, name := range names {
		dev := snapshot[name]
		fmt.Fprintf(m.rl.Stdout(), "  %s\n", name)
		fmt.Fprintf(m.rl.Stdout(), "      Address: %s\n", dev.IPv4)
		if dev.ModelID != "" {
			fmt.Fprintf(m.rl.Stdout(), "      Model: %s\n", dev.ModelID)
		}
		fmt.Fprintf(m.rl.Stdout(), "      Channels: %d rx / %d tx\n", dev.RxCount, dev.TxCount)
		fmt.Fprintln(m.rl.Stdout())
	}
}

// cmdDevice handles the device command.
func (m *interactiveMonitor) cmdDevice(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(m.rl.Stdout(), "Usage: device <name>")
		fmt.Fprintln(m.rl.Stdout(), "  Use 'devices' to list device names")
		return
	}

	name := m.resolveDeviceName(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintf(m.rl.Stdout(), "Device not found: %s\n", strings.Join(args, " "))
		return
	}
	dev := m.coord.Snapshot()[name]

	fmt.Fprintf(m.rl.Stdout(), "\nDevice: %s\n", name)
	fmt.Fprintln(m.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(m.rl.Stdout(), "  Server Name:  %s\n", dev.ServerName)
	fmt.Fprintf(m.rl.Stdout(), "  Address:      %s\n", dev.IPv4)
	if dev.MACAddress != "" {
		fmt.Fprintf(m.rl.Stdout(), "  MAC:          %s\n", dev.MACAddress)
	}
	if dev.ModelID != "" {
		fmt.Fprintf(m.rl.Stdout(), "  Model:        %s\n", dev.ModelID)
	}
	if dev.Software != "" {
		fmt.Fprintf(m.rl.Stdout(), "  Software:     %s\n", dev.Software)
	}
	if dev.SampleRate > 0 {
		label := control.SampleRateLabels[dev.SampleRate]
		if label == "" {
			label = fmt.Sprintf("%d Hz", dev.SampleRate)
		}
		fmt.Fprintf(m.rl.Stdout(), "  Sample Rate:  %s\n", label)
	}
	if dev.Latency > 0 {
		fmt.Fprintf(m.rl.Stdout(), "  Latency:      %.1f ms\n", float64(dev.Latency)/1_000_000)
	}

	if len(dev.RxChannels) > 0 {
		fmt.Fprintln(m.rl.Stdout(), "\n  Receive Channels:")
		numbers := make([]int, 0, len(dev.RxChannels))
		for num := range dev.RxChannels {
			numbers = append(numbers, num)
		}
		sort.Ints(numbers)
		for _, num := range numbers {
			ch := dev.RxChannels[num]
			source := m.coord.CurrentSource(name, num, ch.Name)
			fmt.Fprintf(m.rl.Stdout(), "    %2d  %-24s <- %s\n", num, ch.Name, source)
		}
	}

	if len(dev.TxChannels) > 0 {
		fmt.Fprintln(m.rl.Stdout(), "\n  Transmit Channels:")
		numbers := make([]int, 0, len(dev.TxChannels))
		for num := range dev.TxChannels {
			numbers = append(numbers, num)
		}
		sort.Ints(numbers)
		for _, num := range numbers {
			fmt.Fprintf(m.rl.Stdout(), "    %2d  %s\n", num, dev.TxChannels[num].Name)
		}
	}
	fmt.Fprintln(m.rl.Stdout())
}

// cmdStreams handles the streams command.
func (m *interactiveMonitor) cmdStreams() {
	cache := m.coord.Streams()
	names := cache.Names()
	if len(names) == 0 {
		fmt.Fprintln(m.rl.Stdout(), "No AES67 streams cached")
		return
	}

	fmt.Fprintf(m.rl.Stdout(), "\nCached AES67 Streams (%d):\n", len(names))
	fmt.Fprintln(m.rl.Stdout(), "-------------------------------------------")
	for _, name := range names {
		stream, ok := cache.Get(name)
		if !ok {
			continue
		}
		fmt.Fprintf(m.rl.Stdout(), "  %s\n", stream.String())
		fmt.Fprintf(m.rl.Stdout(), "      Origin: %s, Channels: %s\n",
			stream.OriginIP, strings.Join(stream.ChannelNames(), ", "))
	}
	fmt.Fprintln(m.rl.Stdout())
}

// cmdSources handles the sources command.
func (m *interactiveMonitor) cmdSources() {
	options := m.coord.SourceOptions()
	fmt.Fprintf(m.rl.Stdout(), "\nRoutable Sources (%d):\n", len(options))
	for _, option := range options {
		fmt.Fprintf(m.rl.Stdout(), "  %s\n", option)
	}
	fmt.Fprintln(m.rl.Stdout())
}

// cmdSubscribe handles the subscribe command.
func (m *interactiveMonitor) cmdSubscribe(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(m.rl.Stdout(), "Usage: subscribe <device> <rx#> <source>")
		fmt.Fprintln(m.rl.Stdout(), "  Use 'sources' to list source options")
		return
	}

	name := m.resolveDeviceName(args[0])
	if name == "" {
		fmt.Fprintf(m.rl.Stdout(), "Device not found: %s\n", args[0])
		return
	}

	rxChannel, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Invalid channel number: %v\n", err)
		return
	}

	option := strings.Join(args[2:], " ")
	fmt.Fprintf(m.rl.Stdout(), "Routing %q to %s rx %d...\n", option, name, rxChannel)

	if err := m.coord.SetSubscription(ctx, name, rxChannel, option); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Failed to subscribe: %v\n", err)
		return
	}
	fmt.Fprintln(m.rl.Stdout(), "OK")
}

// cmdUnsubscribe handles the unsubscribe command.
func (m *interactiveMonitor) cmdUnsubscribe(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(m.rl.Stdout(), "Usage: unsubscribe <device> <rx#>")
		return
	}

	name := m.resolveDeviceName(args[0])
	if name == "" {
		fmt.Fprintf(m.rl.Stdout(), "Device not found: %s\n", args[0])
		return
	}

	rxChannel, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Invalid channel number: %v\n", err)
		return
	}

	if err := m.coord.SetSubscription(ctx, name, rxChannel, coordinator.SubscriptionNone); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Failed to unsubscribe: %v\n", err)
		return
	}
	fmt.Fprintln(m.rl.Stdout(), "OK")
}

// cmdRate handles the rate command.
func (m *interactiveMonitor) cmdRate(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(m.rl.Stdout(), "Usage: rate <device> <hz>")
		fmt.Fprintf(m.rl.Stdout(), "  Rates: %v\n", control.SampleRates)
		return
	}

	name := m.resolveDeviceName(args[0])
	if name == "" {
		fmt.Fprintf(m.rl.Stdout(), "Device not found: %s\n", args[0])
		return
	}

	hz, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Invalid rate: %v\n", err)
		return
	}
	if _, ok := control.SampleRateLabels[hz]; !ok {
		fmt.Fprintf(m.rl.Stdout(), "Unsupported rate %d (use one of %v)\n", hz, control.SampleRates)
		return
	}

	if err := m.coord.SetSampleRate(ctx, name, hz); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Failed to set rate: %v\n", err)
		return
	}
	fmt.Fprintln(m.rl.Stdout(), "OK")
}

// cmdRefresh handles the refresh command.
func (m *interactiveMonitor) cmdRefresh(ctx context.Context) {
	fmt.Fprintln(m.rl.Stdout(), "Running refresh pass...")
	start := time.Now()
	snapshot, err := m.coord.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Refresh failed: %v\n", err)
		return
	}
	fmt.Fprintf(m.rl.Stdout(), "Done in %s: %d device(s), %d stream(s)\n",
		time.Since(start).Round(time.Millisecond), len(snapshot), m.coord.Streams().Len())
}

// cmdStatus handles the status command.
func (m *interactiveMonitor) cmdStatus() {
	snapshot := m.coord.Snapshot()

	fmt.Fprintln(m.rl.Stdout(), "\nMonitor Status")
	fmt.Fprintln(m.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(m.rl.Stdout(), "  Devices:       %d\n", len(snapshot))
	fmt.Fprintf(m.rl.Stdout(), "  AES67 Streams: %d\n", m.coord.Streams().Len())
	fmt.Fprintf(m.rl.Stdout(), "  Selections:    %d\n", m.coord.Selections().Len())

	registry := m.coord.Registry()
	missed := 0
	for _, name := range registry.Names() {
		if registry.MissCount(name) > 0 {
			missed++
		}
	}
	if missed > 0 {
		fmt.Fprintf(m.rl.Stdout(), "  Missing:       %d device(s) not seen last pass\n", missed)
	}
	fmt.Fprintln(m.rl.Stdout())
}

// resolveDeviceName resolves a possibly partial device name against the
// registry. Exact match wins over substring match.
func (m *interactiveMonitor) resolveDeviceName(partial string) string {
	registry := m.coord.Registry()
	if _, ok := registry.Get(partial); ok {
		return partial
	}
	for _, name := range registry.Names() {
		if strings.Contains(strings.ToLower(name), strings.ToLower(partial)) {
			return name
		}
	}
	return ""
}
