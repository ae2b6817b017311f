package sap

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/netaudio-project/netaudio-go/pkg/log"
)

// ListenerConfig configures the SAP listener.
type ListenerConfig struct {
	// Group is the multicast group address. Default: 239.255.255.255.
	Group string

	// Port is the SAP port. Default: 9875.
	Port int

	// Window is how long one Listen call receives announcements.
	// Default: 10 seconds.
	Window time.Duration
}

// DefaultListenerConfig returns the default SAP listener configuration.
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		Group:  MulticastGroup,
		Port:   Port,
		Window: ListenWindow,
	}
}

// Listener receives SAP announcements from the multicast group. One Listen
// call is one bounded window of blocking socket reads; callers run it off
// their scheduling context and join the result.
type Listener struct {
	config ListenerConfig
	logger log.Logger
}

// NewListener creates a SAP listener.
// Pass nil to disable protocol logging.
func NewListener(config ListenerConfig, logger log.Logger) *Listener {
	if config.Group == "" {
		config.Group = MulticastGroup
	}
	if config.Port == 0 {
		config.Port = Port
	}
	if config.Window <= 0 {
		config.Window = ListenWindow
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Listener{config: config, logger: logger}
}

// Listen joins the SAP group on the interface owning bindIP and collects
// announcements until the window closes. The window is non-preemptible by
// design: abandoning a read mid-window would lose in-flight announcements,
// so cancellation means letting the window complete and discarding the
// result afterwards.
//
// Malformed packets are discarded; a read stall just ends that read. The
// returned map holds the last announcement seen per session name.
func (l *Listener) Listen(bindIP, passID string) (map[string]StreamInfo, error) {
	group := net.ParseIP(l.config.Group)
	if group == nil {
		return nil, fmt.Errorf("sap: bad group address %q", l.config.Group)
	}

	iface, err := interfaceForIP(bindIP)
	if err != nil {
		return nil, fmt.Errorf("sap: no interface for %s: %w", bindIP, err)
	}

	conn, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", l.config.Port))
	if err != nil {
		return nil, fmt.Errorf("sap: listen: %w", err)
	}
	defer conn.Close()

	p := ipv4.NewPacketConn(conn)
	if err := p.JoinGroup(iface, &net.UDPAddr{IP: group}); err != nil {
		return nil, fmt.Errorf("sap: join %s on %s: %w", l.config.Group, iface.Name, err)
	}
	defer p.LeaveGroup(iface, &net.UDPAddr{IP: group})

	streams := make(map[string]StreamInfo)
	buf := make([]byte, MaxDatagram)
	deadline := time.Now().Add(l.config.Window)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		// Short read deadlines keep the loop responsive to the window
		// boundary without busy-waiting.
		readDeadline := time.Now().Add(min(remaining, time.Second))
		if err := conn.SetReadDeadline(readDeadline); err != nil {
			break
		}

		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			// Transient socket errors end that read, not the window.
			continue
		}

		info, err := ParsePacket(buf[:n])
		if err != nil {
			// Malformed or non-announcement packets are silently dropped.
			continue
		}

		streams[info.SessionName] = *info

		remote := ""
		if addr != nil {
			remote = addr.String()
		}
		l.logger.Log(log.Event{
			Timestamp:  time.Now(),
			PassID:     passID,
			Direction:  log.DirectionIn,
			Layer:      log.LayerSAP,
			Category:   log.CategoryMessage,
			RemoteAddr: remote,
			Stream: &log.StreamEvent{
				SessionName:   info.SessionName,
				OriginIP:      info.OriginIP,
				MulticastAddr: info.MulticastAddr,
				Port:          info.Port,
				Codec:         info.Codec,
				Channels:      info.ChannelCount,
			},
		})
	}

	return streams, nil
}
