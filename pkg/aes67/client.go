package aes67

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/netaudio-project/netaudio-go/pkg/log"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// CommandPort is the UDP port Dante devices accept the subscribe command on.
const CommandPort = 4440

// DefaultTimeout bounds one command round-trip.
const DefaultTimeout = 2 * time.Second

// ErrTimeout indicates the device sent no response within the deadline.
// Distinct from ErrBadResponse and StatusError so callers can pick a retry
// policy: a timeout may be transient, a rejection is not.
var ErrTimeout = errors.New("aes67: no response within deadline")

// ClientConfig configures the AES67 command client.
type ClientConfig struct {
	// Port is the device command port. Default: 4440.
	Port int

	// Timeout bounds one request/response round-trip. Default: 2 seconds.
	Timeout time.Duration
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Port:    CommandPort,
		Timeout: DefaultTimeout,
	}
}

// Client sends AES67 subscribe commands to Dante devices over unicast UDP.
// Calls block on socket I/O; run them off the cooperative scheduling
// context and join the result.
type Client struct {
	config ClientConfig
	logger log.Logger
}

// NewClient creates an AES67 command client.
// Pass nil to disable protocol logging.
func NewClient(config ClientConfig, logger log.Logger) *Client {
	if config.Port == 0 {
		config.Port = CommandPort
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Client{config: config, logger: logger}
}

// Subscribe routes flowChannel of the given stream into the device's
// rxChannel. It sends the subscribe command and waits for the device's
// acknowledgement.
//
// Failure kinds: ErrTimeout (no response), ErrBadResponse (structural),
// StatusError (device rejected, with the observed status value).
func (c *Client) Subscribe(deviceIP string, rxChannel uint16, flowChannel uint8, stream sap.StreamInfo, passID string) error {
	seq := uint16(rand.Uint32())
	pkt, err := EncodeSubscribe(rxChannel, flowChannel, stream, seq)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(deviceIP, strconv.Itoa(c.config.Port))
	conn, err := net.Dial("udp4", addr)
	if err != nil {
		return fmt.Errorf("aes67: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.config.Timeout)); err != nil {
		return fmt.Errorf("aes67: set deadline: %w", err)
	}

	if _, err := conn.Write(pkt); err != nil {
		return fmt.Errorf("aes67: send: %w", err)
	}
	c.logFrame(passID, addr, log.DirectionOut, pkt)

	resp := make([]byte, 2048)
	n, err := conn.Read(resp)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			c.logError(passID, addr, ErrTimeout, nil)
			return ErrTimeout
		}
		return fmt.Errorf("aes67: receive: %w", err)
	}
	c.logFrame(passID, addr, log.DirectionIn, resp[:n])

	status, err := DecodeAck(resp[:n])
	if err != nil {
		statusVal := int(status)
		c.logError(passID, addr, err, &statusVal)
		return err
	}

	return nil
}

func (c *Client) logFrame(passID, addr string, dir log.Direction, data []byte) {
	c.logger.Log(log.Event{
		Timestamp:  time.Now(),
		PassID:     passID,
		Direction:  dir,
		Layer:      log.LayerCommand,
		Category:   log.CategoryMessage,
		RemoteAddr: addr,
		Frame: &log.FrameEvent{
			Size: len(data),
			Data: data,
		},
	})
}

func (c *Client) logError(passID, addr string, err error, status *int) {
	c.logger.Log(log.Event{
		Timestamp:  time.Now(),
		PassID:     passID,
		Direction:  log.DirectionIn,
		Layer:      log.LayerCommand,
		Category:   log.CategoryError,
		RemoteAddr: addr,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: "subscribe",
			Status:  status,
		},
	})
}
