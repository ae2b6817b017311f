// Package mock provides in-memory fakes for the coordinator's collaborator
// interfaces: the control client, the mDNS browser, the SAP listener and the
// AES67 subscriber. Each fake records the calls it receives and delegates to
// optional handlers for scripted behavior.
package mock

import (
	"context"
	"sync"

	"github.com/netaudio-project/netaudio-go/pkg/control"
	"github.com/netaudio-project/netaudio-go/pkg/model"
)

// SubscriptionCall records one AddSubscription invocation.
type SubscriptionCall struct {
	RxChannel    model.Channel
	TxChannel    model.Channel
	TxDeviceName string
}

// ControlHandlers holds callbacks for control client operations. Nil
// handlers succeed without side effects.
type ControlHandlers struct {
	// OnGetControls populates the device record during a refresh pass.
	OnGetControls func(dev *model.Device) error

	// OnAddSubscription is called for Dante channel routing.
	OnAddSubscription func(rx, tx model.Channel, txDevice *model.Device) error

	// OnRemoveSubscription is called when a routing is cleared.
	OnRemoveSubscription func(rx model.Channel) error
}

// ControlClient is a scripted control.Client for tests.
type ControlClient struct {
	Handlers ControlHandlers

	mu            sync.Mutex
	identified    int
	added         []SubscriptionCall
	removed       []model.Channel
	sampleRates   []int
	encodings     []int
	latencies     []int
	controlsCalls int
}

var _ control.Client = (*ControlClient)(nil)

// NewControlClient creates a mock control client with no scripted behavior.
func NewControlClient() *ControlClient {
	return &ControlClient{}
}

// Factory returns a control.ClientFactory handing out this client for
// every device.
func (c *ControlClient) Factory() control.ClientFactory {
	return func(*model.Device) control.Client { return c }
}

func (c *ControlClient) Identify(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identified++
	return nil
}

func (c *ControlClient) GetControls(_ context.Context, dev *model.Device) error {
	c.mu.Lock()
	c.controlsCalls++
	c.mu.Unlock()
	if c.Handlers.OnGetControls != nil {
		return c.Handlers.OnGetControls(dev)
	}
	return nil
}

func (c *ControlClient) SetLatency(_ context.Context, ms int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latencies = append(c.latencies, ms)
	return nil
}

func (c *ControlClient) SetSampleRate(_ context.Context, hz int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sampleRates = append(c.sampleRates, hz)
	return nil
}

func (c *ControlClient) SetEncoding(_ context.Context, bits int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encodings = append(c.encodings, bits)
	return nil
}

func (c *ControlClient) SetGainLevel(context.Context, int, int, control.Direction) error {
	return nil
}

func (c *ControlClient) AddSubscription(_ context.Context, rx, tx model.Channel, txDevice *model.Device) error {
	c.mu.Lock()
	c.added = append(c.added, SubscriptionCall{
		RxChannel:    rx,
		TxChannel:    tx,
		TxDeviceName: txDevice.DisplayName(),
	})
	c.mu.Unlock()
	if c.Handlers.OnAddSubscription != nil {
		return c.Handlers.OnAddSubscription(rx, tx, txDevice)
	}
	return nil
}

func (c *ControlClient) RemoveSubscription(_ context.Context, rx model.Channel) error {
	c.mu.Lock()
	c.removed = append(c.removed, rx)
	c.mu.Unlock()
	if c.Handlers.OnRemoveSubscription != nil {
		return c.Handlers.OnRemoveSubscription(rx)
	}
	return nil
}

// Added returns the recorded AddSubscription calls.
func (c *ControlClient) Added() []SubscriptionCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SubscriptionCall(nil), c.added...)
}

// Removed returns the recorded RemoveSubscription calls.
func (c *ControlClient) Removed() []model.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Channel(nil), c.removed...)
}

// ControlsCalls returns how many times GetControls ran.
func (c *ControlClient) ControlsCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlsCalls
}
