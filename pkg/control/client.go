package control

import (
	"context"

	"github.com/netaudio-project/netaudio-go/pkg/model"
)

// Direction selects which side of a channel a gain setting applies to.
type Direction int

const (
	// DirectionInput applies to an input (receive-side analog) channel.
	DirectionInput Direction = iota

	// DirectionOutput applies to an output (transmit-side analog) channel.
	DirectionOutput
)

// Client is the per-device control-channel handle. Implementations speak
// the proprietary Dante control protocol; this module consumes the handle
// opaquely and never implements the protocol itself.
//
// Every method may fail; callers catch and log each failure without
// letting it abort their broader operation.
type Client interface {
	// Identify flashes the device's identify indicator.
	Identify(ctx context.Context) error

	// GetControls queries the device's name, channels and subscriptions
	// and merges them onto the given device record. The query must
	// complete before the merge is observable.
	GetControls(ctx context.Context, dev *model.Device) error

	// SetLatency sets the device latency in milliseconds.
	SetLatency(ctx context.Context, ms int) error

	// SetSampleRate sets the device sample rate in Hz.
	SetSampleRate(ctx context.Context, hz int) error

	// SetEncoding sets the PCM encoding bit depth.
	SetEncoding(ctx context.Context, bits int) error

	// SetGainLevel sets the analog gain level for a channel.
	SetGainLevel(ctx context.Context, channel int, level int, dir Direction) error

	// AddSubscription routes a Dante transmit channel into the device's
	// receive channel.
	AddSubscription(ctx context.Context, rxChannel model.Channel, txChannel model.Channel, txDevice *model.Device) error

	// RemoveSubscription clears the routing for the receive channel.
	RemoveSubscription(ctx context.Context, rxChannel model.Channel) error
}

// ClientFactory creates a control-channel client for a device. The
// coordinator calls it once per device per pass.
type ClientFactory func(dev *model.Device) Client
