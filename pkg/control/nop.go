package control

import (
	"context"
	"errors"

	"github.com/netaudio-project/netaudio-go/pkg/model"
)

// ErrNotSupported is returned by NopClient for every operation.
var ErrNotSupported = errors.New("control: operation not supported")

// NopClient is a Client that performs no device communication. GetControls
// succeeds without touching the device record; every mutating operation
// returns ErrNotSupported. Useful when no control-protocol implementation
// is wired in: discovery, SAP and AES67 subscriptions keep working.
type NopClient struct{}

var _ Client = NopClient{}

// NewNopClient is a ClientFactory returning NopClient.
func NewNopClient(_ *model.Device) Client {
	return NopClient{}
}

func (NopClient) Identify(context.Context) error { return ErrNotSupported }

func (NopClient) GetControls(context.Context, *model.Device) error { return nil }

func (NopClient) SetLatency(context.Context, int) error { return ErrNotSupported }

func (NopClient) SetSampleRate(context.Context, int) error { return ErrNotSupported }

func (NopClient) SetEncoding(context.Context, int) error { return ErrNotSupported }

func (NopClient) SetGainLevel(context.Context, int, int, Direction) error {
	return ErrNotSupported
}

func (NopClient) AddSubscription(context.Context, model.Channel, model.Channel, *model.Device) error {
	return ErrNotSupported
}

func (NopClient) RemoveSubscription(context.Context, model.Channel) error {
	return ErrNotSupported
}
