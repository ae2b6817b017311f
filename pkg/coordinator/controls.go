package coordinator

import (
	"context"
	"fmt"

	"github.com/netaudio-project/netaudio-go/pkg/control"
	"github.com/netaudio-project/netaudio-go/pkg/model"
)

// Identify flashes the named device's identify indicator.
func (c *Coordinator) Identify(ctx context.Context, deviceName string) error {
	dev, err := c.lookupDevice(deviceName)
	if err != nil {
		return err
	}
	return c.config.ControlFactory(dev).Identify(ctx)
}

// SetSampleRate sets the named device's sample rate in Hz.
func (c *Coordinator) SetSampleRate(ctx context.Context, deviceName string, hz int) error {
	dev, err := c.lookupDevice(deviceName)
	if err != nil {
		return err
	}
	return c.config.ControlFactory(dev).SetSampleRate(ctx, hz)
}

// SetLatency sets the named device's latency in milliseconds.
func (c *Coordinator) SetLatency(ctx context.Context, deviceName string, ms int) error {
	dev, err := c.lookupDevice(deviceName)
	if err != nil {
		return err
	}
	return c.config.ControlFactory(dev).SetLatency(ctx, ms)
}

// SetEncoding sets the named device's PCM encoding bit depth.
func (c *Coordinator) SetEncoding(ctx context.Context, deviceName string, bits int) error {
	dev, err := c.lookupDevice(deviceName)
	if err != nil {
		return err
	}
	return c.config.ControlFactory(dev).SetEncoding(ctx, bits)
}

// SetGainLevel sets the analog gain level for a channel on the named device.
func (c *Coordinator) SetGainLevel(ctx context.Context, deviceName string, channel, level int, dir control.Direction) error {
	dev, err := c.lookupDevice(deviceName)
	if err != nil {
		return err
	}
	return c.config.ControlFactory(dev).SetGainLevel(ctx, channel, level, dir)
}

func (c *Coordinator) lookupDevice(deviceName string) (*model.Device, error) {
	dev, ok := c.registry.Get(deviceName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceName)
	}
	return dev, nil
}
