package coordinator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netaudio-project/netaudio-go/pkg/log"
)

// SetSubscription routes a source option onto a device's receive channel.
// The option is one of the labels produced by SourceOptions:
//
//   - SubscriptionNone clears the routing and drops any AES67 selection.
//   - An AES67Prefix label resolves the cached stream and sends the binary
//     subscribe command; the selection is recorded only on success.
//   - Any other label is split as "<device> - <channel>" and routed through
//     the source device's control channel.
func (c *Coordinator) SetSubscription(ctx context.Context, deviceName string, rxChannel int, option string) error {
	dev, ok := c.registry.Get(deviceName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceName)
	}
	rx, ok := dev.RxChannels[rxChannel]
	if !ok {
		return fmt.Errorf("%w: %s rx %d", ErrChannelNotFound, deviceName, rxChannel)
	}
	key := SelectionKey{Device: deviceName, RxChannel: rxChannel}

	switch {
	case option == SubscriptionNone:
		c.selections.Remove(key)
		client := c.config.ControlFactory(dev)
		if err := client.RemoveSubscription(ctx, rx); err != nil {
			return err
		}

	case strings.HasPrefix(option, AES67Prefix):
		stream, flowChannel, ok := c.StreamForOption(option)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStreamNotFound, option)
		}
		if dev.IPv4 == "" {
			return fmt.Errorf("%w: %s", ErrNoDeviceAddress, deviceName)
		}
		err := c.config.Subscriber.Subscribe(
			dev.IPv4, uint16(rxChannel), uint8(flowChannel), stream, uuid.NewString())
		if err != nil {
			return err
		}
		c.selections.Set(key, option)

	default:
		txDeviceName, txChannelName, found := strings.Cut(option, " - ")
		if !found {
			return fmt.Errorf("%w: malformed option %q", ErrStreamNotFound, option)
		}
		txDev, ok := c.registry.Get(txDeviceName)
		if !ok {
			return fmt.Errorf("%w: %s", ErrDeviceNotFound, txDeviceName)
		}
		tx, ok := txDev.TxChannelByName(txChannelName)
		if !ok {
			return fmt.Errorf("%w: %s tx %q", ErrChannelNotFound, txDeviceName, txChannelName)
		}
		client := c.config.ControlFactory(dev)
		if err := client.AddSubscription(ctx, rx, tx, txDev); err != nil {
			return err
		}
		// A Dante routing supersedes any earlier AES67 pick for the channel.
		c.selections.Remove(key)
	}

	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionOut,
		Layer:     log.LayerService,
		Category:  log.CategoryState,
		Device:    deviceName,
		State: &log.StateEvent{
			Entity:   fmt.Sprintf("rx %d", rxChannel),
			NewState: option,
		},
	})
	return nil
}
