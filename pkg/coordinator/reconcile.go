package coordinator

import (
	"strconv"

	"github.com/netaudio-project/netaudio-go/pkg/model"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// reconcile rebuilds AES67 selection entries from device-reported
// subscriptions. Devices report AES67 flows with the stream's origin or
// multicast address in the tx-device field, so each subscription is matched
// against the stream cache by address and translated back into the option
// label the user would have picked. Only absent keys are filled; selections
// made at runtime always win. Returns the number of entries added.
func (c *Coordinator) reconcile(devices map[string]*model.Device) int {
	streams := c.streams.Snapshot()
	if len(streams) == 0 {
		return 0
	}

	byOrigin := make(map[string]sap.StreamInfo, len(streams))
	byMulticast := make(map[string]sap.StreamInfo, len(streams))
	for _, info := range streams {
		if info.OriginIP != "" {
			byOrigin[info.OriginIP] = info
		}
		if info.MulticastAddr != "" {
			byMulticast[info.MulticastAddr] = info
		}
	}

	added := 0
	for name, dev := range devices {
		for _, sub := range dev.Subscriptions {
			stream, ok := byOrigin[sub.TxDeviceName]
			if !ok {
				stream, ok = byMulticast[sub.TxDeviceName]
			}
			if !ok {
				continue
			}

			rx, ok := dev.RxChannelByName(sub.RxChannelName)
			if !ok {
				continue
			}

			key := SelectionKey{Device: name, RxChannel: rx.Number}
			label := AES67Prefix + stream.SessionName + " - " +
				reconcileChannelName(stream, sub.TxChannelName)
			if c.selections.SetIfAbsent(key, label) {
				added++
			}
		}
	}
	return added
}

// reconcileChannelName picks the stream channel a subscription points at.
// The reported tx-channel is matched against the derived names first, then
// interpreted as a 1-based index; when neither works the first channel is
// assumed.
func reconcileChannelName(stream sap.StreamInfo, txChannel string) string {
	names := stream.ChannelNames()
	for _, name := range names {
		if name == txChannel {
			return name
		}
	}
	if idx, err := strconv.Atoi(txChannel); err == nil && idx >= 1 && idx <= len(names) {
		return names[idx-1]
	}
	return names[0]
}
