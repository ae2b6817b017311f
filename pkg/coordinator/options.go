package coordinator

import (
	"sort"
	"strings"

	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// AES67Prefix marks option labels that route to a cached AES67 stream
// channel rather than a Dante transmit channel.
const AES67Prefix = "[AES67] "

// SourceOptions returns every routable source as an option label: "None",
// the transmit channels of all known devices as "<device> - <channel>",
// then the cached AES67 stream channels as "[AES67] <stream> - <channel>".
// Dante labels sort lexicographically as whole strings, AES67 labels by
// session name then stream channel order.
func (c *Coordinator) SourceOptions() []string {
	options := []string{SubscriptionNone}
	options = append(options, c.danteSourceOptions()...)
	options = append(options, c.aes67SourceOptions()...)
	return options
}

func (c *Coordinator) danteSourceOptions() []string {
	var options []string
	for name, dev := range c.Snapshot() {
		for _, channel := range dev.TxChannels {
			options = append(options, name+" - "+channel.Name)
		}
	}
	sort.Strings(options)
	return options
}

func (c *Coordinator) aes67SourceOptions() []string {
	var options []string
	for _, sessionName := range c.streams.Names() {
		stream, ok := c.streams.Get(sessionName)
		if !ok {
			continue
		}
		for _, channel := range stream.ChannelNames() {
			options = append(options, AES67Prefix+sessionName+" - "+channel)
		}
	}
	return options
}

// StreamForOption resolves an AES67 option label to its cached stream and
// the 1-based flow channel within it. Returns false when the label names
// no cached stream channel.
//
// Session names may themselves contain " - ", so the label is matched by
// trying every cached session as a prefix rather than splitting blindly.
func (c *Coordinator) StreamForOption(option string) (sap.StreamInfo, int, bool) {
	if !strings.HasPrefix(option, AES67Prefix) {
		return sap.StreamInfo{}, 0, false
	}
	rest := strings.TrimPrefix(option, AES67Prefix)

	for _, sessionName := range c.streams.Names() {
		if !strings.HasPrefix(rest, sessionName+" - ") {
			continue
		}
		stream, ok := c.streams.Get(sessionName)
		if !ok {
			continue
		}
		channel := rest[len(sessionName)+len(" - "):]
		for i, name := range stream.ChannelNames() {
			if name == channel {
				return stream, i + 1, true
			}
		}
	}
	return sap.StreamInfo{}, 0, false
}

// CurrentSource reports the option label currently routed to a device's
// receive channel. A runtime or reconciled AES67 selection wins; otherwise
// the device's own subscription report is rendered as "<device> - <channel>";
// an unrouted channel reports "None".
func (c *Coordinator) CurrentSource(deviceName string, rxChannel int, rxChannelName string) string {
	key := SelectionKey{Device: deviceName, RxChannel: rxChannel}
	if label, ok := c.selections.Get(key); ok {
		return label
	}

	snapshot := c.Snapshot()
	dev, ok := snapshot[deviceName]
	if !ok {
		return SubscriptionNone
	}
	for _, sub := range dev.Subscriptions {
		if sub.RxChannelName != rxChannelName {
			continue
		}
		if sub.TxDeviceName == "" || sub.TxChannelName == "" {
			continue
		}
		return sub.TxDeviceName + " - " + sub.TxChannelName
	}
	return SubscriptionNone
}
