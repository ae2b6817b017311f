package model

// Channel is one audio channel exposed by a device.
type Channel struct {
	// Number is the 1-based channel number.
	Number int

	// Name is the channel label reported by the device.
	Name string
}

// Subscription is a device-reported routing entry. It is read-only state
// sourced from the device's own control-channel query; this module never
// creates or mutates subscriptions, only interprets them.
type Subscription struct {
	// RxChannelName is the receive channel name on the subscribing device.
	RxChannelName string

	// TxChannelName is the source channel name, or a numeric flow index for
	// AES67 flows.
	TxChannelName string

	// TxDeviceName is the source device. For AES67 flows devices report the
	// stream's origin IP or multicast IP here instead of a device name.
	TxDeviceName string

	// StatusCode is the device-reported subscription status.
	StatusCode int
}

// Device is one physical network endpoint, keyed by its normalized server
// name. Identity fields are populated by last-write-wins merge across all
// of the host's service records within one discovery pass; conflicting
// properties across services resolve to whichever record was merged last.
type Device struct {
	// ServerName is the normalized mDNS host label (trailing "." and
	// ".local" stripped).
	ServerName string

	// Name is the display name. Defaults to ServerName until the control
	// channel reports a friendly name.
	Name string

	// IPv4 is the first resolved address of any of the host's services.
	IPv4 string

	// MACAddress comes from the control-management-channel service's "id"
	// property.
	MACAddress string

	// ModelID comes from the "model" property (e.g. "DAI2").
	ModelID string

	// Model is the human-readable model name, if the control channel
	// reports one.
	Model string

	// Manufacturer is the reported manufacturer, if any.
	Manufacturer string

	// Software is set to "Dante Via" when the host advertises a Via router.
	Software string

	// SampleRate is the device sample rate in Hz, from the "rate" property.
	SampleRate int

	// LatencyNs is the device latency in nanoseconds, from "latency_ns".
	LatencyNs int64

	// Services maps service instance name to its resolved record data.
	Services map[string]ServiceData

	// RxChannels maps channel number to receive channel.
	RxChannels map[int]Channel

	// TxChannels maps channel number to transmit channel.
	TxChannels map[int]Channel

	// Subscriptions are the device-reported routing entries.
	Subscriptions []Subscription
}

// ServiceData is the per-service payload retained on a Device.
type ServiceData struct {
	// Type is the mDNS service type.
	Type string

	// IPv4 is the resolved address for this service instance.
	IPv4 string

	// Port is the service port.
	Port int

	// Properties holds the decoded TXT record key/value pairs.
	Properties map[string]string
}

// NewDevice creates a Device for the given normalized server name.
func NewDevice(serverName string) *Device {
	return &Device{
		ServerName: serverName,
		Name:       serverName,
		Services:   make(map[string]ServiceData),
		RxChannels: make(map[int]Channel),
		TxChannels: make(map[int]Channel),
	}
}

// DisplayName returns the device's display name, falling back to the
// server name.
func (d *Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ServerName
}

// RxChannelByName returns the receive channel with the given name.
func (d *Device) RxChannelByName(name string) (Channel, bool) {
	for _, ch := range d.RxChannels {
		if ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}

// TxChannelByName returns the transmit channel with the given name.
func (d *Device) TxChannelByName(name string) (Channel, bool) {
	for _, ch := range d.TxChannels {
		if ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}
