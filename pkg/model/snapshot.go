package model

// ChannelSnapshot is the published form of one channel.
type ChannelSnapshot struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// SubscriptionSnapshot is the published form of one routing entry.
type SubscriptionSnapshot struct {
	RxChannelName string `json:"rx_channel_name"`
	TxChannelName string `json:"tx_channel_name"`
	TxDeviceName  string `json:"tx_device_name"`
	StatusCode    int    `json:"status_code"`
}

// DeviceSnapshot is the published, immutable form of one device record.
// Consumed by the presentation layer; it carries no live references.
type DeviceSnapshot struct {
	ServerName    string                  `json:"server_name"`
	Name          string                  `json:"name"`
	IPv4          string                  `json:"ipv4,omitempty"`
	MACAddress    string                  `json:"mac_address,omitempty"`
	Manufacturer  string                  `json:"manufacturer,omitempty"`
	Model         string                  `json:"model,omitempty"`
	ModelID       string                  `json:"model_id,omitempty"`
	Software      string                  `json:"software,omitempty"`
	SampleRate    int                     `json:"sample_rate,omitempty"`
	Latency       int64                   `json:"latency,omitempty"`
	RxCount       int                     `json:"rx_count"`
	TxCount       int                     `json:"tx_count"`
	RxChannels    map[int]ChannelSnapshot `json:"rx_channels"`
	TxChannels    map[int]ChannelSnapshot `json:"tx_channels"`
	Subscriptions []SubscriptionSnapshot  `json:"subscriptions"`
}

// Snapshot maps device display name to its published record for one
// successful refresh pass.
type Snapshot map[string]DeviceSnapshot

// BuildSnapshot converts a live Device into its published form.
func BuildSnapshot(d *Device) DeviceSnapshot {
	snap := DeviceSnapshot{
		ServerName:    d.ServerName,
		Name:          d.DisplayName(),
		IPv4:          d.IPv4,
		MACAddress:    d.MACAddress,
		Manufacturer:  d.Manufacturer,
		Model:         d.Model,
		ModelID:       d.ModelID,
		Software:      d.Software,
		SampleRate:    d.SampleRate,
		Latency:       d.LatencyNs,
		RxCount:       len(d.RxChannels),
		TxCount:       len(d.TxChannels),
		RxChannels:    make(map[int]ChannelSnapshot, len(d.RxChannels)),
		TxChannels:    make(map[int]ChannelSnapshot, len(d.TxChannels)),
		Subscriptions: make([]SubscriptionSnapshot, 0, len(d.Subscriptions)),
	}

	for num, ch := range d.RxChannels {
		snap.RxChannels[num] = ChannelSnapshot{Name: ch.Name, Number: ch.Number}
	}
	for num, ch := range d.TxChannels {
		snap.TxChannels[num] = ChannelSnapshot{Name: ch.Name, Number: ch.Number}
	}
	for _, sub := range d.Subscriptions {
		snap.Subscriptions = append(snap.Subscriptions, SubscriptionSnapshot{
			RxChannelName: sub.RxChannelName,
			TxChannelName: sub.TxChannelName,
			TxDeviceName:  sub.TxDeviceName,
			StatusCode:    sub.StatusCode,
		})
	}

	return snap
}
