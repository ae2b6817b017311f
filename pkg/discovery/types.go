package discovery

import (
	"errors"
	"time"
)

// Dante mDNS service types. The set is fixed by the Dante ecosystem.
const (
	// ServiceCMC is the control & monitoring channel service. The device
	// MAC address is advertised only on this service's TXT records.
	ServiceCMC = "_netaudio-cmc._udp"

	// ServiceDBC is the device broadcast channel service.
	ServiceDBC = "_netaudio-dbc._udp"

	// ServiceARC is the audio routing control service.
	ServiceARC = "_netaudio-arc._udp"

	// ServiceCHAN is the audio channel count service.
	ServiceCHAN = "_netaudio-chan._udp"

	// Domain is the mDNS domain.
	Domain = "local"
)

// ServiceTypes is the full set browsed each discovery pass.
var ServiceTypes = []string{ServiceCMC, ServiceDBC, ServiceARC, ServiceCHAN}

// TXT record property keys consumed by the consolidator.
const (
	// PropID carries the MAC address on the CMC service.
	PropID = "id"

	// PropModel carries the model identifier (e.g. "DAI2").
	PropModel = "model"

	// PropRate carries the sample rate in Hz.
	PropRate = "rate"

	// PropLatencyNs carries the device latency in nanoseconds.
	PropLatencyNs = "latency_ns"

	// PropRouterInfo identifies Dante Via hosts. The value is advertised
	// with the quotes included.
	PropRouterInfo = "router_info"

	// RouterInfoVia is the quoted literal advertised by Dante Via.
	RouterInfoVia = `"Dante Via"`
)

// BrowseWindow is how long one discovery pass listens for service
// announcements. Record resolution happens inside the window; there is no
// separate per-record bound.
const BrowseWindow = 5 * time.Second

// Discovery errors.
var (
	// ErrBrowseFailed indicates the multicast browse itself could not be
	// started. This is the only pass-level discovery failure.
	ErrBrowseFailed = errors.New("mdns browse failed")

	// ErrNoAddress indicates a service resolved without any IPv4 address.
	ErrNoAddress = errors.New("service has no address")
)
