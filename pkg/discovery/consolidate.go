package discovery

import (
	"strconv"
	"strings"

	"github.com/netaudio-project/netaudio-go/pkg/model"
)

// Consolidate groups service records by normalized host and derives one
// Device per host from the union of its services' properties.
//
// Identity fields merge last-write-wins in record order. When two services
// for the same host disagree on a property (e.g. "model" or "rate"), the
// record processed last wins; the resolver does not guarantee a
// deterministic order across services, so conflicting properties resolve
// non-deterministically. This mirrors the observed device behavior and is
// intentionally left as-is rather than given an invented precedence.
//
// A parse failure on a single record (bad integer, missing key) is
// swallowed per-record and never fails the group. Consolidate performs no
// I/O.
func Consolidate(records []ServiceRecord) map[string]*model.Device {
	devices := make(map[string]*model.Device)

	for _, rec := range records {
		dev, ok := devices[rec.ServerName]
		if !ok {
			dev = model.NewDevice(rec.ServerName)
			devices[rec.ServerName] = dev
		}

		dev.Services[rec.InstanceName] = model.ServiceData{
			Type:       rec.ServiceType,
			IPv4:       rec.IPv4,
			Port:       rec.Port,
			Properties: rec.Properties,
		}

		mergeRecord(dev, rec)
	}

	return devices
}

// mergeRecord applies one record's properties onto the device.
func mergeRecord(dev *model.Device, rec ServiceRecord) {
	// First non-empty address wins; all of a host's services resolve to
	// the same endpoint anyway.
	if dev.IPv4 == "" && rec.IPv4 != "" {
		dev.IPv4 = rec.IPv4
	}

	// The MAC address is only trusted from the control-management channel.
	if id, ok := rec.Properties[PropID]; ok && strings.Contains(rec.ServiceType, ServiceCMC) {
		dev.MACAddress = id
	}

	if m, ok := rec.Properties[PropModel]; ok {
		dev.ModelID = m
	}

	if rate, ok := rec.Properties[PropRate]; ok {
		if v, err := strconv.Atoi(rate); err == nil {
			dev.SampleRate = v
		}
	}

	if lat, ok := rec.Properties[PropLatencyNs]; ok {
		if v, err := strconv.ParseInt(lat, 10, 64); err == nil {
			dev.LatencyNs = v
		}
	}

	if ri, ok := rec.Properties[PropRouterInfo]; ok && ri == RouterInfoVia {
		dev.Software = "Dante Via"
	}
}
