package coordinator

import (
	"context"

	"github.com/netaudio-project/netaudio-go/pkg/discovery"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// Browser runs one bounded-time mDNS discovery window.
// Implemented by discovery.Browser; replaced in tests.
type Browser interface {
	Browse(ctx context.Context, passID string) ([]discovery.ServiceRecord, error)
}

// SAPListener runs one bounded SAP listen window on the interface owning
// bindIP. Implemented by sap.Listener; replaced in tests.
type SAPListener interface {
	Listen(bindIP, passID string) (map[string]sap.StreamInfo, error)
}

// StreamSubscriber issues the AES67 subscribe command round-trip.
// Implemented by aes67.Client; replaced in tests.
type StreamSubscriber interface {
	Subscribe(deviceIP string, rxChannel uint16, flowChannel uint8, stream sap.StreamInfo, passID string) error
}

// BindIPFinder locates the local address sharing a route with any of the
// given device addresses. Defaults to sap.FindBindIP.
type BindIPFinder func(deviceIPs []string) string
