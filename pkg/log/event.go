package log

import (
	"time"
)

// Event represents a protocol log event captured during a refresh pass.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PassID uniquely identifies the refresh pass (UUID).
	PassID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the peer address (IP or IP:port), if known.
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Device is the display name of the device involved, if known.
	Device string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Record *RecordEvent    `cbor:"8,keyasint,omitempty"`  // mDNS service record
	Stream *StreamEvent    `cbor:"9,keyasint,omitempty"`  // SAP/SDP stream
	Frame  *FrameEvent     `cbor:"10,keyasint,omitempty"` // Raw command frame
	State  *StateEvent     `cbor:"11,keyasint,omitempty"` // Pass/selection state change
	Error  *ErrorEventData `cbor:"12,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerDiscovery is the mDNS browse/resolve layer.
	LayerDiscovery Layer = 0
	// LayerSAP is the SAP/SDP multicast layer.
	LayerSAP Layer = 1
	// LayerCommand is the AES67 command round-trip layer.
	LayerCommand Layer = 2
	// LayerService is the coordinator/service layer.
	LayerService Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerDiscovery:
		return "DISCOVERY"
	case LayerSAP:
		return "SAP"
	case LayerCommand:
		return "COMMAND"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message (record, stream, frame).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RecordEvent captures a resolved mDNS service record.
type RecordEvent struct {
	// ServiceType is the mDNS service type (e.g. "_netaudio-cmc._udp").
	ServiceType string `cbor:"1,keyasint"`

	// Instance is the service instance name.
	Instance string `cbor:"2,keyasint"`

	// Host is the normalized server name.
	Host string `cbor:"3,keyasint,omitempty"`

	// IPv4 is the resolved address.
	IPv4 string `cbor:"4,keyasint,omitempty"`

	// Port is the service port.
	Port int `cbor:"5,keyasint,omitempty"`
}

// StreamEvent captures a parsed SAP/SDP stream announcement.
type StreamEvent struct {
	// SessionName is the SDP session name.
	SessionName string `cbor:"1,keyasint"`

	// OriginIP is the SDP origin address.
	OriginIP string `cbor:"2,keyasint,omitempty"`

	// MulticastAddr is the SDP connection address.
	MulticastAddr string `cbor:"3,keyasint,omitempty"`

	// Port is the RTP port.
	Port int `cbor:"4,keyasint,omitempty"`

	// Codec is the rtpmap encoding (e.g. "L24/48000/2").
	Codec string `cbor:"5,keyasint,omitempty"`

	// Channels is the stream channel count.
	Channels int `cbor:"6,keyasint,omitempty"`
}

// FrameEvent captures a raw command frame at the command layer.
type FrameEvent struct {
	// Size is the frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the frame payload (may be truncated).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates the data was truncated for logging.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// StateEvent captures a state change (pass lifecycle, selection updates).
type StateEvent struct {
	// Entity names what changed (e.g. "pass", "selection", "registry").
	Entity string `cbor:"1,keyasint"`

	// OldState is the previous state, if meaningful.
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason is an optional human-readable reason.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures an error at any layer.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`

	// Status is an optional protocol status code (AES67 acknowledgement).
	Status *int `cbor:"3,keyasint,omitempty"`
}
