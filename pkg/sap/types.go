package sap

import (
	"errors"
	"time"
)

// SAP wire constants.
const (
	// MulticastGroup is the global-scope SAP multicast address.
	MulticastGroup = "239.255.255.255"

	// Port is the well-known SAP port.
	Port = 9875

	// ListenWindow is how long one pass listens for announcements.
	// SAP announcements are periodic and sparse; a single window never
	// sees every active stream.
	ListenWindow = 10 * time.Second

	// MaxDatagram is the receive buffer size for SAP datagrams.
	MaxDatagram = 4096

	// headerSize is the fixed SAP header size before the origin address.
	headerSize = 4
)

// Parse errors. Packets failing these checks are discarded by the
// listener; the error identifies why in logs and tests.
var (
	// ErrTruncated indicates the packet is too short to carry a header.
	ErrTruncated = errors.New("sap: packet truncated")

	// ErrVersion indicates an unsupported SAP version.
	ErrVersion = errors.New("sap: unsupported version")

	// ErrDeletion indicates a session deletion message, which this
	// module ignores (stream cache entries are never expired by the
	// network).
	ErrDeletion = errors.New("sap: deletion message")

	// ErrNoPayload indicates the computed payload offset is past the end
	// of the packet.
	ErrNoPayload = errors.New("sap: no payload")

	// ErrBadMIME indicates a non-SDP payload with no null terminator on
	// its MIME-type prefix.
	ErrBadMIME = errors.New("sap: unterminated mime type")

	// ErrNoSessionName indicates SDP text without the required s= line.
	ErrNoSessionName = errors.New("sap: sdp has no session name")

	// ErrNoRoute indicates no local interface shares a route with any
	// discovered device, so the multicast group cannot be joined.
	ErrNoRoute = errors.New("sap: no route to any device")
)
