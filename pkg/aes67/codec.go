package aes67

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// Frame layout constants for the 0x3201 subscribe command. The structure
// was reverse-engineered from Dante Controller captures; every offset is
// within the fixed 112-byte big-endian frame and all unlisted bytes are
// zero.
const (
	// FrameSize is the total subscribe command size.
	FrameSize = 112

	// CommandMagic is the first two bytes of every request frame.
	CommandMagic = 0x2809

	// CommandSubscribe is the subscribe command code at offset 6.
	CommandSubscribe = 0x3201

	// AckMagic is the first two bytes of an acknowledgement.
	AckMagic = 0x2801

	// StatusSuccess is the acknowledgement status for an accepted
	// subscription.
	StatusSuccess = 1

	// minAckSize is the smallest acknowledgement carrying a status field.
	minAckSize = 10

	// ackStatusOffset locates the status field in the acknowledgement.
	ackStatusOffset = 8
)

// encodingBytes maps the codec's encoding name to the command's encoding
// byte. Derived from a single capture of an L24 stream; unseen codecs fall
// back to defaultEncodingByte, which may produce a command no device
// accepts. Extend only with capture evidence.
var encodingBytes = map[string]byte{
	"L24": 0x08,
	"L16": 0x06,
	"L32": 0x0A,
}

const defaultEncodingByte = 0x08

// Codec errors.
var (
	// ErrBadStream indicates the stream descriptor is missing an address
	// required by the command layout.
	ErrBadStream = errors.New("aes67: stream missing origin or multicast address")

	// ErrBadResponse indicates a response failing the structural checks
	// (too short or wrong magic).
	ErrBadResponse = errors.New("aes67: malformed response")
)

// StatusError is returned when a well-formed acknowledgement carries a
// non-success status.
type StatusError struct {
	// Status is the device-reported status value.
	Status uint16
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("aes67: device rejected subscription (status %d)", e.Status)
}

// EncodeSubscribe builds the 112-byte subscribe command routing one
// channel of the given stream into the device's receive channel.
//
// rxChannel is the 1-based receive channel number on the target device and
// flowChannel the 1-based channel index within the stream. seq is echoed
// by the device and only needs to be unique per outstanding request.
func EncodeSubscribe(rxChannel uint16, flowChannel uint8, stream sap.StreamInfo, seq uint16) ([]byte, error) {
	sourceIP := net.ParseIP(stream.OriginIP)
	mcastIP := net.ParseIP(stream.MulticastAddr)
	if sourceIP == nil || mcastIP == nil {
		return nil, ErrBadStream
	}
	source4 := sourceIP.To4()
	mcast4 := mcastIP.To4()
	if source4 == nil || mcast4 == nil {
		return nil, ErrBadStream
	}

	encByte := defaultEncodingByte
	if b, ok := encodingBytes[stream.EncodingName()]; ok {
		encByte = int(b)
	}

	pkt := make([]byte, FrameSize)

	// Header: magic, total length, sequence, command code.
	binary.BigEndian.PutUint16(pkt[0:], CommandMagic)
	binary.BigEndian.PutUint16(pkt[2:], FrameSize)
	binary.BigEndian.PutUint16(pkt[4:], seq)
	binary.BigEndian.PutUint16(pkt[6:], CommandSubscribe)

	// Protocol/version/flag bytes.
	pkt[10] = 0x01
	pkt[11] = 0x01
	pkt[12] = 0x00
	pkt[13] = 0x10

	// Record type, record count, content offset.
	binary.BigEndian.PutUint16(pkt[18:], 0x4202)
	binary.BigEndian.PutUint16(pkt[28:], 0x0001)
	binary.BigEndian.PutUint16(pkt[34:], 0x0068)

	// Sub-record structure tags.
	binary.BigEndian.PutUint16(pkt[44:], 0x0003)
	binary.BigEndian.PutUint16(pkt[46:], 0x0040)
	binary.BigEndian.PutUint16(pkt[52:], 0x0002)
	binary.BigEndian.PutUint16(pkt[54:], 0x0060)

	// Flow source block: tag pair, origin IP, flow identifier.
	binary.BigEndian.PutUint16(pkt[64:], 0x1000)
	binary.BigEndian.PutUint16(pkt[66:], 0x000B)
	copy(pkt[68:72], source4)
	binary.BigEndian.PutUint32(pkt[76:], uint32(stream.SessionID))

	// Channel mapping block.
	binary.BigEndian.PutUint16(pkt[96:], rxChannel)
	binary.BigEndian.PutUint16(pkt[98:], uint16(stream.ChannelCount))
	pkt[102] = flowChannel
	pkt[104] = byte(encByte)
	pkt[105] = byte(stream.ChannelCount)
	binary.BigEndian.PutUint16(pkt[106:], uint16(stream.Port))
	copy(pkt[108:112], mcast4)

	return pkt, nil
}

// DecodeAck interprets the device's acknowledgement to a subscribe
// command. It returns the status value and nil when the device accepted
// the subscription, a StatusError for any other status, and
// ErrBadResponse when the frame fails the structural checks.
func DecodeAck(resp []byte) (uint16, error) {
	if len(resp) < minAckSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrBadResponse, len(resp))
	}
	if binary.BigEndian.Uint16(resp[0:]) != AckMagic {
		return 0, fmt.Errorf("%w: magic %#04x", ErrBadResponse, binary.BigEndian.Uint16(resp[0:]))
	}

	status := binary.BigEndian.Uint16(resp[ackStatusOffset:])
	if status != StatusSuccess {
		return status, &StatusError{Status: status}
	}
	return status, nil
}
