package sap

import (
	"bytes"
	"strings"
)

// ParsePacket decodes one SAP datagram into a StreamInfo.
//
// The first header byte carries the version in bits 5-7 (must be 1), the
// origin address type in bit 4 (0 = IPv4, 1 = IPv6) and the message type
// in bit 2 (0 = announcement, 1 = deletion). Byte 1 is the authentication
// data length in 32-bit words. The SDP payload starts after the fixed
// header, the origin address and the auth data, optionally prefixed by a
// null-terminated MIME type.
func ParsePacket(data []byte) (*StreamInfo, error) {
	if len(data) < 8 {
		return nil, ErrTruncated
	}

	header := data[0]
	version := (header >> 5) & 0x07
	addrType := (header >> 4) & 0x01
	msgType := (header >> 2) & 0x01

	if version != 1 {
		return nil, ErrVersion
	}
	if msgType != 0 {
		return nil, ErrDeletion
	}

	authLen := int(data[1])
	originLen := 4
	if addrType == 1 {
		originLen = 16
	}

	payloadStart := headerSize + originLen + authLen*4
	if payloadStart >= len(data) {
		return nil, ErrNoPayload
	}

	payload := data[payloadStart:]

	// Skip the optional null-terminated MIME type preceding the SDP text.
	if !bytes.HasPrefix(payload, []byte("v=")) {
		nullIdx := bytes.IndexByte(payload, 0)
		if nullIdx == -1 {
			return nil, ErrBadMIME
		}
		payload = payload[nullIdx+1:]
	}

	// Lossy UTF-8 decode: invalid sequences become replacement runes
	// rather than failing the packet.
	sdpText := strings.ToValidUTF8(string(payload), "�")

	return parseSDP(sdpText)
}
