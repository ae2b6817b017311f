package sap

import (
	"strconv"
	"strings"
)

// parseSDP extracts an AES67 stream descriptor from SDP text.
//
// The parser is line-oriented, order-independent and tolerant of unknown
// or malformed lines: a bad individual line is skipped, never fatal. Only
// the absence of an s= line rejects the whole message.
func parseSDP(sdp string) (*StreamInfo, error) {
	info := &StreamInfo{ChannelCount: 1}
	haveName := false

	for _, line := range strings.Split(strings.TrimSpace(sdp), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "s="):
			info.SessionName = line[2:]
			haveName = true

		case strings.HasPrefix(line, "o="):
			// o=nax 821074694 127 IN IP4 10.11.7.71
			parts := strings.Fields(line[2:])
			if len(parts) >= 6 {
				info.OriginIP = parts[5]
				if id, err := strconv.ParseUint(parts[1], 10, 64); err == nil {
					info.SessionID = id
				}
			}

		case strings.HasPrefix(line, "c="):
			// c=IN IP4 239.69.85.220/32
			parts := strings.Fields(line[2:])
			if len(parts) >= 3 {
				info.MulticastAddr = strings.SplitN(parts[2], "/", 2)[0]
			}

		case strings.HasPrefix(line, "m="):
			// m=audio 5004 RTP/AVP 97
			parts := strings.Fields(line[2:])
			if len(parts) >= 2 {
				if port, err := strconv.Atoi(parts[1]); err == nil {
					info.Port = port
				}
			}

		case strings.HasPrefix(line, "a=rtpmap:"):
			// a=rtpmap:97 L24/48000/2
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				info.Codec = parts[1]
				codecParts := strings.Split(info.Codec, "/")
				if len(codecParts) >= 3 {
					if ch, err := strconv.Atoi(codecParts[2]); err == nil {
						info.ChannelCount = ch
					}
				}
			}

		case strings.HasPrefix(line, "i="):
			info.ChannelInfo = line[2:]
		}
	}

	if !haveName {
		return nil, ErrNoSessionName
	}

	return info, nil
}
