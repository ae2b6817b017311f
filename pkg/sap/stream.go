package sap

import (
	"fmt"
	"strconv"
	"strings"
)

// StreamInfo describes one AES67 session announced via SAP. Immutable once
// parsed.
type StreamInfo struct {
	// SessionName is the SDP s= line content. Unique key in the cache.
	SessionName string

	// SessionID is the numeric session id from the SDP o= line. Zero when
	// the origin line was absent or malformed.
	SessionID uint64

	// OriginIP is the unicast address from the o= line.
	OriginIP string

	// MulticastAddr is the connection address from the c= line, with any
	// /ttl suffix stripped.
	MulticastAddr string

	// Port is the RTP port from the m= line.
	Port int

	// Codec is the rtpmap encoding, e.g. "L24/48000/2".
	Codec string

	// ChannelCount is parsed from the codec's third component; defaults
	// to 1.
	ChannelCount int

	// ChannelInfo is the raw SDP i= line, when present. Used to derive
	// per-channel names.
	ChannelInfo string
}

// ChannelNames derives the ordered per-channel names for the stream.
//
// When the i= line has the form "<anything>: Name, Name, ..." and the name
// count matches ChannelCount, those names are used. Otherwise generic names
// are generated: "Mono" for one channel, "Left"/"Right" for two, "ChN"
// beyond that. The derivation is pure: calling it twice yields identical
// lists.
func (s *StreamInfo) ChannelNames() []string {
	count := s.ChannelCount
	if count < 1 {
		count = 1
	}

	if idx := strings.Index(s.ChannelInfo, ":"); idx >= 0 {
		var names []string
		for _, part := range strings.Split(s.ChannelInfo[idx+1:], ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		if len(names) == count {
			return names
		}
	}

	switch count {
	case 1:
		return []string{"Mono"}
	case 2:
		return []string{"Left", "Right"}
	}

	names := make([]string, count)
	for i := range names {
		names[i] = "Ch" + strconv.Itoa(i+1)
	}
	return names
}

// EncodingName returns the codec's encoding component, e.g. "L24" from
// "L24/48000/2". Empty codec yields an empty string.
func (s *StreamInfo) EncodingName() string {
	if s.Codec == "" {
		return ""
	}
	return strings.SplitN(s.Codec, "/", 2)[0]
}

// String renders a short human-readable description.
func (s *StreamInfo) String() string {
	return fmt.Sprintf("%s (%s:%d %s x%d)",
		s.SessionName, s.MulticastAddr, s.Port, s.Codec, s.ChannelCount)
}
