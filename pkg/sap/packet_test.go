package sap

import (
	"errors"
	"testing"
)

const studioSDP = "v=0\r\n" +
	"o=- 40414 0 IN IP4 169.254.10.20\r\n" +
	"s=Studio A\r\n" +
	"c=IN IP4 239.69.85.220/32\r\n" +
	"t=0 0\r\n" +
	"m=audio 5004 RTP/AVP 97\r\n" +
	"i=2 channels: Tx Left, Tx Right\r\n" +
	"a=rtpmap:97 L24/48000/2\r\n"

// buildPacket assembles a SAP datagram around the given SDP payload.
func buildPacket(header byte, authLen byte, originLen int, payload string) []byte {
	pkt := []byte{header, authLen, 0x12, 0x34}
	pkt = append(pkt, make([]byte, originLen+int(authLen)*4)...)
	return append(pkt, []byte(payload)...)
}

func TestParsePacketAnnouncement(t *testing.T) {
	pkt := buildPacket(0x20, 0, 4, studioSDP)

	info, err := ParsePacket(pkt)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}

	if info.SessionName != "Studio A" {
		t.Errorf("SessionName = %q, want %q", info.SessionName, "Studio A")
	}
	if info.SessionID != 40414 {
		t.Errorf("SessionID = %d, want 40414", info.SessionID)
	}
	if info.OriginIP != "169.254.10.20" {
		t.Errorf("OriginIP = %q, want %q", info.OriginIP, "169.254.10.20")
	}
	if info.MulticastAddr != "239.69.85.220" {
		t.Errorf("MulticastAddr = %q, want %q (ttl suffix must be stripped)",
			info.MulticastAddr, "239.69.85.220")
	}
	if info.Port != 5004 {
		t.Errorf("Port = %d, want 5004", info.Port)
	}
	if info.Codec != "L24/48000/2" {
		t.Errorf("Codec = %q, want %q", info.Codec, "L24/48000/2")
	}
	if info.ChannelCount != 2 {
		t.Errorf("ChannelCount = %d, want 2", info.ChannelCount)
	}

	names := info.ChannelNames()
	if len(names) != 2 || names[0] != "Tx Left" || names[1] != "Tx Right" {
		t.Errorf("ChannelNames() = %v, want [Tx Left, Tx Right]", names)
	}
}

func TestParsePacketMIMEPrefix(t *testing.T) {
	payload := "application/sdp\x00" + studioSDP
	pkt := buildPacket(0x20, 0, 4, payload)

	info, err := ParsePacket(pkt)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}
	if info.SessionName != "Studio A" {
		t.Errorf("SessionName = %q, want %q", info.SessionName, "Studio A")
	}
}

func TestParsePacketAuthDataSkipped(t *testing.T) {
	// Two 32-bit words of auth data between origin and payload.
	pkt := buildPacket(0x20, 2, 4, studioSDP)

	info, err := ParsePacket(pkt)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}
	if info.SessionName != "Studio A" {
		t.Errorf("SessionName = %q, want %q", info.SessionName, "Studio A")
	}
}

func TestParsePacketIPv6Origin(t *testing.T) {
	pkt := buildPacket(0x30, 0, 16, studioSDP)

	info, err := ParsePacket(pkt)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}
	if info.SessionName != "Studio A" {
		t.Errorf("SessionName = %q, want %q", info.SessionName, "Studio A")
	}
}

func TestParsePacketRejections(t *testing.T) {
	tests := []struct {
		name    string
		pkt     []byte
		wantErr error
	}{
		{
			name:    "truncated",
			pkt:     []byte{0x20, 0, 0},
			wantErr: ErrTruncated,
		},
		{
			name:    "wrong version",
			pkt:     buildPacket(0x40, 0, 4, studioSDP),
			wantErr: ErrVersion,
		},
		{
			name:    "deletion message",
			pkt:     buildPacket(0x24, 0, 4, studioSDP),
			wantErr: ErrDeletion,
		},
		{
			name:    "no payload",
			pkt:     []byte{0x20, 0x10, 0, 0, 0, 0, 0, 0},
			wantErr: ErrNoPayload,
		},
		{
			name:    "mime without terminator",
			pkt:     buildPacket(0x20, 0, 4, "application/sdp no null here"),
			wantErr: ErrBadMIME,
		},
		{
			name:    "missing session name",
			pkt:     buildPacket(0x20, 0, 4, "v=0\r\nc=IN IP4 239.1.2.3\r\n"),
			wantErr: ErrNoSessionName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePacket(tt.pkt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePacket() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePacketLossyUTF8(t *testing.T) {
	// An invalid byte inside the session name must not fail the packet.
	sdp := "v=0\r\ns=Studio \xff B\r\n"
	pkt := buildPacket(0x20, 0, 4, sdp)

	info, err := ParsePacket(pkt)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}
	if info.SessionName == "" {
		t.Error("SessionName is empty, want lossy-decoded name")
	}
}

func TestParseSDPDefaults(t *testing.T) {
	info, err := parseSDP("v=0\ns=Mono Stream\na=rtpmap:96 L16/48000")
	if err != nil {
		t.Fatalf("parseSDP() error = %v", err)
	}
	if info.ChannelCount != 1 {
		t.Errorf("ChannelCount = %d, want default 1", info.ChannelCount)
	}
	if info.Codec != "L16/48000" {
		t.Errorf("Codec = %q, want %q", info.Codec, "L16/48000")
	}
}
