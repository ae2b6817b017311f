package discovery

import (
	"strings"
)

// ServiceRecord is one resolved mDNS service instance. Records are created
// per resolved announcement, are immutable, and are discarded at the end of
// a discovery pass.
type ServiceRecord struct {
	// ServiceType is the mDNS service type (e.g. "_netaudio-cmc._udp").
	ServiceType string

	// InstanceName is the full service instance name.
	InstanceName string

	// IPv4 is the first resolved IPv4 address.
	IPv4 string

	// Port is the service port.
	Port int

	// ServerName is the normalized host label: resolved host if present,
	// else the instance name's first label (everything before the first
	// dot); trailing "." and ".local" stripped either way.
	ServerName string

	// Properties holds the decoded TXT record key/value pairs. Keys are
	// case-sensitive; values may include surrounding quotes as advertised.
	Properties map[string]string
}

// NormalizeServerName strips a trailing "." and a trailing ".local" from a
// raw mDNS host label.
func NormalizeServerName(name string) string {
	name = strings.TrimSuffix(name, ".")
	name = strings.TrimSuffix(name, ".local")
	return name
}

// serverNameFromInstance derives a host label from a service instance name
// by taking everything before the first dot. Used when resolution did not
// yield a host field.
func serverNameFromInstance(instance string) string {
	if idx := strings.Index(instance, "."); idx >= 0 {
		return instance[:idx]
	}
	return instance
}

// parseTXT decodes "key=value" TXT strings into a property map. Entries
// without "=" become boolean flags with an empty value. Decoding is
// lossy-tolerant: malformed entries are skipped, never fatal.
func parseTXT(txt []string) map[string]string {
	props := make(map[string]string, len(txt))
	for _, s := range txt {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			props[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			props[parts[0]] = ""
		}
	}
	return props
}
