package sap

import (
	"net"
)

// FindBindIP determines the local address that shares a route with any of
// the given device addresses. It opens a connected UDP socket towards each
// device in turn and reads back the resulting local endpoint; no packet is
// sent. The first reachable device wins.
//
// Returns an empty string when no device address yields a route.
func FindBindIP(deviceIPs []string) string {
	for _, ip := range deviceIPs {
		if ip == "" {
			continue
		}
		conn, err := net.Dial("udp4", net.JoinHostPort(ip, "1"))
		if err != nil {
			continue
		}
		local, ok := conn.LocalAddr().(*net.UDPAddr)
		conn.Close()
		if ok && local.IP != nil {
			return local.IP.String()
		}
	}
	return ""
}

// interfaceForIP finds the network interface that owns the given local
// address. Needed to join the SAP multicast group on the interface facing
// the Dante network rather than whatever the kernel picks.
func interfaceForIP(bindIP string) (*net.Interface, error) {
	target := net.ParseIP(bindIP)
	if target == nil {
		return nil, ErrNoRoute
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.IP.Equal(target) {
				return &ifaces[i], nil
			}
		}
	}

	return nil, ErrNoRoute
}
