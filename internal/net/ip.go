package net

import (
	"net"

	"PixelBoard/internal/logging"
)

// OutgoingIP returns the address other machines on the LAN can reach the
// viewer on. It asks the routing table first: connecting a UDP socket sends
// nothing but fixes the local address.
func OutgoingIP() string {
	if conn, err := net.Dial("udp4", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if udp, ok := conn.LocalAddr().(*net.UDPAddr); ok && !udp.IP.IsLoopback() {
			return udp.IP.String()
		}
	}
	if ip := interfaceIPv4(); ip != nil {
		return ip.String()
	}
	logging.Logger().Warn("no LAN address found, share link uses loopback", "component", "net")
	return "127.0.0.1"
}

// interfaceIPv4 is the first IPv4 address of an interface that is up and
// not loopback, or nil.
func interfaceIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for _, iface := range ifaces {
		if !usable(iface.Flags) {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := firstIPv4(addrs); ip != nil {
			return ip
		}
	}
	return nil
}

func usable(f net.Flags) bool {
	return f&net.FlagUp != 0 && f&net.FlagLoopback == 0
}

func firstIPv4(addrs []net.Addr) net.IP {
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok {
			if v4 := ipnet.IP.To4(); v4 != nil && !v4.IsLoopback() {
				return v4
			}
		}
	}
	return nil
}

// ShareLink builds the viewer URL for addr (as given to the listener, for
// example ":8888"). A missing or wildcard host is replaced by OutgoingIP.
func ShareLink(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = OutgoingIP()
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
