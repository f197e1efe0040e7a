package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Router represents a router discovered on the local network
type Router struct {
	// Name is the mDNS service instance name (e.g., "FRITZ!Box 7590")
	Name string

	// Hostname is the mDNS hostname (e.g., "fritz-box.local.")
	Hostname string

	// IP is the address, IPv4 preferred
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the router was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the router
func (r *Router) String() string {
	return fmt.Sprintf("%s (%s) at %s", r.Name, r.Hostname, r.BaseURL())
}

// BaseURL returns the HTTP base URL for the router web interface
func (r *Router) BaseURL() string {
	if r.Port == DefaultPort {
		return "http://" + hostLiteral(r.IP)
	}
	return "http://" + net.JoinHostPort(r.IP, strconv.Itoa(r.Port))
}

func hostLiteral(ip string) string {
	if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() == nil {
		return "[" + ip + "]"
	}
	return ip
}
