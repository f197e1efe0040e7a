package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

const (
	// ServiceType is the mDNS service type routers advertise their web interface under
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for router discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default HTTP port of the web interface
	DefaultPort = 80
)

// routerPattern matches FRITZ!Box instance and host names
// (e.g., "FRITZ!Box 7590", "fritz-box.local.", "fritz.box")
var routerPattern = regexp.MustCompile(`(?i)^fritz[!\-. ]?box`)

// Scanner handles mDNS router discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForRouters browses the local network until the timeout expires and
// returns every router found, without duplicates
func (s *Scanner) ScanForRouters(ctx context.Context) ([]*Router, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu      sync.Mutex
		routers []*Router
		seen    = make(map[string]bool)
	)
	entries := make(chan *zeroconf.ServiceEntry)

	go func() {
		for entry := range entries {
			router := s.parseServiceEntry(entry)
			if router == nil {
				continue
			}
			mu.Lock()
			if !seen[router.BaseURL()] {
				seen[router.BaseURL()] = true
				routers = append(routers, router)
				logging.Debug("Router discovered", zap.String("name", router.Name), zap.String("url", router.BaseURL()))
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	result := make([]*Router, len(routers))
	copy(result, routers)
	return result, nil
}

// parseServiceEntry converts a zeroconf service entry to a Router.
// Returns nil if the entry is not a FRITZ!Box.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Router {
	if !routerPattern.MatchString(entry.Instance) && !routerPattern.MatchString(entry.HostName) {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	name := entry.Instance
	if name == "" {
		name = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Router{
		Name:         name,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForRouters is a convenience function to scan with a custom timeout
func ScanForRouters(ctx context.Context, timeout time.Duration) ([]*Router, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForRouters(ctx)
}
