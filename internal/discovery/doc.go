// Package discovery finds FRITZ!Box routers on the local network via mDNS.
//
// The router announces its web interface as an "_http._tcp" service. The
// scanner browses for that service type until its timeout expires and keeps
// entries whose instance or host name looks like a FRITZ!Box:
//
//	routers, err := discovery.ScanForRouters(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, r := range routers {
//	    fmt.Println(r.BaseURL())
//	}
//
// Requires multicast on the local interface (UDP port 5353).
package discovery
