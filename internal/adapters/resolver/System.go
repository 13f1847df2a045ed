package resolver

import (
	"context"
	"errors"
	"net"
)

// System resolver. Goes through the platform's name service (hosts file, resolv.conf, nsswitch),
// which is what getaddrinfo would consult.
type System struct {
	res netLookuper
}

// The part of net.Resolver the system backend needs.
type netLookuper interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}

func newSystem(preferGo bool) *System {
	if !preferGo {
		return &System{res: net.DefaultResolver}
	}
	return &System{res: &net.Resolver{PreferGo: true}}
}

func (s *System) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if infos, ok := literal(host); ok {
		return infos, nil
	}
	addrs, err := s.res.LookupIPAddr(ctx, host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, notFound(ctx, host, err)
		}
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, notFound(ctx, host, nil)
	}
	// A failed CNAME lookup still leaves us with the addresses, the host is then its own canonical name.
	canonical := host
	if cname, err := s.res.LookupCNAME(ctx, host); err == nil && cname != "" {
		canonical = trimDot(cname)
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}
	return newAddrInfos(canonical, ips), nil
}
