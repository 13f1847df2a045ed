package resolver

import (
	"context"
	"errors"
	"net"
)

// Static resolver. Answers from in-memory tables only, anything else is not found.
// Used for the overrides from the config file.
type Static struct {
	hosts   map[string][]net.IP
	aliases map[string]string
}

func NewStatic(hosts map[string]string, aliases map[string]string) *Static {
	s := &Static{hosts: make(map[string][]net.IP), aliases: make(map[string]string)}
	for h, ip := range hosts {
		s.AddHost(h, net.ParseIP(ip))
	}
	for h, target := range aliases {
		s.AddAlias(h, target)
	}
	return s
}

// AddHost appends an address for host. Invalid addresses are ignored.
func (s *Static) AddHost(host string, ip net.IP) {
	if ip == nil {
		return
	}
	host = trimDot(host)
	s.hosts[host] = append(s.hosts[host], ip)
}

func (s *Static) AddAlias(host string, target string) {
	s.aliases[trimDot(host)] = trimDot(target)
}

// Has reports whether host has an entry of either kind.
func (s *Static) Has(host string) bool {
	_, okh := s.hosts[trimDot(host)]
	_, oka := s.aliases[trimDot(host)]
	return okh || oka
}

func (s *Static) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if infos, ok := literal(host); ok {
		return infos, nil
	}
	canonical, err := followAliases(trimDot(host), s.aliases)
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	ips := s.hosts[canonical]
	if len(ips) == 0 {
		return nil, notFound(ctx, host, nil)
	}
	return newAddrInfos(canonical, ips), nil
}

// Overlay answers from static first and hands everything it doesn't know to next.
type Overlay struct {
	static *Static
	next   Resolver
}

func NewOverlay(static *Static, next Resolver) *Overlay {
	return &Overlay{static: static, next: next}
}

// A static alias whose target only the next resolver knows is looked up there under the target name.
func (o *Overlay) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if !o.static.Has(host) {
		return o.next.LookupAddrInfo(ctx, host)
	}
	infos, err := o.static.LookupAddrInfo(ctx, host)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return infos, err
	}
	target, aerr := followAliases(trimDot(host), o.static.aliases)
	if aerr != nil || target == trimDot(host) {
		return nil, err
	}
	infos, err = o.next.LookupAddrInfo(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(infos) > 0 && infos[0].Canonical == "" {
		infos[0].Canonical = target
	}
	return infos, nil
}
