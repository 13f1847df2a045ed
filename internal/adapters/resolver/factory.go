package resolver

import (
	"fmt"
	"strings"
)

// Settings for the backends that need any.
type Options struct {
	PreferGo       bool
	Nameserver     string
	DoHProvider    string
	PiholeEndpoint string
	PiholeAPIKey   string
}

// Backend names accepted by NewResolver.
const (
	BackendSystem = "system"
	BackendDNS    = "dns"
	BackendDoH    = "doh"
	BackendPihole = "pihole"
)

func NewResolver(name string, opts Options) (Resolver, error) {
	n := strings.ToLower(name)
	switch n {
	case "", BackendSystem:
		return newSystem(opts.PreferGo), nil
	case BackendDNS:
		return newNameserver(opts.Nameserver)
	case BackendDoH:
		provider := opts.DoHProvider
		if provider == "" {
			provider = "cloudflare"
		}
		return newDoH(provider)
	case BackendPihole:
		if opts.PiholeEndpoint == "" {
			return nil, fmt.Errorf("pihole backend needs an endpoint")
		}
		return newPiholeAPI(strings.TrimSuffix(opts.PiholeEndpoint, "/"), opts.PiholeAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown resolver backend %q", name)
	}
}
