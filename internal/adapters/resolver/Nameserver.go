package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

const resolvConf = "/etc/resolv.conf"

// Nameserver resolver. Asks one DNS server directly for A and AAAA records and
// follows the CNAME records that come back with the answers.
type Nameserver struct {
	client *dns.Client
	server string
}

// newNameserver talks to server ("host" or "host:port"). Empty server means the first one from resolv.conf.
func newNameserver(server string) (*Nameserver, error) {
	if server == "" {
		conf, err := dns.ClientConfigFromFile(resolvConf)
		if err != nil {
			return nil, fmt.Errorf("cannot initialize the local resolver: %w", err)
		}
		if len(conf.Servers) == 0 {
			return nil, fmt.Errorf("no nameservers in %s", resolvConf)
		}
		server = net.JoinHostPort(conf.Servers[0], conf.Port)
	} else if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &Nameserver{client: &dns.Client{}, server: server}, nil
}

func (n *Nameserver) Server() string {
	return n.server
}

func (n *Nameserver) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if infos, ok := literal(host); ok {
		return infos, nil
	}
	aliases := make(map[string]string)
	addrs := make(map[string][]net.IP)
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(host), qtype)
		in, _, err := n.client.ExchangeContext(ctx, m, n.server)
		if err != nil {
			return nil, notFound(ctx, host, err)
		}
		if in.Rcode != dns.RcodeSuccess {
			return nil, notFound(ctx, host, fmt.Errorf("server answered %s", dns.RcodeToString[in.Rcode]))
		}
		for _, rr := range in.Answer {
			name := trimDot(rr.Header().Name)
			switch r := rr.(type) {
			case *dns.CNAME:
				aliases[name] = trimDot(r.Target)
			case *dns.A:
				addrs[name] = append(addrs[name], r.A)
			case *dns.AAAA:
				addrs[name] = append(addrs[name], r.AAAA)
			}
		}
	}
	canonical, err := followAliases(trimDot(host), aliases)
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	if len(addrs[canonical]) == 0 {
		return nil, notFound(ctx, host, nil)
	}
	return newAddrInfos(canonical, addrs[canonical]), nil
}
