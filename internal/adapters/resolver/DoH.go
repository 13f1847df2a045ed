package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/likexian/doh"
	dohdns "github.com/likexian/doh/dns"
)

// RR type numbers as they come back in DoH JSON answers.
const (
	rrTypeA     = 1
	rrTypeCNAME = 5
	rrTypeAAAA  = 28
)

const rcodeNXDomain = 3

// Provider constants are of an unexported type, so each one gets its own constructor.
var dohProviders = map[string]func() *doh.DoH{
	"cloudflare": func() *doh.DoH { return doh.Use(doh.CloudflareProvider) },
	"google":     func() *doh.DoH { return doh.Use(doh.GoogleProvider) },
	"quad9":      func() *doh.DoH { return doh.Use(doh.Quad9Provider) },
	"dnspod":     func() *doh.DoH { return doh.Use(doh.DNSPodProvider) },
}

// DoH resolver. Queries a public DNS-over-HTTPS provider.
type DoH struct {
	c *doh.DoH
}

func newDoH(provider string) (*DoH, error) {
	use, ok := dohProviders[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("unknown doh provider %q", provider)
	}
	return &DoH{c: use()}, nil
}

func (d *DoH) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if infos, ok := literal(host); ok {
		return infos, nil
	}
	var answers []dohdns.Answer
	for _, t := range []dohdns.Type{dohdns.TypeA, dohdns.TypeAAAA} {
		rsp, err := d.c.Query(ctx, dohdns.Domain(host), t)
		if err != nil {
			return nil, notFound(ctx, host, err)
		}
		if rsp.Status == rcodeNXDomain {
			return nil, notFound(ctx, host, nil)
		}
		answers = append(answers, rsp.Answer...)
	}
	infos, err := fromDoHAnswers(host, answers)
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	return infos, nil
}

func (d *DoH) Close() error {
	d.c.Close()
	return nil
}

// fromDoHAnswers turns the answer sections of the A and AAAA queries into an answer set.
func fromDoHAnswers(host string, answers []dohdns.Answer) ([]AddrInfo, error) {
	aliases := make(map[string]string)
	addrs := make(map[string][]net.IP)
	for _, a := range answers {
		name := trimDot(a.Name)
		switch a.Type {
		case rrTypeCNAME:
			aliases[name] = trimDot(a.Data)
		case rrTypeA, rrTypeAAAA:
			if ip := net.ParseIP(a.Data); ip != nil {
				addrs[name] = append(addrs[name], ip)
			}
		}
	}
	canonical, err := followAliases(trimDot(host), aliases)
	if err != nil {
		return nil, err
	}
	if len(addrs[canonical]) == 0 {
		return nil, ErrNotFound
	}
	return newAddrInfos(canonical, addrs[canonical]), nil
}
