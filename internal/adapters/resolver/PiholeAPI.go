package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/antonholmquist/jason"
)

// Pi-hole resolver. Answers from the local DNS and local CNAME tables kept by a Pi-hole,
// read through its web API.
type PiholeAPI struct {
	apikey   string
	endpoint string
	hclient  *http.Client
}

func newPiholeAPI(endpoint string, apikey string) *PiholeAPI {
	jar, _ := cookiejar.New(&cookiejar.Options{})
	return &PiholeAPI{endpoint: endpoint, apikey: apikey, hclient: &http.Client{Jar: jar}}
}

func (p *PiholeAPI) piholeRequest(ctx context.Context, query url.Values) ([]byte, error) {
	query.Set("auth", p.apikey)
	requrl := p.endpoint + "/admin/api.php?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requrl, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.hclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pihole api: %s", resp.Status)
	}
	// Pi-hole answers 200 even when the token is wrong.
	if string(body) == "Not authorized!" || string(body) == "[]" {
		return nil, errors.New("pihole api: unauthorized")
	}
	return body, nil
}

// table fetches one of the custom lists ("customdns" or "customcname") as name -> value pairs, in list order.
func (p *PiholeAPI) table(ctx context.Context, list string) ([][2]string, error) {
	body, err := p.piholeRequest(ctx, url.Values{list: {""}, "action": {"get"}})
	if err != nil {
		return nil, err
	}
	obj, err := jason.NewObjectFromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("pihole api: %w", err)
	}
	rows, err := obj.GetValueArray("data")
	if err != nil {
		return nil, fmt.Errorf("pihole api: %w", err)
	}
	pairs := make([][2]string, 0, len(rows))
	for _, row := range rows {
		cols, err := row.Array()
		if err != nil || len(cols) < 2 {
			continue
		}
		name, err1 := cols[0].String()
		value, err2 := cols[1].String()
		if err1 != nil || err2 != nil {
			continue
		}
		pairs = append(pairs, [2]string{name, value})
	}
	return pairs, nil
}

func (p *PiholeAPI) LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error) {
	if infos, ok := literal(host); ok {
		return infos, nil
	}
	records, err := p.table(ctx, "customdns")
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	cnames, err := p.table(ctx, "customcname")
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	aliases := make(map[string]string, len(cnames))
	for _, c := range cnames {
		aliases[trimDot(c[0])] = trimDot(c[1])
	}
	canonical, err := followAliases(trimDot(host), aliases)
	if err != nil {
		return nil, notFound(ctx, host, err)
	}
	var ips []net.IP
	for _, r := range records {
		if trimDot(r[0]) != canonical {
			continue
		}
		if ip := net.ParseIP(r[1]); ip != nil {
			ips = append(ips, ip)
		}
	}
	if len(ips) == 0 {
		return nil, notFound(ctx, host, nil)
	}
	return newAddrInfos(canonical, ips), nil
}
