// Package lookup walks hostnames through a resolver and prints what they resolve to,
// following aliases to their canonical names.
package lookup

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/sergds/nameres/internal/adapters/resolver"
)

// DefaultMaxAliasDepth bounds how many alias hops are followed from one hostname.
const DefaultMaxAliasDepth = 10

type Driver struct {
	res   resolver.Resolver
	out   *Printer
	depth int // negative means unbounded
}

func NewDriver(res resolver.Resolver, out *Printer, maxAliasDepth int) *Driver {
	return &Driver{res: res, out: out, depth: maxAliasDepth}
}

// Resolve looks up every host in order and prints the outcome.
// Unknown hosts are printed and skipped; any other resolver error stops the run.
func (d *Driver) Resolve(ctx context.Context, hosts []string) error {
	return d.resolve(ctx, hosts, 0)
}

func (d *Driver) resolve(ctx context.Context, hosts []string, hop int) error {
	for _, host := range hosts {
		infos, err := d.res.LookupAddrInfo(ctx, host)
		if err != nil {
			if !errors.Is(err, resolver.ErrNotFound) {
				return err
			}
			log.WithError(err).Debug("lookup failed")
			if err := d.out.NotFound(host); err != nil {
				return err
			}
			continue
		}
		for _, info := range infos {
			if !info.Representative() {
				continue
			}
			if info.Canonical == "" || info.Canonical == host {
				if err := d.out.Address(host, info.Addr, info.Family.Tag()); err != nil {
					return err
				}
				continue
			}
			if err := d.out.Alias(host, info.Canonical); err != nil {
				return err
			}
			if d.depth >= 0 && hop >= d.depth {
				log.WithFields(log.Fields{"host": host, "alias": info.Canonical, "depth": d.depth}).
					Warn("alias chain too deep, not following")
				break
			}
			if err := d.resolve(ctx, []string{info.Canonical}, hop+1); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
