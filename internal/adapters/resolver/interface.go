package resolver

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is matched by every lookup failure that should be reported as an unknown host.
var ErrNotFound = errors.New("host not found")

type Resolver interface {
	// Resolve host into its address entries, canonical name requested. Order of the answer is the backend's.
	LookupAddrInfo(ctx context.Context, host string) ([]AddrInfo, error)
}

// LookupError is a failed lookup of Host. It always matches ErrNotFound.
type LookupError struct {
	Host string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return e.Host + ": " + ErrNotFound.Error()
	}
	return e.Host + ": " + e.Err.Error()
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

// notFound wraps err as a lookup failure unless the context is done, in which case the context error wins.
func notFound(ctx context.Context, host string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return &LookupError{Host: host, Err: err}
}

func trimDot(name string) string {
	return strings.TrimSuffix(name, ".")
}
