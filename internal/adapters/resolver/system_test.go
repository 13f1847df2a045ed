package resolver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNet struct {
	addrs    []net.IPAddr
	ipErr    error
	cname    string
	cnameErr error
}

func (f *fakeNet) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	return f.addrs, f.ipErr
}

func (f *fakeNet) LookupCNAME(ctx context.Context, host string) (string, error) {
	return f.cname, f.cnameErr
}

func TestSystemLiteral(t *testing.T) {
	infos, err := newSystem(true).LookupAddrInfo(context.Background(), "192.0.2.5")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "192.0.2.5", infos[0].Addr)
	assert.Equal(t, FamilyIPv4, infos[0].Family)
}

func TestSystemLocalhost(t *testing.T) {
	infos, err := newSystem(true).LookupAddrInfo(context.Background(), "localhost")
	require.NoError(t, err)
	require.NotEmpty(t, infos)
	assert.Equal(t, "localhost", infos[0].Canonical)

	var addrs []string
	for _, info := range infos {
		if info.Representative() {
			addrs = append(addrs, info.Addr)
		}
	}
	assert.Subset(t, []string{"127.0.0.1", "::1"}, addrs)
}

func TestSystemCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSystem(true).LookupAddrInfo(ctx, "nosuch.invalid")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSystemErrors(t *testing.T) {
	ctx := context.Background()

	s := &System{res: &fakeNet{ipErr: &net.DNSError{Err: "no such host", Name: "gone.example", IsNotFound: true}}}
	_, err := s.LookupAddrInfo(ctx, "gone.example")
	assert.ErrorIs(t, err, ErrNotFound)

	s = &System{res: &fakeNet{ipErr: &net.DNSError{Err: "server misbehaving", Name: "flaky.example", IsTemporary: true}}}
	_, err = s.LookupAddrInfo(ctx, "flaky.example")
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("boom")
	s = &System{res: &fakeNet{ipErr: boom}}
	_, err = s.LookupAddrInfo(ctx, "odd.example")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	s = &System{res: &fakeNet{}}
	_, err = s.LookupAddrInfo(ctx, "empty.example")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSystemCanonical(t *testing.T) {
	ctx := context.Background()
	addrs := []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}, {IP: net.ParseIP("2001:db8::1")}}

	s := &System{res: &fakeNet{addrs: addrs, cname: "edge.example.net."}}
	infos, err := s.LookupAddrInfo(ctx, "www.example.com")
	require.NoError(t, err)
	require.Len(t, infos, 6)
	assert.Equal(t, "edge.example.net", infos[0].Canonical)
	assert.Equal(t, FamilyIPv6, infos[3].Family)

	s = &System{res: &fakeNet{addrs: addrs, cnameErr: &net.DNSError{Err: "no such host"}}}
	infos, err = s.LookupAddrInfo(ctx, "www.example.com")
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", infos[0].Canonical)
}
