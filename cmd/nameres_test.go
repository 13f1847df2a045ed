package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergds/nameres/internal/adapters/resolver"
	"github.com/sergds/nameres/internal/config"
)

type runResult struct {
	stdout, stderr string
	code           int
	conf           *config.Config
	err            error
}

func runApp(t *testing.T, backend resolver.Resolver, args ...string) runResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	res := runResult{code: -1}
	build := func(conf *config.Config) (resolver.Resolver, error) {
		res.conf = conf
		return backend, nil
	}
	app := newApp(&stdout, &stderr, build, func(code int) { res.code = code })
	res.err = app.Run(append([]string{"nameres"}, args...))
	res.stdout, res.stderr = stdout.String(), stderr.String()
	return res
}

func TestUsageWithoutHosts(t *testing.T) {
	r := runApp(t, resolver.NewStatic(nil, nil))
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "USAGE: nameres [HOSTNAME...]\n", r.stderr)
	assert.Empty(t, r.stdout)
	assert.Nil(t, r.conf)
}

func TestResolvesDeduplicatedHosts(t *testing.T) {
	static := resolver.NewStatic(
		map[string]string{"b.example": "192.0.2.2", "c.example": "2001:db8::3"},
		map[string]string{"a.example": "b.example"},
	)
	r := runApp(t, static, "--color", "never", "a.example", "missing.example", "a.example", "c.example")
	require.NoError(t, r.err)
	assert.Equal(t, -1, r.code)
	assert.Equal(t,
		"a.example -> b.example\n"+
			"b.example = 192.0.2.2 [IPv4]\n"+
			"missing.example -> *** NOT FOUND ***\n"+
			"c.example = 2001:db8::3 [IPv6]\n", r.stdout)
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: dns\nnameserver: 192.0.2.53\nmax-alias-depth: 0\nhosts:\n  pinned.lan: 10.0.0.1\n"), 0o600))

	r := runApp(t, resolver.NewStatic(nil, nil), "--config", path, "--backend", "doh", "pinned.lan")
	require.NoError(t, r.err)
	require.NotNil(t, r.conf)
	assert.Equal(t, "doh", r.conf.Backend)
	assert.Equal(t, "192.0.2.53", r.conf.Nameserver)
	assert.Equal(t, 0, *r.conf.MaxAliasDepth)
	assert.Equal(t, "pinned.lan = 10.0.0.1 [IPv4]\n", r.stdout)
}

func TestMaxAliasDepthFlag(t *testing.T) {
	static := resolver.NewStatic(map[string]string{"c": "192.0.2.1"}, map[string]string{"a": "b", "b": "c"})
	r := runApp(t, static, "--max-alias-depth", "0", "a")
	require.NoError(t, r.err)
	assert.Equal(t, "a -> c\n", r.stdout)
	assert.Contains(t, r.stderr, "alias chain too deep")
}

func TestMissingExplicitConfig(t *testing.T) {
	r := runApp(t, resolver.NewStatic(nil, nil), "--config", filepath.Join(t.TempDir(), "absent.yaml"), "host")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "absent.yaml")
	assert.Empty(t, r.stdout)
}

func TestBadColorFlag(t *testing.T) {
	r := runApp(t, resolver.NewStatic(nil, nil), "--color", "sometimes", "host")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "sometimes")
	assert.Empty(t, r.stdout)
	assert.Nil(t, r.conf)
}

func TestVerboseAndVersion(t *testing.T) {
	static := resolver.NewStatic(map[string]string{"h.example": "192.0.2.1"}, nil)
	r := runApp(t, static, "--verbose", "h.example")
	require.NoError(t, r.err)
	assert.Equal(t, "h.example = 192.0.2.1 [IPv4]\n", r.stdout)
	assert.Contains(t, r.stderr, "resolver ready")

	for _, flag := range []string{"--version", "-v"} {
		r = runApp(t, static, flag)
		require.NoError(t, r.err)
		assert.Equal(t, "nameres version dev\n", r.stdout)
		assert.Equal(t, -1, r.code)
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", &buf))
	assert.False(t, useColor("auto", &buf))
}
