package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sergds/nameres/internal"
	"github.com/sergds/nameres/internal/adapters/resolver"
	"github.com/sergds/nameres/internal/config"
	"github.com/sergds/nameres/internal/lookup"
)

// Builds the backend once the config is settled. Swapped out in tests.
type resolverBuilder func(conf *config.Config) (resolver.Resolver, error)

func buildResolver(conf *config.Config) (resolver.Resolver, error) {
	return resolver.NewResolver(conf.Backend, resolver.Options{
		PreferGo:       conf.PreferGo,
		Nameserver:     conf.Nameserver,
		DoHProvider:    conf.DoHProvider,
		PiholeEndpoint: conf.Pihole.Endpoint,
		PiholeAPIKey:   conf.Pihole.APIKey,
	})
}

func newApp(stdout io.Writer, stderr io.Writer, build resolverBuilder, exit func(int)) *cli.App {
	return &cli.App{
		Name:      "nameres",
		Usage:     "resolve hostnames to addresses, following aliases",
		ArgsUsage: "HOSTNAME [HOSTNAME...]",
		Version:   internal.Version(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file", EnvVars: []string{"NAMERES_CONFIG"}},
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "resolver backend: system, dns, doh or pihole", EnvVars: []string{"NAMERES_BACKEND"}},
			&cli.BoolFlag{Name: "prefer-go", Usage: "system backend: use the pure Go resolver", EnvVars: []string{"NAMERES_PREFER_GO"}},
			&cli.StringFlag{Name: "nameserver", Usage: "dns backend: server to ask (default: first in resolv.conf)", EnvVars: []string{"NAMERES_NAMESERVER"}},
			&cli.StringFlag{Name: "doh-provider", Usage: "doh backend: cloudflare, google, quad9 or dnspod", EnvVars: []string{"NAMERES_DOH_PROVIDER"}},
			&cli.StringFlag{Name: "pihole-endpoint", Usage: "pihole backend: web interface url", EnvVars: []string{"NAMERES_PIHOLE_ENDPOINT"}},
			&cli.StringFlag{Name: "pihole-apikey", Usage: "pihole backend: api token", EnvVars: []string{"NAMERES_PIHOLE_APIKEY"}},
			&cli.IntFlag{Name: "max-alias-depth", Usage: "alias hops to follow per hostname, negative for no limit", Value: lookup.DefaultMaxAliasDepth, EnvVars: []string{"NAMERES_MAX_ALIAS_DEPTH"}},
			&cli.StringFlag{Name: "color", Usage: "auto, always or never", EnvVars: []string{"NAMERES_COLOR"}},
			&cli.BoolFlag{Name: "verbose", Usage: "log lookups to stderr"},
		},
		HideHelpCommand: true,
		ExitErrHandler: func(ctx *cli.Context, err error) {
			if exitErr, ok := err.(cli.ExitCoder); ok {
				if msg := exitErr.Error(); msg != "" {
					fmt.Fprintln(stderr, msg)
				}
				exit(exitErr.ExitCode())
			}
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() < 1 {
				return cli.Exit("USAGE: "+ctx.App.Name+" [HOSTNAME...]", 1)
			}
			setupLogging(stderr, ctx.Bool("verbose"))
			conf, err := loadConfig(ctx)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			res, err := build(conf)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if c, ok := res.(io.Closer); ok {
				defer c.Close()
			}
			fields := logrus.Fields{"backend": conf.Backend}
			if ns, ok := res.(*resolver.Nameserver); ok {
				fields["nameserver"] = ns.Server()
			}
			logrus.WithFields(fields).Debug("resolver ready")
			if conf.HasOverrides() {
				res = resolver.NewOverlay(resolver.NewStatic(conf.Hosts, conf.Aliases), res)
			}
			depth := lookup.DefaultMaxAliasDepth
			if conf.MaxAliasDepth != nil {
				depth = *conf.MaxAliasDepth
			}
			d := lookup.NewDriver(res, lookup.NewPrinter(stdout, useColor(conf.Color, stdout)), depth)
			if err := d.Resolve(ctx.Context, lookup.Dedup(ctx.Args().Slice())); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return nil
		},
	}
}

// loadConfig reads the config file and lays the flags that were given on top of it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path, explicit := ctx.String("config"), ctx.IsSet("config")
	if !explicit {
		path = config.DefaultPath()
	}
	conf, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	if ctx.IsSet("backend") {
		conf.Backend = ctx.String("backend")
	}
	if ctx.IsSet("prefer-go") {
		conf.PreferGo = ctx.Bool("prefer-go")
	}
	if ctx.IsSet("nameserver") {
		conf.Nameserver = ctx.String("nameserver")
	}
	if ctx.IsSet("doh-provider") {
		conf.DoHProvider = ctx.String("doh-provider")
	}
	if ctx.IsSet("pihole-endpoint") {
		conf.Pihole.Endpoint = ctx.String("pihole-endpoint")
	}
	if ctx.IsSet("pihole-apikey") {
		conf.Pihole.APIKey = ctx.String("pihole-apikey")
	}
	if ctx.IsSet("max-alias-depth") {
		depth := ctx.Int("max-alias-depth")
		conf.MaxAliasDepth = &depth
	}
	if ctx.IsSet("color") {
		conf.Color = ctx.String("color")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Debug("config loaded")
	return conf, nil
}

func setupLogging(w io.Writer, verbose bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Where it all begins...
func main() {
	app := newApp(os.Stdout, os.Stderr, buildResolver, cli.OsExiter)
	app.Name = filepath.Base(os.Args[0])
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
