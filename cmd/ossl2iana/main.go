package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/projectcontour/ossl2iana/internal/iana"
	"github.com/projectcontour/ossl2iana/internal/logging"
	"github.com/projectcontour/ossl2iana/internal/openssl"
	"github.com/projectcontour/ossl2iana/internal/report"
	"github.com/projectcontour/ossl2iana/internal/translator"
)

// This variable is populated by goreleaser
var version string

type config struct {
	ianaFile       string
	opensslCommand string
	timeout        time.Duration
	allowFailure   bool
	ciphersuites   string
}

func main() {
	app := kingpin.New("ossl2iana", "Translate OpenSSL cipher-suite names to their IANA equivalents.")
	if version != "" {
		app.Version("v" + version)
	}

	var cfg config
	app.Flag("iana-file", "IANA TLS cipher-suite registry export (CSV).").
		Envar("OSSL2IANA_IANA_FILE").Default(iana.DefaultPath).StringVar(&cfg.ianaFile)
	app.Flag("openssl-command", "Command printing the verbose openssl cipher listing.").
		Envar("OSSL2IANA_OPENSSL_COMMAND").Default(openssl.DefaultCommand).StringVar(&cfg.opensslCommand)
	app.Flag("timeout", "Give up on the openssl command after this long.").
		Envar("OSSL2IANA_TIMEOUT").Default(openssl.DefaultTimeout.String()).DurationVar(&cfg.timeout)
	app.Flag("allow-openssl-failure", "Keep going with partial output when the openssl command fails.").
		BoolVar(&cfg.allowFailure)
	debug := app.Flag("debug", "Enable debug logging.").Bool()
	app.Arg("ciphersuites", "Colon separated OpenSSL cipher-suite names.").Required().StringVar(&cfg.ciphersuites)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	log := logging.New(os.Stderr, *debug)
	if err := run(context.Background(), cfg, os.Stdout, log); err != nil {
		log.WithError(err).Error("ossl2iana failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer, log logrus.FieldLogger) error {
	ianaSuites, err := iana.Load(cfg.ianaFile, log)
	if err != nil {
		return err
	}

	lister := &openssl.CommandLister{
		Command: cfg.opensslCommand,
		Timeout: cfg.timeout,
		Log:     log,
	}
	opensslSuites, err := openssl.Load(ctx, lister, openssl.LoadOptions{
		AllowFailure: cfg.allowFailure,
		Log:          log,
	})
	if err != nil {
		return err
	}

	conv := translator.New(ianaSuites, opensslSuites)
	if err := report.Build(conv, report.Split(cfg.ciphersuites)).Write(out); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
