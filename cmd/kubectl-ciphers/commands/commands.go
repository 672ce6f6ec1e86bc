package commands

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"k8s.io/klog"

	"github.com/projectcontour/ossl2iana/internal/iana"
	"github.com/projectcontour/ossl2iana/internal/openssl"
	"github.com/projectcontour/ossl2iana/internal/translator"
)

const (
	IANAFileFlag       = "iana-file"
	OpenSSLCommandFlag = "openssl-command"
	TimeoutFlag        = "timeout"
	AllowFailureFlag   = "allow-openssl-failure"
	ReverseFlag        = "reverse"
	OutputFlag         = "output"
	MissingFlag        = "missing"

	// EnvPrefix prefixes environment overrides, e.g. OSSL2IANA_IANA_FILE.
	EnvPrefix = "ossl2iana"
)

// Config is where the cipher tables come from.
type Config struct {
	IANAFile       string
	OpenSSLCommand string
	Timeout        time.Duration
	AllowFailure   bool
}

// ConfigFrom reads a Config out of v.
func ConfigFrom(v *viper.Viper) Config {
	return Config{
		IANAFile:       v.GetString(IANAFileFlag),
		OpenSSLCommand: v.GetString(OpenSSLCommandFlag),
		Timeout:        v.GetDuration(TimeoutFlag),
		AllowFailure:   v.GetBool(AllowFailureFlag),
	}
}

// Converter loads both tables and returns a Converter over them.
func (c Config) Converter(ctx context.Context, log logrus.FieldLogger) (*translator.Converter, error) {
	klog.V(2).Infof("loading IANA registry from %s", c.IANAFile)
	ianaSuites, err := iana.Load(c.IANAFile, log)
	if err != nil {
		return nil, err
	}

	klog.V(2).Infof("listing openssl ciphers with %q timeout=%s allowFailure=%v", c.OpenSSLCommand, c.Timeout, c.AllowFailure)
	lister := &openssl.CommandLister{
		Command: c.OpenSSLCommand,
		Timeout: c.Timeout,
		Log:     log,
	}
	opensslSuites, err := openssl.Load(ctx, lister, openssl.LoadOptions{
		AllowFailure: c.AllowFailure,
		Log:          log,
	})
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("found %d IANA and %d openssl cipher suites", ianaSuites.Len(), opensslSuites.Len())

	return translator.New(ianaSuites, opensslSuites), nil
}
