package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog"

	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands"
	"github.com/projectcontour/ossl2iana/internal/iana"
	"github.com/projectcontour/ossl2iana/internal/logging"
	"github.com/projectcontour/ossl2iana/internal/openssl"
)

// PrintError receives an error value and prints it if it exists
func PrintError(w io.Writer, e error) {
	if e != nil {
		fmt.Fprintln(w, e)
	}
}

// AddConfigFlags adds the table source flags to cmd and its subcommands
func AddConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(commands.IANAFileFlag, iana.DefaultPath, "IANA TLS cipher-suite registry export (CSV)")
	flags.String(commands.OpenSSLCommandFlag, openssl.DefaultCommand, "Command printing the verbose openssl cipher listing")
	flags.Duration(commands.TimeoutFlag, openssl.DefaultTimeout, "Give up on the openssl command after this long")
	flags.Bool(commands.AllowFailureFlag, false, "Keep going with partial output when the openssl command fails")
}

// AddReverseFlag adds a --reverse flag to a cobra command
func AddReverseFlag(cmd *cobra.Command) *bool {
	v := false
	cmd.Flags().BoolVarP(&v, commands.ReverseFlag, "r", false, "Translate IANA names to OpenSSL names")
	return &v
}

// AddOutputFlag adds a --output flag to a cobra command
func AddOutputFlag(cmd *cobra.Command) *string {
	v := ""
	cmd.Flags().StringVarP(&v, commands.OutputFlag, "o", "yaml", "Output format. One of: yaml|json")
	return &v
}

// AddMissingFlag adds a --missing flag to a cobra command
func AddMissingFlag(cmd *cobra.Command) *bool {
	v := false
	cmd.Flags().BoolVar(&v, commands.MissingFlag, false, "Only show codes missing from one of the naming schemes")
	return &v
}

// NewViper binds the flags of cmd, including inherited ones, and their
// OSSL2IANA_ environment overrides.
func NewViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(commands.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

// NewLogger returns the logger handed to the loaders. It logs debug output
// from -v=4 on.
func NewLogger(w io.Writer) logrus.FieldLogger {
	return logging.New(w, bool(klog.V(4)))
}
