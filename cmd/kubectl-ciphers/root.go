package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/klog"

	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands/convert"
	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands/show"
	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands/util"
)

var (
	// This variable is populated by goreleaser
	version string
)

// newRootCommand represents the base command when called without any subcommands
func newRootCommand(streams genericclioptions.IOStreams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kubectl-ciphers",
		Short:         "A kubectl plugin translating TLS cipher-suite names between openssl and IANA",
		SilenceUsage:  true, // for when RunE returns an error
		SilenceErrors: true,
		Version:       versionString(),
	}
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	util.AddConfigFlags(rootCmd)
	rootCmd.AddCommand(convert.CreateConvertCommand(streams))
	rootCmd.AddCommand(show.CreateShowCommand(streams))
	return rootCmd
}

// versionString returns the version prefixed by 'v'
// or an empty string if no version has been populated by goreleaser.
// In this case, the --version flag will not be added by cobra.
func versionString() string {
	if len(version) == 0 {
		return ""
	}
	return "v" + version
}

func init() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	// hide all glog flags except for -v
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if f.Name != "v" {
			pflag.Lookup(f.Name).Hidden = true
		}
	})

	if err := flag.Set("logtostderr", "true"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set logtostderr flag: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	defer klog.Flush()
	streams := genericclioptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
	if err := newRootCommand(streams).Execute(); err != nil {
		util.PrintError(streams.ErrOut, err)
		os.Exit(1)
	}
}
