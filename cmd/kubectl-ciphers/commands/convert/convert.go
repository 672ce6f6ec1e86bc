package convert

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/klog"

	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands"
	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands/util"
	"github.com/projectcontour/ossl2iana/internal/report"
)

// CreateConvertCommand creates and returns this cobra subcommand
func CreateConvertCommand(streams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert CIPHERS",
		Short: "convert translates a colon separated list of openssl cipher-suite names into IANA names",
		Example: `
		kubectl ciphers convert 'ECDHE-RSA-AES128-GCM-SHA256:AES128-SHA'
		kubectl ciphers convert --reverse TLS_RSA_WITH_AES_128_CBC_SHA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(cmd, streams, args[0])
		},
	}
	util.AddReverseFlag(cmd)

	return cmd
}

// transform -- print the report for list
func transform(cmd *cobra.Command, streams genericclioptions.IOStreams, list string) error {
	v, err := util.NewViper(cmd)
	if err != nil {
		return err
	}
	reverse := v.GetBool(commands.ReverseFlag)

	conv, err := commands.ConfigFrom(v).Converter(cmd.Context(), util.NewLogger(streams.ErrOut))
	if err != nil {
		return fmt.Errorf("failed to load cipher tables: %w", err)
	}

	names := report.Split(list)
	klog.V(2).Infof("convert names=%q reverse=%v", names, reverse)

	var r *report.Report
	if reverse {
		r = report.BuildReverse(conv, names)
	} else {
		r = report.Build(conv, names)
	}
	klog.V(2).Infof("convert known=%d unknown=%d missing=%d", len(r.Known), len(r.Unknown), len(r.Missing))

	return r.Write(streams.Out)
}
