package show

import (
	"encoding/json"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/klog"
	"sigs.k8s.io/yaml"

	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands"
	"github.com/projectcontour/ossl2iana/cmd/kubectl-ciphers/commands/util"
	"github.com/projectcontour/ossl2iana/internal/translator"
)

// CreateShowCommand creates and returns this cobra subcommand
func CreateShowCommand(streams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "show prints every cipher-suite code with its IANA and openssl names",
		Example: `
		kubectl ciphers show
		kubectl ciphers show --missing -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, streams)
		},
	}
	util.AddOutputFlag(cmd)
	util.AddMissingFlag(cmd)

	return cmd
}

// document is the top level of the show output.
type document struct {
	Ciphers []translator.Mapping `json:"ciphers"`
}

func run(cmd *cobra.Command, streams genericclioptions.IOStreams) error {
	v, err := util.NewViper(cmd)
	if err != nil {
		return err
	}
	output := v.GetString(commands.OutputFlag)
	if output != "yaml" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	conv, err := commands.ConfigFrom(v).Converter(cmd.Context(), util.NewLogger(streams.ErrOut))
	if err != nil {
		return fmt.Errorf("failed to load cipher tables: %w", err)
	}

	mappings := conv.Join()
	if v.GetBool(commands.MissingFlag) {
		mappings = incomplete(mappings)
	}
	klog.V(2).Infof("show %d cipher suites", len(mappings))
	if klog.V(5) {
		fmt.Fprintln(streams.ErrOut, spew.Sdump(mappings))
	}

	doc, err := neat(document{Ciphers: mappings})
	if err != nil {
		return err
	}

	var out []byte
	switch output {
	case "json":
		out = pretty.Pretty(doc)
	default:
		out, err = yaml.JSONToYAML(doc)
		if err != nil {
			return fmt.Errorf("conversion to yaml: %w", err)
		}
	}
	_, err = streams.Out.Write(out)
	return err
}

func incomplete(mappings []translator.Mapping) []translator.Mapping {
	out := make([]translator.Mapping, 0, len(mappings))
	for _, m := range mappings {
		if !m.Complete() {
			out = append(out, m)
		}
	}
	return out
}

// neat -- marshal doc and drop the names a code doesn't have
func neat(doc document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cipher suites: %w", err)
	}
	v2 := string(raw)
	for kk, m := range doc.Ciphers {
		if m.IANA == "" {
			vint, err := sjson.Delete(v2, fmt.Sprintf("ciphers.%d.iana", kk))
			if err != nil {
				return nil, fmt.Errorf("error deleting ciphers.%d.iana: %w", kk, err)
			}
			v2 = vint
		}
		if m.OpenSSL == "" {
			vint, err := sjson.Delete(v2, fmt.Sprintf("ciphers.%d.openssl", kk))
			if err != nil {
				return nil, fmt.Errorf("error deleting ciphers.%d.openssl: %w", kk, err)
			}
			v2 = vint
		}
	}
	return []byte(v2), nil
}
