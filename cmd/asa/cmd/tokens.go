package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/asa/pkg/compiler/lexer"
)

type tokenRecord struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text,omitempty"`
	Line int    `yaml:"line"`
	Col  int    `yaml:"col"`
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a script as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			toks := lexer.Lex(src)
			records := make([]tokenRecord, 0, toks.Len())
			for _, tok := range toks {
				records = append(records, tokenRecord{
					Kind: tok.Kind.String(),
					Text: tok.Text(),
					Line: tok.StartLine,
					Col:  tok.StartCol,
				})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(records)
		},
	}
}
