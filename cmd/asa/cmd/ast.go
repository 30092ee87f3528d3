package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/compiler/parser"
)

func newASTCmd(a *app) *cobra.Command {
	var asYAML bool
	c := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			prog, err := parser.Parse(src)
			if err != nil {
				return a.report(cmd, err, args[0], src)
			}

			if !asYAML {
				fmt.Fprintln(cmd.OutOrStdout(), ast.Dump(prog))
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(ast.Tree(prog))
		},
	}
	c.Flags().BoolVar(&asYAML, "yaml", false, "print the tree as YAML with positions")
	return c
}
