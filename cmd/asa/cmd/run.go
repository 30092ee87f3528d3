package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/asa/pkg/compiler/parser"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a script (same as asa <file>)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFile(cmd, args[0])
		},
	}
}

// runFile executes every top-level item of the script, then main() when the
// script binds a main callable without arguments.
func (a *app) runFile(cmd *cobra.Command, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	prog, err := parser.Parse(src)
	if err != nil {
		return a.report(cmd, err, path, src)
	}

	out := cmd.OutOrStdout()
	in := a.newInterpreter(out)
	if _, err := in.Exec(prog); err != nil {
		return a.report(cmd, err, path, src)
	}

	result, found, err := in.CallMain()
	if err != nil {
		return a.report(cmd, err, path, src)
	}
	if !found {
		fmt.Fprintln(out, a.styles.muted.Render("No main function found; execution completed."))
		return nil
	}
	fmt.Fprintln(out, a.styles.result.Render("Main returned: "+result.Debug()))
	return nil
}
