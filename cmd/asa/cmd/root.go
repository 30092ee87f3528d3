package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/asa/pkg/config"
	"github.com/agenthands/asa/pkg/core/errs"
	"github.com/agenthands/asa/pkg/interpreter"
)

// errReported marks failures whose diagnostic has already been written.
var errReported = errors.New("reported")

// app carries flag values and the state built from them before a command runs.
type app struct {
	cfgFile  string
	verbose  bool
	noColor  bool
	maxSteps int

	cfg    *config.Config
	log    *slog.Logger
	styles styles
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "asa <file>",
		Short: "asa - a small scripting language",
		Long: `asa runs scripts written in the asa language.

Running a file executes its top-level definitions and statements, then calls
main() if the script defines one.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New("missing script file")
			}
			return a.runFile(cmd, args[0])
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $ASA_CONFIG, ./asa.toml, ~/.config/asa/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable styled output")
	root.PersistentFlags().IntVar(&a.maxSteps, "max-steps", 0, "evaluation step budget per run, 0 for unlimited")

	root.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the asa command line and reports any failure on stderr.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var cfg *config.Config
	var err error
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("max-steps") {
		if a.maxSteps < 0 {
			return fmt.Errorf("--max-steps must not be negative, got %d", a.maxSteps)
		}
		cfg.Interpreter.MaxSteps = a.maxSteps
	}
	if a.noColor {
		cfg.Output.Color = false
	}

	level := cfg.LogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.styles = newStyles(cfg.Output.Color)
	a.cfg = cfg
	return nil
}

func (a *app) newInterpreter(stdout io.Writer) *interpreter.Interpreter {
	return interpreter.New(interpreter.Options{
		Stdout:       stdout,
		Logger:       a.log,
		MaxCallDepth: a.cfg.Interpreter.MaxCallDepth,
		MaxSteps:     a.cfg.Interpreter.MaxSteps,
	})
}

// report writes err as a source snippet to stderr.
func (a *app) report(cmd *cobra.Command, err error, name string, src []byte) error {
	w := cmd.ErrOrStderr()
	header, rest, _ := strings.Cut(errs.Snippet(err, name, string(src)), "\n")
	fmt.Fprintln(w, a.styles.errorHeader.Render(header))
	if rest != "" {
		fmt.Fprint(w, rest)
	}
	return errReported
}

func readSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return src, nil
}
