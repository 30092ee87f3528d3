package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/agenthands/asa/pkg/compiler/parser"
	"github.com/agenthands/asa/pkg/interpreter"
)

const (
	promptCont = "...  "
	replName   = "<repl>"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd)
		},
	}
}

func (a *app) repl(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.styles.muted.Render("asa "+Version+" REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit."))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := a.cfg.HistoryPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			a.log.Warn("cannot save history", "path", histPath, "error", err)
		}
	}()

	in := a.newInterpreter(out)
	for {
		code, ok := readByParseProbe(ln, a.cfg.REPL.Prompt, promptCont)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := a.replCommand(out, in, trimmed); quit {
				return nil
			}
			continue
		}
		a.evalLine(cmd, in, code)
	}
}

// replCommand handles ":" commands and reports whether the session ends.
func (a *app) replCommand(out io.Writer, in *interpreter.Interpreter, line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":q":
		return true
	case ":reset":
		in.Reset()
		fmt.Fprintln(out, a.styles.muted.Render("bindings cleared"))
	default:
		fmt.Fprintln(out, "unknown command. Commands: :reset, :quit")
	}
	return false
}

// evalLine runs one complete input against the session's interpreter and
// prints its value. Failures are reported and the session continues.
func (a *app) evalLine(cmd *cobra.Command, in *interpreter.Interpreter, code string) {
	prog, err := parser.Parse([]byte(code))
	if err != nil {
		_ = a.report(cmd, err, replName, []byte(code))
		return
	}
	v, err := in.Exec(prog)
	if err != nil {
		_ = a.report(cmd, err, replName, []byte(code))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.styles.result.Render(v.Debug()))
}

// readByParseProbe keeps prompting while the buffered input ends in the
// middle of a construct.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse([]byte(src)); parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
