package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Positioned is a failure that points into the source text.
type Positioned interface {
	error
	Position() (line, col int)
	Summary() string
}

// Snippet renders err with the offending source line, one line of context on
// either side and a caret under the column. Errors without a position are
// returned as their plain message.
func Snippet(err error, name, src string) string {
	var p Positioned
	if !errors.As(err, &p) {
		return err.Error()
	}
	header := "PARSE ERROR"
	var re *Error
	if errors.As(err, &re) {
		header = "RUNTIME ERROR"
	}
	line, col := p.Position()
	if line == 0 {
		if name != "" {
			return fmt.Sprintf("%s in %s: %s\n", header, name, p.Summary())
		}
		return fmt.Sprintf("%s: %s\n", header, p.Summary())
	}
	return render(src, header, name, line, col, p.Summary())
}

func render(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
