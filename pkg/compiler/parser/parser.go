package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/compiler/lexer"
)

// ParseError reports the token at which parsing could not continue.
type ParseError struct {
	Tok  lexer.Token
	Line int
	Col  int
	Msg  string

	remaining int // tokens left when the error was raised; fewer is further
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Col)
}

func (e *ParseError) Position() (line, col int) { return e.Line, e.Col }
func (e *ParseError) Summary() string           { return e.Msg }

// IsIncomplete reports whether err was raised at end of input, so that more
// source could still complete the program.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Tok.Kind == lexer.KindEOF
}

// Rule is a grammar rule. On success it returns the unconsumed tokens and the
// node it built. On failure it returns its input unchanged so another
// alternative can be tried.
type Rule func(lexer.Tokens) (lexer.Tokens, ast.Node, error)

// Parser holds the rule set. The only state is the furthest failure seen,
// which becomes the reported error when no alternative matches.
type Parser struct {
	furthest *ParseError
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse lexes and parses a complete program.
func Parse(src []byte) (*ast.Program, error) {
	return NewParser().Parse(lexer.Lex(src))
}

func (p *Parser) Parse(ts lexer.Tokens) (*ast.Program, error) {
	p.furthest = nil
	_, node, err := p.Program(ts)
	if err != nil {
		return nil, err
	}
	return node.(*ast.Program), nil
}

// Program = { function_define | statement | expression [";"] | comment }
func (p *Parser) Program(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	prog := &ast.Program{Token: ts.Peek()}
	rest, children := p.many0(ts, p.topLevel)
	prog.Children = children
	if !rest.IsDone() {
		return ts, nil, p.stuck(rest)
	}
	return rest, prog, nil
}

func (p *Parser) topLevel(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	switch leading(ts) {
	case lexer.KindFn:
		return p.FunctionDefine(ts)
	case lexer.KindSlash:
		return p.Comment(ts)
	}
	return p.alt(ts, p.Statement, p.optTerminated(p.Expression))
}

// stuck reports why parsing stopped at rest: the furthest failure if some
// alternative got past rest, otherwise the token at rest itself.
func (p *Parser) stuck(rest lexer.Tokens) error {
	if p.furthest != nil && p.furthest.remaining < len(rest) {
		return p.furthest
	}
	return p.errorAt(rest, "unexpected "+describe(rest.Peek()))
}

// alt tries each rule in order and returns the first success. If all fail it
// returns the failure that got furthest.
func (p *Parser) alt(ts lexer.Tokens, rules ...Rule) (lexer.Tokens, ast.Node, error) {
	var best *ParseError
	var last error
	for _, r := range rules {
		rest, n, err := r(ts)
		if err == nil {
			return rest, n, nil
		}
		last = err
		if pe, ok := err.(*ParseError); ok && (best == nil || pe.remaining < best.remaining) {
			best = pe
		}
	}
	if best != nil {
		return ts, nil, best
	}
	return ts, nil, last
}

// many0 applies r until it fails or stops consuming input.
func (p *Parser) many0(ts lexer.Tokens, r Rule) (lexer.Tokens, []ast.Node) {
	var nodes []ast.Node
	for !ts.IsDone() {
		rest, n, err := r(ts)
		if err != nil || len(rest) == len(ts) {
			break
		}
		nodes = append(nodes, n)
		ts = rest
	}
	return ts, nodes
}

// terminated requires a ";" after r.
func (p *Parser) terminated(r Rule) Rule {
	return func(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
		rest, n, err := r(ts)
		if err != nil {
			return ts, nil, err
		}
		if _, rest, err = p.expect(rest, lexer.KindSemicolon); err != nil {
			return ts, nil, err
		}
		return rest, n, nil
	}
}

// optTerminated consumes a ";" after r when one is present.
func (p *Parser) optTerminated(r Rule) Rule {
	return func(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
		rest, n, err := r(ts)
		if err != nil {
			return ts, nil, err
		}
		if rest.Peek().Kind == lexer.KindSemicolon {
			rest = rest[1:]
		}
		return rest, n, nil
	}
}

func (p *Parser) expect(ts lexer.Tokens, kind lexer.Kind) (lexer.Token, lexer.Tokens, error) {
	tok := ts.Peek()
	if tok.Kind != kind {
		return tok, ts, p.fail(ts, "expected %q", kind.String())
	}
	return tok, ts[1:], nil
}

// fail records an "expected ..., found ..." error at the front of ts.
func (p *Parser) fail(ts lexer.Tokens, format string, args ...any) *ParseError {
	return p.errorAt(ts, fmt.Sprintf(format, args...)+", found "+describe(ts.Peek()))
}

func (p *Parser) errorAt(ts lexer.Tokens, msg string) *ParseError {
	tok := ts.Peek()
	switch {
	case tok.Kind == lexer.KindOther:
		msg = unexpectedByte(tok)
	case tok.Kind == lexer.KindQuote:
		msg = "unterminated string literal"
	case tok.Kind == lexer.KindStringLiteral && !utf8.Valid(tok.Lexeme):
		msg = "string literal is not valid UTF-8"
	}
	e := &ParseError{Tok: tok, Line: tok.StartLine, Col: tok.StartCol, Msg: msg, remaining: len(ts)}
	if p.furthest == nil || e.remaining < p.furthest.remaining {
		p.furthest = e
	}
	return e
}

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.KindEOF:
		return "end of input"
	case lexer.KindStringLiteral:
		return "string literal"
	case lexer.KindAlpha, lexer.KindDigit, lexer.KindOther:
		return fmt.Sprintf("%q", tok.Text())
	}
	return fmt.Sprintf("%q", tok.Kind.String())
}

func unexpectedByte(tok lexer.Token) string {
	if len(tok.Lexeme) == 0 {
		return "unexpected character"
	}
	b := tok.Lexeme[0]
	if b >= utf8.RuneSelf {
		return fmt.Sprintf("unexpected non-ASCII byte 0x%02x", b)
	}
	return fmt.Sprintf("unexpected character %q", rune(b))
}

// adjacent reports whether b starts right after a ends on the same line.
func adjacent(a, b lexer.Token) bool {
	return b.StartLine == a.EndLine && b.StartCol == a.EndCol+1
}

// Comment = "/" "/" { token on the same source line }
func (p *Parser) Comment(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	first, rest, err := p.expect(ts, lexer.KindSlash)
	if err != nil {
		return ts, nil, err
	}
	second, rest, err := p.expect(rest, lexer.KindSlash)
	if err != nil || !adjacent(first, second) {
		return ts, nil, p.fail(ts, "expected comment")
	}
	for !rest.IsDone() && rest[0].StartLine == second.StartLine {
		rest = rest[1:]
	}
	return rest, &ast.Null{Token: first}, nil
}

// Identifier = Alpha { Alpha | Digit }
//
// Keywords lexed inside a longer word ("diff", "often", "letter") are folded
// back into the name.
func (p *Parser) Identifier(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	id, rest, err := p.identifier(ts)
	if err != nil {
		return ts, nil, err
	}
	return rest, id, nil
}

func (p *Parser) identifier(ts lexer.Tokens) (*ast.Identifier, lexer.Tokens, error) {
	first := ts.Peek()
	if leading(ts) != lexer.KindAlpha {
		return nil, ts, p.fail(ts, "expected identifier")
	}
	var name strings.Builder
	name.Write(first.Lexeme)
	last, rest := first, ts[1:]
	for len(rest) > 0 && adjacent(last, rest[0]) && isNamePart(rest[0].Kind) {
		last = rest[0]
		name.Write(last.Lexeme)
		rest = rest[1:]
	}
	return &ast.Identifier{Token: first, Name: name.String()}, rest, nil
}

func isNamePart(k lexer.Kind) bool {
	return k == lexer.KindAlpha || k == lexer.KindDigit || k.IsKeyword()
}

// leading returns the kind that decides how ts is parsed. A keyword glued to
// further name characters ("letter", "iffy") starts an identifier.
func leading(ts lexer.Tokens) lexer.Kind {
	first := ts.Peek()
	if first.Kind.IsKeyword() && len(ts) > 1 && adjacent(first, ts[1]) && isNamePart(ts[1].Kind) {
		return lexer.KindAlpha
	}
	return first.Kind
}

// Number = Digit { Digit }
func (p *Parser) Number(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	first := ts.Peek()
	if first.Kind != lexer.KindDigit {
		return ts, nil, p.fail(ts, "expected number")
	}
	var digits strings.Builder
	digits.Write(first.Lexeme)
	last, rest := first, ts[1:]
	for len(rest) > 0 && rest[0].Kind == lexer.KindDigit && adjacent(last, rest[0]) {
		last = rest[0]
		digits.Write(last.Lexeme)
		rest = rest[1:]
	}
	return rest, &ast.Number{Token: first, Digits: digits.String()}, nil
}

func (p *Parser) Boolean(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	tok := ts.Peek()
	switch tok.Kind {
	case lexer.KindTrue:
		return ts[1:], &ast.Bool{Token: tok, Value: true}, nil
	case lexer.KindFalse:
		return ts[1:], &ast.Bool{Token: tok, Value: false}, nil
	}
	return ts, nil, p.fail(ts, "expected boolean")
}

func (p *Parser) String(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	tok := ts.Peek()
	if tok.Kind != lexer.KindStringLiteral || !utf8.Valid(tok.Lexeme) {
		return ts, nil, p.fail(ts, "expected string literal")
	}
	return ts[1:], &ast.String{Token: tok, Value: string(tok.Lexeme)}, nil
}
