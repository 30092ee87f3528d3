package lexer

import (
	"bytes"
)

// keywords is checked in order at every letter position. A match relabels the
// position and consumes the whole spelling, even inside a longer word.
var keywords = []struct {
	spelling []byte
	kind     Kind
}{
	{[]byte("if"), KindIf},
	{[]byte("else"), KindElse},
	{[]byte("while"), KindWhile},
	{[]byte("fn"), KindFn},
	{[]byte("true"), KindTrue},
	{[]byte("false"), KindFalse},
	{[]byte("break"), KindBreak},
	{[]byte("continue"), KindContinue},
	{[]byte("let"), KindLet},
	{[]byte("return"), KindReturn},
}

// Scanner performs lexical analysis on asa source.
type Scanner struct {
	source []byte
	cursor int
	line   int
	col    int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		col:    1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.col = 1
}

// Lex scans the whole source and returns the token stream with whitespace
// removed. It never fails: bytes it does not understand become KindOther.
func Lex(source []byte) Tokens {
	s := NewScanner(source)
	toks := make(Tokens, 0, len(source)+1)
	for {
		tok := s.Next()
		if tok.Kind == KindWhiteSpace {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

// Next returns the next raw token, including whitespace. Once the source is
// exhausted it keeps returning EOF.
func (s *Scanner) Next() Token {
	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, StartLine: s.line, EndLine: s.line, StartCol: s.col, EndCol: s.col}
	}

	ch := s.source[s.cursor]
	if ch == '"' {
		return s.scanString()
	}

	kind, width := s.classify(ch)
	if kind == KindAlpha {
		if kw, n := matchKeyword(s.source[s.cursor:]); n > 0 {
			kind, width = kw, n
		}
	}
	return s.emit(kind, s.cursor, width)
}

func (s *Scanner) classify(ch byte) (Kind, int) {
	switch {
	case isDigit(ch):
		return KindDigit, 1
	case isAlpha(ch):
		return KindAlpha, 1
	}

	switch ch {
	case ' ', '\t', '\n', '\r':
		return KindWhiteSpace, 1
	case '=':
		if s.peek() == '=' {
			return KindEqualEqual, 2
		}
		return KindEqual, 1
	case '>':
		if s.peek() == '=' {
			return KindGreaterEqual, 2
		}
		return KindGreater, 1
	case '<':
		if s.peek() == '=' {
			return KindLessEqual, 2
		}
		return KindLess, 1
	case '!':
		if s.peek() == '=' {
			return KindNotEqual, 2
		}
		return KindNot, 1
	case '&':
		if s.peek() == '&' {
			return KindLogicalAnd, 2
		}
		return KindOther, 1
	case '|':
		if s.peek() == '|' {
			return KindLogicalOr, 2
		}
		return KindOther, 1
	case ';':
		return KindSemicolon, 1
	case ',':
		return KindComma, 1
	case '.':
		return KindDot, 1
	case '{':
		return KindLeftCurly, 1
	case '}':
		return KindRightCurly, 1
	case '(':
		return KindLeftParen, 1
	case ')':
		return KindRightParen, 1
	case '[':
		return KindLeftBracket, 1
	case ']':
		return KindRightBracket, 1
	case '+':
		return KindPlus, 1
	case '-':
		return KindDash, 1
	case '*':
		return KindMultiply, 1
	case '/':
		return KindSlash, 1
	case '^':
		return KindExponent, 1
	case '%':
		return KindModulus, 1
	}
	return KindOther, 1
}

// scanString reads a double-quoted literal that must close on the same line.
// Without a closing quote only the quote itself is emitted.
func (s *Scanner) scanString() Token {
	start := s.cursor
	end := start + 1
	for end < len(s.source) && s.source[end] != '"' && s.source[end] != '\n' {
		end++
	}
	if end >= len(s.source) || s.source[end] != '"' {
		return s.emit(KindQuote, start, 1)
	}

	tok := Token{
		Kind:      KindStringLiteral,
		Lexeme:    s.source[start+1 : end],
		StartLine: s.line,
		EndLine:   s.line,
		StartCol:  s.col,
		EndCol:    s.col + end - start,
	}
	s.advance(end - start + 1)
	return tok
}

func (s *Scanner) emit(kind Kind, start, width int) Token {
	tok := Token{
		Kind:      kind,
		Lexeme:    s.source[start : start+width],
		StartLine: s.line,
		EndLine:   s.line,
		StartCol:  s.col,
		EndCol:    s.col + width - 1,
	}
	s.advance(width)
	return tok
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n && s.cursor < len(s.source); i++ {
		if s.source[s.cursor] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.cursor++
	}
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func matchKeyword(rest []byte) (Kind, int) {
	kind, width := KindAlpha, 0
	for _, kw := range keywords {
		if bytes.HasPrefix(rest, kw.spelling) {
			kind, width = kw.kind, len(kw.spelling)
		}
	}
	return kind, width
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
