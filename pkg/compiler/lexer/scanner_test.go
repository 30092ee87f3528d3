package lexer_test

import (
	"reflect"
	"testing"

	"github.com/agenthands/asa/pkg/compiler/lexer"
)

func kinds(src string) []lexer.Kind {
	return lexer.Lex([]byte(src)).Kinds()
}

func TestScannerZeroAlloc(t *testing.T) {
	src := []byte(`let x = a + 1; // This is a comment "with a string"`)
	s := lexer.NewScanner(src)

	allocs := testing.AllocsPerRun(10, func() {
		s.Reset(src)
		for {
			tok := s.Next()
			if tok.Kind == lexer.KindEOF {
				break
			}
		}
	})

	if allocs > 0 {
		t.Errorf("expected 0 allocations, got %f", allocs)
	}
}

func TestLexKinds(t *testing.T) {
	A, D := lexer.KindAlpha, lexer.KindDigit
	tests := []struct {
		name string
		src  string
		want []lexer.Kind
	}{
		{"digits", "123", []lexer.Kind{D, D, D, lexer.KindEOF}},
		{"letters", "abc", []lexer.Kind{A, A, A, lexer.KindEOF}},
		{"words", "hello world", []lexer.Kind{A, A, A, A, A, A, A, A, A, A, lexer.KindEOF}},
		{"true", "true", []lexer.Kind{lexer.KindTrue, lexer.KindEOF}},
		{"false", "false", []lexer.Kind{lexer.KindFalse, lexer.KindEOF}},
		{"empty", "", []lexer.Kind{lexer.KindEOF}},
		{"blank", " \n\t\r ", []lexer.Kind{lexer.KindEOF}},
		{"let", "let x = 123;", []lexer.Kind{
			lexer.KindLet, A, lexer.KindEqual, D, D, D, lexer.KindSemicolon, lexer.KindEOF,
		}},
		{"fn main", "fn main() {}", []lexer.Kind{
			lexer.KindFn, A, A, A, A,
			lexer.KindLeftParen, lexer.KindRightParen, lexer.KindLeftCurly, lexer.KindRightCurly,
			lexer.KindEOF,
		}},
		{"compound operators", "== != <= >= && || = < > !", []lexer.Kind{
			lexer.KindEqualEqual, lexer.KindNotEqual, lexer.KindLessEqual, lexer.KindGreaterEqual,
			lexer.KindLogicalAnd, lexer.KindLogicalOr, lexer.KindEqual, lexer.KindLess,
			lexer.KindGreater, lexer.KindNot, lexer.KindEOF,
		}},
		{"lone ampersand and pipe", "& |", []lexer.Kind{lexer.KindOther, lexer.KindOther, lexer.KindEOF}},
		{"arithmetic", "+-*/^%", []lexer.Kind{
			lexer.KindPlus, lexer.KindDash, lexer.KindMultiply, lexer.KindSlash,
			lexer.KindExponent, lexer.KindModulus, lexer.KindEOF,
		}},
		{"arrays", "a[0].b,", []lexer.Kind{
			A, lexer.KindLeftBracket, D, lexer.KindRightBracket, lexer.KindDot, A, lexer.KindComma, lexer.KindEOF,
		}},
		{"string", `"hi there"`, []lexer.Kind{lexer.KindStringLiteral, lexer.KindEOF}},
		{"unterminated string", "\"ab\ncd\"", []lexer.Kind{
			lexer.KindQuote, A, A, lexer.KindQuote, lexer.KindEOF,
		}},
		{"all keywords", "if else while fn true false break continue let return", []lexer.Kind{
			lexer.KindIf, lexer.KindElse, lexer.KindWhile, lexer.KindFn, lexer.KindTrue,
			lexer.KindFalse, lexer.KindBreak, lexer.KindContinue, lexer.KindLet, lexer.KindReturn,
			lexer.KindEOF,
		}},
		{"keyword inside word", "diff", []lexer.Kind{A, lexer.KindIf, A, lexer.KindEOF}},
		{"non ascii", "\xc3\xa9", []lexer.Kind{lexer.KindOther, lexer.KindOther, lexer.KindEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestLexFunctionBody(t *testing.T) {
	src := "fn foo(a,b,c) {\n  let x=a+1;\n\tlet y=bar(c-b);\n  return x+y;\n}"
	A := lexer.KindAlpha
	want := []lexer.Kind{
		lexer.KindFn, A, A, A, lexer.KindLeftParen, A, lexer.KindComma, A, lexer.KindComma, A,
		lexer.KindRightParen, lexer.KindLeftCurly,
		lexer.KindLet, A, lexer.KindEqual, A, lexer.KindPlus, lexer.KindDigit, lexer.KindSemicolon,
		lexer.KindLet, A, lexer.KindEqual, A, A, A, lexer.KindLeftParen, A, lexer.KindDash, A,
		lexer.KindRightParen, lexer.KindSemicolon,
		lexer.KindReturn, A, lexer.KindPlus, A, lexer.KindSemicolon,
		lexer.KindRightCurly, lexer.KindEOF,
	}
	if got := kinds(src); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v\nwant %v", got, want)
	}
}

func TestLexPositions(t *testing.T) {
	toks := lexer.Lex([]byte("let ab == \"s\"\n  return"))

	type pos struct{ sl, el, sc, ec int }
	want := []struct {
		kind   lexer.Kind
		lexeme string
		pos    pos
	}{
		{lexer.KindLet, "let", pos{1, 1, 1, 3}},
		{lexer.KindAlpha, "a", pos{1, 1, 5, 5}},
		{lexer.KindAlpha, "b", pos{1, 1, 6, 6}},
		{lexer.KindEqualEqual, "==", pos{1, 1, 8, 9}},
		{lexer.KindStringLiteral, "s", pos{1, 1, 11, 13}},
		{lexer.KindReturn, "return", pos{2, 2, 3, 8}},
		{lexer.KindEOF, "", pos{2, 2, 9, 9}},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks.Kinds())
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Kind != w.kind || tok.Text() != w.lexeme {
			t.Errorf("token %d: got %v %q, want %v %q", i, tok.Kind, tok.Text(), w.kind, w.lexeme)
		}
		got := pos{tok.StartLine, tok.EndLine, tok.StartCol, tok.EndCol}
		if got != w.pos {
			t.Errorf("token %d (%v): got position %+v, want %+v", i, tok.Kind, got, w.pos)
		}
	}
}

func TestLexOneTokenPerByte(t *testing.T) {
	srcs := []string{"a+b*(c-1)", "x<=y||!z", "[1,2,3].length", "if(a){b=c;}"}
	for _, src := range srcs {
		toks := lexer.Lex([]byte(src))
		consumed := 0
		for _, tok := range toks {
			consumed += len(tok.Lexeme)
		}
		if consumed != len(src) {
			t.Errorf("%q: tokens cover %d bytes, want %d", src, consumed, len(src))
		}
		if toks[len(toks)-1].Kind != lexer.KindEOF {
			t.Errorf("%q: stream does not end with EOF", src)
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == lexer.KindEOF || tok.Kind == lexer.KindWhiteSpace {
				t.Errorf("%q: unexpected %v token in stream", src, tok.Kind)
			}
		}
	}
}

func TestTokensStream(t *testing.T) {
	toks := lexer.Lex([]byte("1+2"))
	if toks.Len() != 4 {
		t.Fatalf("expected 4 tokens, got %d", toks.Len())
	}

	head, rest := toks.Split(2)
	if head.Len() != 2 || rest.Len() != 2 {
		t.Errorf("Split(2) = %d, %d", head.Len(), rest.Len())
	}
	if got := toks.Take(10).Len(); got != 4 {
		t.Errorf("Take past end = %d, want 4", got)
	}
	if rest.IsDone() {
		t.Errorf("rest should still hold a digit")
	}

	tok, rest, ok := rest.Next()
	if !ok || tok.Kind != lexer.KindDigit {
		t.Errorf("Next() = %v, %v", tok.Kind, ok)
	}
	if !rest.IsDone() {
		t.Errorf("only EOF should remain")
	}
	if !(lexer.Tokens{}).IsDone() {
		t.Errorf("empty stream should be done")
	}
	if (lexer.Tokens{}).Peek().Kind != lexer.KindEOF {
		t.Errorf("empty stream should peek EOF")
	}
}

func FuzzLex(f *testing.F) {
	f.Add([]byte(`fn main() { let s = "hi"; return s[0]; }`))
	f.Add([]byte("a &| b\r\n\"open"))
	f.Add([]byte{0xff, 0xc3, '"', 0xa9, '"'})

	f.Fuzz(func(t *testing.T, src []byte) {
		toks := lexer.Lex(src)
		if toks.Len() == 0 || toks[toks.Len()-1].Kind != lexer.KindEOF {
			t.Fatalf("stream does not end with EOF: %v", toks.Kinds())
		}
		covered := 0
		prevLine, prevCol := 1, 0
		for _, tok := range toks[:toks.Len()-1] {
			if tok.Kind == lexer.KindEOF || tok.Kind == lexer.KindWhiteSpace {
				t.Fatalf("unexpected %v token before the end", tok.Kind)
			}
			if tok.StartLine < prevLine || (tok.StartLine == prevLine && tok.StartCol <= prevCol) {
				t.Fatalf("token at %d:%d does not follow %d:%d", tok.StartLine, tok.StartCol, prevLine, prevCol)
			}
			prevLine, prevCol = tok.StartLine, tok.StartCol
			covered += len(tok.Lexeme)
			if tok.Kind == lexer.KindStringLiteral {
				covered += 2
			}
		}
		if covered > len(src) {
			t.Fatalf("tokens cover %d bytes of %d", covered, len(src))
		}
	})
}
