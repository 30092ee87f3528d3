package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	// Keywords
	KindTrue
	KindFalse
	KindFn
	KindReturn
	KindLet
	KindIf
	KindElse
	KindWhile
	KindBreak
	KindContinue
	// Character classes
	KindAlpha
	KindDigit
	// Punctuation and operators
	KindLeftParen    // (
	KindRightParen   // )
	KindLeftCurly    // {
	KindRightCurly   // }
	KindLeftBracket  // [
	KindRightBracket // ]
	KindEqual        // =
	KindEqualEqual   // ==
	KindNotEqual     // !=
	KindGreater      // >
	KindLess         // <
	KindGreaterEqual // >=
	KindLessEqual    // <=
	KindLogicalAnd   // &&
	KindLogicalOr    // ||
	KindNot          // !
	KindPlus         // +
	KindDash         // -
	KindMultiply     // *
	KindSlash        // /
	KindExponent     // ^
	KindModulus      // %
	KindComma        // ,
	KindSemicolon    // ;
	KindDot          // .
	KindQuote        // unterminated "
	KindStringLiteral
	KindWhiteSpace
	KindOther
)

var kindNames = [...]string{
	KindEOF:           "EOF",
	KindTrue:          "true",
	KindFalse:         "false",
	KindFn:            "fn",
	KindReturn:        "return",
	KindLet:           "let",
	KindIf:            "if",
	KindElse:          "else",
	KindWhile:         "while",
	KindBreak:         "break",
	KindContinue:      "continue",
	KindAlpha:         "Alpha",
	KindDigit:         "Digit",
	KindLeftParen:     "(",
	KindRightParen:    ")",
	KindLeftCurly:     "{",
	KindRightCurly:    "}",
	KindLeftBracket:   "[",
	KindRightBracket:  "]",
	KindEqual:         "=",
	KindEqualEqual:    "==",
	KindNotEqual:      "!=",
	KindGreater:       ">",
	KindLess:          "<",
	KindGreaterEqual:  ">=",
	KindLessEqual:     "<=",
	KindLogicalAnd:    "&&",
	KindLogicalOr:     "||",
	KindNot:           "!",
	KindPlus:          "+",
	KindDash:          "-",
	KindMultiply:      "*",
	KindSlash:         "/",
	KindExponent:      "^",
	KindModulus:       "%",
	KindComma:         ",",
	KindSemicolon:     ";",
	KindDot:           ".",
	KindQuote:         "\"",
	KindStringLiteral: "String",
	KindWhiteSpace:    "WhiteSpace",
	KindOther:         "Other",
}

// String returns the canonical spelling for keywords and operators and a
// class name for everything else.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= KindTrue && k <= KindContinue
}

// Token represents a lexical unit with its source position.
// Lines and columns are 1-based and inclusive.
type Token struct {
	Kind      Kind
	Lexeme    []byte
	StartLine int
	EndLine   int
	StartCol  int
	EndCol    int
}

// Text returns the lexeme as a string. For keywords use Kind.String.
func (t Token) Text() string {
	return string(t.Lexeme)
}
