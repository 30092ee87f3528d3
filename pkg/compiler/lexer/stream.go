package lexer

// Tokens is the parser's input: a token slice consumed from the front.
// Slicing shares the backing array, so taking and splitting never copy.
type Tokens []Token

// Len returns the number of remaining tokens, EOF included.
func (ts Tokens) Len() int {
	return len(ts)
}

// Take returns the first n tokens (or all of them if fewer remain).
func (ts Tokens) Take(n int) Tokens {
	if n > len(ts) {
		n = len(ts)
	}
	return ts[:n]
}

// Split returns the first n tokens and the remainder.
func (ts Tokens) Split(n int) (Tokens, Tokens) {
	if n > len(ts) {
		n = len(ts)
	}
	return ts[:n], ts[n:]
}

// Peek returns the front token. An empty stream reports EOF.
func (ts Tokens) Peek() Token {
	if len(ts) == 0 {
		return Token{Kind: KindEOF}
	}
	return ts[0]
}

// Next splits off the front token. ok is false on an empty stream.
func (ts Tokens) Next() (tok Token, rest Tokens, ok bool) {
	if len(ts) == 0 {
		return Token{Kind: KindEOF}, ts, false
	}
	return ts[0], ts[1:], true
}

// IsDone reports whether only the EOF sentinel (or nothing) is left.
func (ts Tokens) IsDone() bool {
	return len(ts) == 0 || ts[0].Kind == KindEOF
}

// Kinds lists the kind of every remaining token.
func (ts Tokens) Kinds() []Kind {
	out := make([]Kind, len(ts))
	for i, t := range ts {
		out[i] = t.Kind
	}
	return out
}
