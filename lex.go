package mathexpr

import (
	"strconv"
	"unicode/utf8"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the lexical class of the token.
	Kind TokenKind
	// Lexeme is the exact source text of the token. It is empty for
	// TokenEOF.
	Lexeme string
	// Pos is the zero-based byte offset of the token's first character in
	// the source. The EOF token is positioned at the length of the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Lexeme + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the lexical class of a token.
type TokenKind int8

const (
	// TokenNone is the zero TokenKind. The scanner never produces it.
	TokenNone TokenKind = iota
	// TokenConstant is a numeric literal like 2, 2.4, or .4.
	TokenConstant
	// TokenIdentifier is a variable or function name.
	TokenIdentifier
	TokenAddition       // +
	TokenSubtraction    // -
	TokenMultiplication // *
	TokenDivision       // /
	TokenExponentiation // ^
	TokenLeftParen      // (
	TokenRightParen     // )
	TokenComma          // ,
	// TokenEOF marks the end of the input. It is always the last token.
	TokenEOF
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// Operators contains the bytes which scan as single-character tokens.
const Operators = "+-*/^(),"

// opkinds maps each byte of Operators to its token kind.
var opkinds = [...]TokenKind{
	TokenAddition,
	TokenSubtraction,
	TokenMultiplication,
	TokenDivision,
	TokenExponentiation,
	TokenLeftParen,
	TokenRightParen,
	TokenComma,
}

type lexer struct {
	src string
	// pos is the offset of the next unread byte.
	pos int
	// start is the offset of the token being scanned.
	start int
}

// Scan converts an expression into its tokens. The result always ends with
// a TokenEOF. If the source contains a character that cannot begin a token,
// or a malformed numeric constant, the result is nil and the error is a
// *ScanError.
func Scan(src string) ([]Token, error) {
	l := lexer{src: src}
	// Most tokens are a single byte, and operands alternate with operators.
	toks := make([]Token, 0, len(src)/2+1)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// peek returns the byte at offset k past the next unread byte, or 0 if that
// is past the end of the source.
func (l *lexer) peek(k int) byte {
	if l.pos+k >= len(l.src) {
		return 0
	}
	return l.src[l.pos+k]
}

// emit creates a token of the given kind from the scanned text.
func (l *lexer) emit(kind TokenKind) Token {
	return Token{Kind: kind, Lexeme: l.src[l.start:l.pos], Pos: l.start}
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns an EOF token.
func (l *lexer) next() (Token, error) {
	for {
		l.start = l.pos
		if l.pos >= len(l.src) {
			return Token{Kind: TokenEOF, Pos: len(l.src)}, nil
		}
		c := l.src[l.pos]
		switch {
		case c == ' ', c == '\t', c == '\n':
			l.pos++
			continue
		case isdigit(c):
			return l.scanNum()
		case c == '.':
			if !isdigit(l.peek(1)) {
				// A lone point is not the start of anything.
				return Token{}, l.error(UnknownToken)
			}
			return l.scanNum()
		case isletter(c):
			l.scanIdent()
			return l.emit(TokenIdentifier), nil
		}
		for i := 0; i < len(Operators); i++ {
			if Operators[i] == c {
				l.pos++
				return l.emit(opkinds[i]), nil
			}
		}
		return Token{}, l.error(UnknownToken)
	}
}

// scanNum scans a numeric constant. The next unread byte must be a digit or
// a point followed by a digit. At most one point is consumed, so 2.4.3 scans
// as 2.4 followed by .3, but a point that is not followed by a digit is an
// error.
func (l *lexer) scanNum() (Token, error) {
	frac := l.src[l.pos] == '.'
	if frac {
		l.pos++
	}
	for isdigit(l.peek(0)) {
		l.pos++
	}
	if !frac && l.peek(0) == '.' {
		if !isdigit(l.peek(1)) {
			return Token{}, l.error(InvalidConstantFormat)
		}
		l.pos++
		for isdigit(l.peek(0)) {
			l.pos++
		}
	}
	return l.emit(TokenConstant), nil
}

// scanIdent scans an identifier. The next unread byte must be a letter.
func (l *lexer) scanIdent() {
	for l.pos < len(l.src) && (isletter(l.src[l.pos]) || isdigit(l.src[l.pos])) {
		l.pos++
	}
}

// error creates a scan error. Unknown tokens are reported at the offending
// character, while invalid constants are reported at the constant's start.
func (l *lexer) error(kind ScanErrorKind) error {
	err := ScanError{Kind: kind, Col: l.pos}
	switch kind {
	case UnknownToken:
		// Include the whole rune so that it shows up in the error message.
		_, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		err.Text = l.src[l.pos : l.pos+sz]
	case InvalidConstantFormat:
		err.Col = l.start
		err.Text = l.src[l.start : l.pos+1]
	}
	return &err
}

func isdigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isletter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
