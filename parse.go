package mathexpr

import (
	"errors"
	"strconv"
	"strings"
)

// Expression = Addition
// Addition = Multiplication { ('+' | '-') Multiplication }
// Multiplication = Exponent { ('*' | '/') Exponent }
// Exponent = Unary [ '^' Exponent ]
// Unary = '-' Unary | Primary
// Primary = constant | identifier [ '(' [ ArgList ] ')' ] | '(' Expression ')'
// ArgList = Expression { ',' Expression }

// Expr is a parsed expression that can be evaluated in an environment. An
// Expr is immutable, so it is safe to evaluate concurrently, provided each
// concurrent evaluation uses an environment that is not being modified.
type Expr struct {
	// root is the root node of the expression.
	root Node
	// names is the list of variable names used in the expression.
	names []string
	// funcs is the list of function names called in the expression.
	funcs []string
}

type parser struct {
	toks []Token
	cur  int
	// names and funcs are the sets of identifiers seen this parse.
	names map[string]bool
	funcs map[string]bool
}

// Parse parses a sequence of tokens, normally produced by Scan, into an
// expression. The entire sequence must form a single expression. If toks
// does not end with a TokenEOF, Parse behaves as though one followed the
// last token. If the tokens are not a valid expression, the error is a
// *ParseError.
func Parse(toks []Token) (*Expr, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOF {
		end := 0
		if len(toks) > 0 {
			last := toks[len(toks)-1]
			end = last.Pos + len(last.Lexeme)
		}
		toks = append(toks[:len(toks):len(toks)], Token{Kind: TokenEOF, Pos: end})
	}
	p := parser{
		toks:  toks,
		names: make(map[string]bool),
		funcs: make(map[string]bool),
	}
	n, err := p.parseaddition()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
	}
	if p.cur != len(toks)-1 {
		// An EOF token in the middle of the sequence.
		return nil, &ParseError{Kind: UnexpectedToken, Token: toks[p.cur+1]}
	}
	ex := Expr{
		root:  n,
		names: setnames(p.names),
		funcs: setnames(p.funcs),
	}
	return &ex, nil
}

// ParseString is a shortcut to scan and parse an expression.
func ParseString(src string) (*Expr, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func setnames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// peek returns the lookahead token. Once the EOF token is reached, it is
// returned forever.
func (p *parser) peek() Token {
	return p.toks[p.cur]
}

// match consumes the lookahead token if it has any of the given kinds.
func (p *parser) match(kinds ...TokenKind) (Token, bool) {
	tok := p.peek()
	for _, k := range kinds {
		if tok.Kind == k {
			if tok.Kind != TokenEOF {
				p.cur++
			}
			return tok, true
		}
	}
	return tok, false
}

// expect consumes a token of the given kind or fails with an error of the
// given kind citing the lookahead.
func (p *parser) expect(kind TokenKind, fail ParseErrorKind) error {
	if tok, ok := p.match(kind); !ok {
		return &ParseError{Kind: fail, Token: tok}
	}
	return nil
}

// parseaddition parses a left-associative chain of additions and
// subtractions.
func (p *parser) parseaddition() (Node, error) {
	return p.parsechain(p.parsemultiplication, TokenAddition, TokenSubtraction)
}

// parsemultiplication parses a left-associative chain of multiplications and
// divisions.
func (p *parser) parsemultiplication() (Node, error) {
	return p.parsechain(p.parseexponent, TokenMultiplication, TokenDivision)
}

// parsechain parses operands with sub separated by any of the operators ops,
// building a left-leaning tree.
func (p *parser) parsechain(sub func() (Node, error), ops ...TokenKind) (Node, error) {
	n, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(ops...)
		if !ok {
			return n, nil
		}
		rhs, err := sub()
		if err != nil {
			return nil, err
		}
		n = &Binary{Op: op, Left: n, Right: rhs}
	}
}

// parseexponent parses an exponentiation. It recurses on itself for the
// exponent, so a^b^c is a^(b^c).
func (p *parser) parseexponent() (Node, error) {
	n, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	op, ok := p.match(TokenExponentiation)
	if !ok {
		return n, nil
	}
	rhs, err := p.parseexponent()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, Left: n, Right: rhs}, nil
}

// parseunary parses any number of negations of a primary term. Negation
// binds tighter than any binary operator, so -2^2 is (-2)^2.
func (p *parser) parseunary() (Node, error) {
	op, ok := p.match(TokenSubtraction)
	if !ok {
		return p.parseprimary()
	}
	x, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	return &Neg{Tok: op, X: x}, nil
}

// parseprimary parses a constant, a variable, a call, or a parenthesized
// expression.
func (p *parser) parseprimary() (Node, error) {
	tok, _ := p.match(TokenConstant, TokenIdentifier, TokenLeftParen)
	switch tok.Kind {
	case TokenConstant:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			// Out of range constants are ±Inf with an error; keep the value.
			if !errors.Is(err, strconv.ErrRange) {
				return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
			}
		}
		return &Constant{Tok: tok, Value: v}, nil
	case TokenIdentifier:
		if _, ok := p.match(TokenLeftParen); ok {
			return p.parsecall(tok)
		}
		p.names[tok.Lexeme] = true
		return &Variable{Tok: tok}, nil
	case TokenLeftParen:
		n, err := p.parseaddition()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen, ExpectRightParen); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
	}
}

// parsecall parses the argument list of a call to name. The open
// parenthesis is already consumed.
func (p *parser) parsecall(name Token) (Node, error) {
	p.funcs[name.Lexeme] = true
	n := &Call{Name: name}
	if _, ok := p.match(TokenRightParen); ok {
		// Niladic call.
		return n, nil
	}
	for {
		arg, err := p.parseaddition()
		if err != nil {
			return nil, err
		}
		n.Args = append(n.Args, arg)
		if _, ok := p.match(TokenComma); !ok {
			break
		}
	}
	if err := p.expect(TokenRightParen, IncompleteCall); err != nil {
		return nil, err
	}
	return n, nil
}

// Root returns the root node of the expression's syntax tree.
func (e *Expr) Root() Node {
	return e.root
}

// Vars returns the variable names used when evaluating the expression, in
// sorted order.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Funcs returns the function names called when evaluating the expression,
// in sorted order.
func (e *Expr) Funcs() []string {
	return append(([]string)(nil), e.funcs...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.root.fmt(&b, false)
	return b.String()
}
