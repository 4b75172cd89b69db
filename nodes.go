package mathexpr

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. The set of
// node types is closed: *Constant, *Variable, *Neg, *Binary, and *Call.
// Nodes are never modified after parsing, so a tree may be shared freely.
type Node interface {
	// Token returns the token that produced the node, for error reporting.
	Token() Token
	// String formats the subtree with every term bracketed.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Constant is a numeric literal.
type Constant struct {
	Tok   Token
	Value float64
}

// Variable is a reference to a variable by name.
type Variable struct {
	Tok Token
}

// Neg is arithmetic negation. Tok is the minus sign.
type Neg struct {
	Tok Token
	X   Node
}

// Binary is one of the binary operators + - * / ^.
type Binary struct {
	Op          Token
	Left, Right Node
}

// Call is a function call with zero or more arguments.
type Call struct {
	Name Token
	Args []Node
}

func (n *Constant) Token() Token { return n.Tok }
func (n *Variable) Token() Token { return n.Tok }
func (n *Neg) Token() Token      { return n.Tok }
func (n *Binary) Token() Token   { return n.Op }
func (n *Call) Token() Token     { return n.Name }

func (n *Constant) String() string { return nodestring(n) }
func (n *Variable) String() string { return nodestring(n) }
func (n *Neg) String() string      { return nodestring(n) }
func (n *Binary) String() string   { return nodestring(n) }
func (n *Call) String() string     { return nodestring(n) }

func nodestring(n Node) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// brackets writes the opening bracket for a term and returns the closing one.
func brackets(b *strings.Builder, square bool) byte {
	if square {
		b.WriteByte('[')
		return ']'
	}
	b.WriteByte('(')
	return ')'
}

func (n *Constant) fmt(b *strings.Builder, square bool) {
	r := brackets(b, square)
	if n.Tok.Lexeme != "" {
		b.WriteString(n.Tok.Lexeme)
	} else {
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	}
	b.WriteByte(r)
}

func (n *Variable) fmt(b *strings.Builder, square bool) {
	r := brackets(b, square)
	b.WriteString(n.Tok.Lexeme)
	b.WriteByte(r)
}

func (n *Neg) fmt(b *strings.Builder, square bool) {
	r := brackets(b, square)
	b.WriteByte('-')
	n.X.fmt(b, !square)
	b.WriteByte(r)
}

func (n *Binary) fmt(b *strings.Builder, square bool) {
	r := brackets(b, square)
	n.Left.fmt(b, !square)
	b.WriteByte(' ')
	b.WriteString(n.Op.Lexeme)
	b.WriteByte(' ')
	n.Right.fmt(b, !square)
	b.WriteByte(r)
}

func (n *Call) fmt(b *strings.Builder, square bool) {
	r := brackets(b, square)
	b.WriteString(n.Name.Lexeme)
	// Argument lists use the other bracket style.
	q := brackets(b, !square)
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.fmt(b, square)
	}
	b.WriteByte(q)
	b.WriteByte(r)
}

// Walk traverses a tree in depth-first, left-to-right pre-order. If f
// returns false, the children of that node are skipped.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	switch n := n.(type) {
	case *Constant, *Variable:
		// no children
	case *Neg:
		Walk(n.X, f)
	case *Binary:
		Walk(n.Left, f)
		Walk(n.Right, f)
	case *Call:
		for _, arg := range n.Args {
			Walk(arg, f)
		}
	default:
		panic("mathexpr: invalid AST node " + n.String())
	}
}
