package mathexpr

import "strconv"

// ScanErrorKind classifies a ScanError.
type ScanErrorKind int8

const (
	// UnknownToken is a character that cannot begin any token, including a
	// point that is not followed by a digit.
	UnknownToken ScanErrorKind = iota + 1
	// InvalidConstantFormat is a numeric constant with a trailing point.
	InvalidConstantFormat
)

func (k ScanErrorKind) String() string {
	switch k {
	case UnknownToken:
		return "unknown token"
	case InvalidConstantFormat:
		return "invalid constant format"
	default:
		return "ScanErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ScanError indicates invalid input to the scanner. It implements
// InputError.
type ScanError struct {
	// Kind is the kind of failure.
	Kind ScanErrorKind
	// Col is the byte offset of the error. For UnknownToken, this is the
	// offending character. For InvalidConstantFormat, it is the start of the
	// constant.
	Col int
	// Text is the offending character or the malformed constant.
	Text string
}

func (err *ScanError) Error() string {
	return errpos(err.Col, err.Kind.String()+" "+strconv.Quote(err.Text))
}

func (err *ScanError) Pos() int {
	return err.Col
}

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int8

const (
	// UnexpectedToken is a token where no expression can begin, or input
	// remaining after a complete expression.
	UnexpectedToken ParseErrorKind = iota + 1
	// ExpectRightParen is a parenthesized expression that is not closed.
	ExpectRightParen
	// IncompleteCall is a function call whose argument list is not closed.
	IncompleteCall
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case ExpectRightParen:
		return "expected ')' after expression"
	case IncompleteCall:
		return "incomplete function call"
	default:
		return "ParseErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseError indicates a token sequence that does not form an expression. It
// implements InputError.
type ParseError struct {
	// Kind is the kind of failure.
	Kind ParseErrorKind
	// Token is the lookahead token at the point of failure. For truncated
	// input, this is the EOF token.
	Token Token
}

func (err *ParseError) Error() string {
	if err.Token.Kind == TokenEOF {
		return errpos(err.Token.Pos, err.Kind.String()+" at end of input")
	}
	return errpos(err.Token.Pos, err.Kind.String()+" "+strconv.Quote(err.Token.Lexeme))
}

func (err *ParseError) Pos() int {
	return err.Token.Pos
}

// EvalErrorKind classifies an EvalError.
type EvalErrorKind int8

const (
	// UndefinedVariable is a variable that is not bound in the environment.
	UndefinedVariable EvalErrorKind = iota + 1
	// UndefinedFunction is a call to a function that is not bound in the
	// environment.
	UndefinedFunction
	// ArityMismatch is a call with a number of arguments different from the
	// arity of the bound function.
	ArityMismatch
)

func (k EvalErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "undefined variable"
	case UndefinedFunction:
		return "undefined function"
	case ArityMismatch:
		return "wrong number of arguments"
	default:
		return "EvalErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvalError indicates a failure to evaluate an expression in an environment.
// It implements InputError.
type EvalError struct {
	// Kind is the kind of failure.
	Kind EvalErrorKind
	// Token is the variable or function name that caused the failure.
	Token Token
	// Want and Got are the function's arity and the number of arguments in
	// the call, for ArityMismatch.
	Want, Got int
}

func (err *EvalError) Error() string {
	msg := err.Kind.String() + " " + strconv.Quote(err.Token.Lexeme)
	if err.Kind == ArityMismatch {
		msg += " (want " + strconv.Itoa(err.Want) + ", got " + strconv.Itoa(err.Got) + ")"
	}
	return errpos(err.Token.Pos, msg)
}

func (err *EvalError) Pos() int {
	return err.Token.Pos
}

// DefineError indicates an invalid function definition.
type DefineError struct {
	// Param is the parameter name that was declared more than once.
	Param string
}

func (err *DefineError) Error() string {
	return "duplicate parameter " + strconv.Quote(err.Param)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input or an unresolved name implements InputError.
type InputError interface {
	error
	// Pos returns the zero-based byte offset in the source of the token or
	// character that caused the error.
	Pos() int
}

var (
	_ InputError = (*ScanError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
)
