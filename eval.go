package mathexpr

import (
	"math"
)

// Evaluate computes the value of an expression in an environment. A nil env
// is an empty environment. Arithmetic follows IEEE-754 double precision, so
// division by zero produces an infinity or NaN rather than an error. If a
// variable or function is missing, or a function is called with the wrong
// number of arguments, the error is an *EvalError.
//
// Evaluation does not modify e, so the same expression may be evaluated any
// number of times with different environments.
func Evaluate(e *Expr, env *Env) (float64, error) {
	return eval(e.root, env)
}

// Eval is equivalent to Evaluate(e, env).
func (e *Expr) Eval(env *Env) (float64, error) {
	return eval(e.root, env)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, env *Env) (float64, error) {
	e, err := ParseString(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(env)
}

// eval computes the value of a node. Operands are always evaluated left to
// right, and every operand is evaluated exactly once.
func eval(n Node, env *Env) (float64, error) {
	switch n := n.(type) {
	case *Constant:
		return n.Value, nil
	case *Variable:
		v, ok := env.Variable(n.Tok.Lexeme)
		if !ok {
			return 0, &EvalError{Kind: UndefinedVariable, Token: n.Tok}
		}
		return v, nil
	case *Neg:
		x, err := eval(n.X, env)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case *Binary:
		l, err := eval(n.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := eval(n.Right, env)
		if err != nil {
			return 0, err
		}
		return binop(n.Op, l, r), nil
	case *Call:
		fn, err := resolve(n, env)
		if err != nil {
			return 0, err
		}
		args := make([]float64, len(n.Args))
		for i, arg := range n.Args {
			if args[i], err = eval(arg, env); err != nil {
				return 0, err
			}
		}
		return fn.Call(args), nil
	default:
		panic("mathexpr: invalid AST node " + n.String())
	}
}

// binop applies a binary operator.
func binop(op Token, l, r float64) float64 {
	switch op.Kind {
	case TokenAddition:
		return l + r
	case TokenSubtraction:
		return l - r
	case TokenMultiplication:
		return l * r
	case TokenDivision:
		return l / r
	case TokenExponentiation:
		return math.Pow(l, r)
	default:
		panic("mathexpr: invalid binary operator " + op.String())
	}
}

// resolve finds the function for a call and checks its arity.
func resolve(n *Call, env *Env) (Callable, error) {
	fn, ok := env.Function(n.Name.Lexeme)
	if !ok {
		return nil, &EvalError{Kind: UndefinedFunction, Token: n.Name}
	}
	if a := fn.Arity(); a != len(n.Args) {
		return nil, &EvalError{Kind: ArityMismatch, Token: n.Name, Want: a, Got: len(n.Args)}
	}
	return fn, nil
}

// Check resolves every variable and function call in the expression against
// env without evaluating anything. Names in bound are treated as defined
// variables. The result is the same *EvalError that evaluating e in env
// would report first, or nil if evaluation cannot fail.
func (e *Expr) Check(env *Env, bound ...string) error {
	var err error
	Walk(e.root, func(n Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *Variable:
			if _, ok := env.Variable(n.Tok.Lexeme); ok || contains(bound, n.Tok.Lexeme) {
				return true
			}
			err = &EvalError{Kind: UndefinedVariable, Token: n.Tok}
		case *Call:
			_, err = resolve(n, env)
		}
		return err == nil
	})
	return err
}

func contains(names []string, name string) bool {
	for _, s := range names {
		if s == name {
			return true
		}
	}
	return false
}
