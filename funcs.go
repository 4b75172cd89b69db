package mathexpr

import "strconv"

// Callable is a function from reals to reals with a fixed number of
// arguments.
type Callable interface {
	// Arity returns the number of arguments the function accepts. The
	// evaluator rejects calls with any other number of arguments before
	// evaluating them.
	Arity() int
	// Call evaluates the function. len(args) is always equal to Arity. Call
	// may modify the elements of args. Functions should be pure; the
	// evaluator makes no guarantee about how many times an expression calls
	// them beyond once per call node per evaluation.
	Call(args []float64) float64
}

type niladic func() float64

func (f niladic) Arity() int                  { return 0 }
func (f niladic) Call(args []float64) float64 { return f() }

// Niladic wraps a function of zero variables, generally one which computes
// a constant, into a Callable.
func Niladic(f func() float64) Callable {
	return niladic(f)
}

type monadic func(float64) float64

func (f monadic) Arity() int                  { return 1 }
func (f monadic) Call(args []float64) float64 { return f(args[0]) }

// Monadic wraps a function of one variable into a Callable.
func Monadic(f func(float64) float64) Callable {
	return monadic(f)
}

type dyadic func(x, y float64) float64

func (f dyadic) Arity() int                  { return 2 }
func (f dyadic) Call(args []float64) float64 { return f(args[0], args[1]) }

// Dyadic wraps a function of two variables into a Callable.
func Dyadic(f func(x, y float64) float64) Callable {
	return dyadic(f)
}

type polyadic struct {
	n int
	f func([]float64) float64
}

func (p polyadic) Arity() int                  { return p.n }
func (p polyadic) Call(args []float64) float64 { return p.f(args) }

// Polyadic wraps a function of n variables into a Callable. Panics if n is
// negative.
func Polyadic(n int, f func(args []float64) float64) Callable {
	if n < 0 {
		panic("mathexpr: negative arity " + strconv.Itoa(n))
	}
	return polyadic{n, f}
}

// lambda is a function defined by an expression over its parameters.
type lambda struct {
	params []string
	body   *Expr
	env    *Env
}

// Lambda creates a function whose body is an expression over params. Other
// names in the body resolve in a snapshot of env taken when Lambda is
// called; parameters shadow variables of the same name. Lambda checks the
// body against the snapshot, so the result never fails to evaluate. If the
// body refers to anything undefined, the error is an *EvalError, and if a
// parameter name is repeated, it is a *DefineError.
func Lambda(env *Env, params []string, body *Expr) (Callable, error) {
	for i, p := range params {
		if contains(params[:i], p) {
			return nil, &DefineError{Param: p}
		}
	}
	snap := env.Clone()
	if err := body.Check(snap, params...); err != nil {
		return nil, err
	}
	f := lambda{
		params: append([]string(nil), params...),
		body:   body,
		env:    snap,
	}
	return &f, nil
}

func (f *lambda) Arity() int {
	return len(f.params)
}

func (f *lambda) Call(args []float64) float64 {
	env := f.env
	if len(f.params) != 0 {
		env = env.Clone()
		for i, p := range f.params {
			env.SetVariable(p, args[i])
		}
	}
	r, err := f.body.Eval(env)
	if err != nil {
		panic("mathexpr: checked lambda failed: " + err.Error())
	}
	return r
}
