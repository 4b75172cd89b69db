package mathexpr

// Formula is a parsed expression bundled with its own environment, which
// starts with the default constants and functions. It is the simplest way to
// evaluate user-supplied text. A Formula is not safe for concurrent use.
type Formula struct {
	expr *Expr
	env  *Env
}

// Compile parses src into a formula. Errors are as for Scan and Parse.
func Compile(src string) (*Formula, error) {
	e, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	f := Formula{
		expr: e,
		env:  NewEnv(Defaults()),
	}
	return &f, nil
}

// MustCompile is like Compile but panics if src cannot be parsed.
func MustCompile(src string) *Formula {
	f, err := Compile(src)
	if err != nil {
		panic("mathexpr: Compile(" + src + "): " + err.Error())
	}
	return f
}

// SetVariable sets the value of a variable. Returns f for chaining.
func (f *Formula) SetVariable(name string, value float64) *Formula {
	f.env.SetVariable(name, value)
	return f
}

// SetVariableExpr sets a variable to the value of another expression. The
// expression is evaluated immediately, with only the default constants and
// functions available.
func (f *Formula) SetVariableExpr(name, src string) error {
	g, err := Compile(src)
	if err != nil {
		return err
	}
	v, err := g.Calculate()
	if err != nil {
		return err
	}
	f.env.SetVariable(name, v)
	return nil
}

// SetFunction sets a function. A nil fn removes the function. Returns f for
// chaining.
func (f *Formula) SetFunction(name string, fn Callable) *Formula {
	f.env.SetFunction(name, fn)
	return f
}

// Calculate evaluates the formula with its current variables and functions.
func (f *Formula) Calculate() (float64, error) {
	return f.expr.Eval(f.env)
}

// Expr returns the parsed expression.
func (f *Formula) Expr() *Expr {
	return f.expr
}

// Env returns the formula's environment. Changes to it apply to later calls
// to Calculate.
func (f *Formula) Env() *Env {
	return f.env
}

func (f *Formula) String() string {
	return f.expr.String()
}
