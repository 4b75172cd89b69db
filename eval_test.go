package mathexpr_test

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sync"
	"testing"

	"github.com/zephyrtronium/mathexpr"
)

func TestEval(t *testing.T) {
	type vv struct {
		n string
		v float64
	}
	type vc struct {
		vars []vv
		r    float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "2", []vc{{nil, 2}}},
		{"point", ".5", []vc{{nil, 0.5}}},
		{"ident", "x", []vc{
			{[]vv{{"x", 4}}, 4},
			{[]vv{{"x", 5}}, 5},
			{[]vv{{"x", 6}}, 6},
		}},
		{"neg", "-x", []vc{
			{[]vv{{"x", 4}}, -4},
			{[]vv{{"x", -5}}, 5},
		}},
		{"negneg", "--2", []vc{{nil, 2}}},
		{"addneg", "2 + -3", []vc{{nil, -1}}},
		{"subneg", "2 - -3", []vc{{nil, 5}}},
		{"subnegneg", "2 - --3", []vc{{nil, -1}}},
		{"add", "2 + 3", []vc{{nil, 5}}},
		{"sub", "2 - 3", []vc{{nil, -1}}},
		{"mul", "2 * 3", []vc{{nil, 6}}},
		{"div", "2 / 3", []vc{{nil, 2.0 / 3.0}}},
		{"pow", "2 ^ 3", []vc{{nil, 8}}},
		{"addsub", "2 + 2 - 3", []vc{{nil, 1}}},
		{"muldiv", "2 * 2 / 3", []vc{{nil, 1.3333333333333333}}},
		{"powpow", "2 ^ 2 ^ 3", []vc{{nil, 256}}},
		{"negpow", "-2 ^ 2", []vc{{nil, 4}}},
		{"sub4", "4-5-6", []vc{{nil, 4 - 5 - 6}}},
		{"div4", "4/5/6", []vc{{nil, 4.0 / 5.0 / 6.0}}},
		{"pow4", "4^3^2", []vc{{nil, 262144}}},
		{"prec", "1 + 2 * 3 ^ 2", []vc{{nil, 19}}},
		{"paren", "(1 + 2) * 3", []vc{{nil, 9}}},
		{"discriminant", "b * b - 4 * a * c", []vc{
			{[]vv{{"a", 6}, {"b", -13}, {"c", 2}}, 121},
			{[]vv{{"a", 1}, {"b", 2}, {"c", 1}}, 0},
		}},
		{"divzero", "2 / 0", []vc{{nil, math.Inf(1)}}},
		{"negdivzero", "-2 / 0", []vc{{nil, math.Inf(-1)}}},
		{"big", "1" + zeros(400), []vc{{nil, math.Inf(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := mathexpr.ParseString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				env := mathexpr.NewEnv()
				for _, x := range v.vars {
					env.SetVariable(x.n, x.v)
				}
				r, err := a.Eval(env)
				if err != nil {
					t.Error("evaluation error:", err)
				}
				if q, _ := mathexpr.Evaluate(a, env); r != q {
					t.Errorf("different results: Eval returned %g, Evaluate returned %g", r, q)
				}
				if r != v.r {
					t.Errorf("wrong result: want %g, got %g", v.r, r)
				}
			}
		})
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestEvalNaN(t *testing.T) {
	for _, src := range []string{"0 / 0", "x / x", "(-1) ^ .5"} {
		r, err := mathexpr.EvalString(src, mathexpr.NewEnv(mathexpr.Var("x", 0)))
		if err != nil {
			t.Errorf("evaluating %q: %v", src, err)
		}
		if !math.IsNaN(r) {
			t.Errorf("evaluating %q: want NaN, got %g", src, r)
		}
	}
}

func TestEvalFuncs(t *testing.T) {
	const eps = 1e-12
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"sin0", "sin(0)", 0},
		{"sinpi2", "sin(PI / 2)", 1},
		{"cos0", "cos(0)", 1},
		{"cospi2", "cos(PI / 2)", 0},
		{"tan0", "tan(0)", 0},
		{"tanpi4", "tan(PI / 4)", 1},
		{"cotpi2", "cot(PI / 2)", 0},
		{"cotpi6", "cot(PI / 6)", math.Sqrt(3)},
		{"sec0", "sec(0)", 1},
		{"secpi3", "sec(PI / 3)", 2},
		{"cscpi2", "csc(PI / 2)", 1},
		{"cscpi6", "csc(PI / 6)", 2},
		{"sqrt", "sqrt(16)", 4},
		{"ln", "ln(E)", 1},
		{"lg", "lg(100)", 2},
		{"log2", "log2(8)", 3},
		{"abs", "abs(-2)", 2},
		{"exp", "exp(1)", math.E},
		{"pythagoras", "sin(x) ^ 2 + cos(x) ^ 2", 1},
		{"nested", "sqrt(abs(-16)) + ln(exp(2))", 6},
		{"discriminant", "discriminant(6, -13, 2)", 121},
	}
	env := mathexpr.NewEnv(
		mathexpr.Defaults(),
		mathexpr.Var("x", 0.24),
		mathexpr.Func("discriminant", mathexpr.Polyadic(3, func(args []float64) float64 {
			a, b, c := args[0], args[1], args[2]
			return b*b - 4*a*c
		})),
	)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := mathexpr.EvalString(c.src, env)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if math.Abs(r-c.r) > eps {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalSameName(t *testing.T) {
	env := mathexpr.NewEnv().
		SetVariable("bi", 1).
		SetFunction("bi", mathexpr.Dyadic(func(x, y float64) float64 { return x + y }))
	r, err := mathexpr.EvalString("bi + bi(2, 3)", env)
	if err != nil {
		t.Fatal(err)
	}
	if r != 6 {
		t.Errorf("want 6, got %g", r)
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind mathexpr.EvalErrorKind
		tok  mathexpr.Token
	}{
		{"x", "x", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "x", Pos: 0}},
		{"neg", "-x", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "x", Pos: 1}},
		{"add-rhs", "a + y", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "y", Pos: 4}},
		{"add-lhs", "y + x", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "y", Pos: 0}},
		{"left-first", "x * (p + q)", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "x", Pos: 0}},
		{"pow-rhs", "a^z", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "z", Pos: 2}},
		{"funcname", "one", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "one", Pos: 0}},
		{"arg", "one(y)", mathexpr.UndefinedVariable, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "y", Pos: 4}},
		{"call", "f(a)", mathexpr.UndefinedFunction, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "f", Pos: 0}},
		{"varcall", "a(1)", mathexpr.UndefinedFunction, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "a", Pos: 0}},
		{"call-before-args", "f(y)", mathexpr.UndefinedFunction, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "f", Pos: 0}},
		{"arity0", "one()", mathexpr.ArityMismatch, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "one", Pos: 0}},
		{"arity2", "a + one(1, 2)", mathexpr.ArityMismatch, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "one", Pos: 4}},
		{"arity-before-args", "one(y, z)", mathexpr.ArityMismatch, mathexpr.Token{Kind: mathexpr.TokenIdentifier, Lexeme: "one", Pos: 0}},
	}
	ure := regexp.MustCompile(`(?i)\bundefined|\bwrong number`)
	env := mathexpr.NewEnv(
		mathexpr.Var("a", 1),
		mathexpr.Func("one", mathexpr.Monadic(func(x float64) float64 { return x })),
	)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := mathexpr.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			for _, check := range []bool{false, true} {
				var r float64
				if check {
					err = a.Check(env)
				} else {
					r, err = a.Eval(env)
				}
				if err == nil {
					t.Fatalf("evaluating %q (check=%t) gave no error", c.src, check)
				}
				if r != 0 {
					t.Errorf("evaluating %q gave nonzero result %g with error", c.src, r)
				}
				var u *mathexpr.EvalError
				if !errors.As(err, &u) {
					t.Fatalf("error was %#v, not *EvalError", err)
				}
				if u.Kind != c.kind {
					t.Errorf("%q (check=%t): want %v, got %v", c.src, check, c.kind, u.Kind)
				}
				if u.Token != c.tok {
					t.Errorf("%q (check=%t): want error at %v, got %v", c.src, check, c.tok, u.Token)
				}
				if msg := err.Error(); !ure.MatchString(msg) || !regexp.MustCompile(`\b`+c.tok.Lexeme+`\b`).MatchString(msg) {
					t.Errorf("%q doesn't describe the error", msg)
				}
			}
		})
	}
}

func TestEvalArity(t *testing.T) {
	env := mathexpr.NewEnv(mathexpr.Defaults())
	for _, src := range []string{"sin()", "sin(1, 2)"} {
		_, err := mathexpr.EvalString(src, env)
		var u *mathexpr.EvalError
		if !errors.As(err, &u) {
			t.Fatalf("evaluating %q: error was %#v, not *EvalError", src, err)
		}
		if u.Kind != mathexpr.ArityMismatch || u.Token.Lexeme != "sin" || u.Pos() != 0 {
			t.Errorf("evaluating %q: wrong error %v", src, err)
		}
		if u.Want != 1 {
			t.Errorf("evaluating %q: want arity 1, got %d", src, u.Want)
		}
	}
}

func TestEvalOrder(t *testing.T) {
	var calls []float64
	record := mathexpr.Monadic(func(x float64) float64 {
		calls = append(calls, x)
		return x
	})
	env := mathexpr.NewEnv(mathexpr.Func("r", record))
	r, err := mathexpr.EvalString("r(1) + r(2) * r(3) ^ r(r(4) - r(5)) + r(1)", env)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1 + 2*math.Pow(3, -1) + 1; r != want {
		t.Errorf("want %g, got %g", want, r)
	}
	want := []float64{1, 2, 3, 4, 5, -1, 1}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Errorf("wrong call order:\n\twant %v\n\tgot  %v", want, calls)
	}
}

func TestEvalRepeat(t *testing.T) {
	a, err := mathexpr.ParseString("x ^ 2 - 2 * x + 1")
	if err != nil {
		t.Fatal(err)
	}
	s := a.String()
	env := mathexpr.NewEnv(mathexpr.Var("x", 3))
	r1, err1 := a.Eval(env)
	r2, err2 := a.Eval(env)
	if r1 != r2 || err1 != nil || err2 != nil {
		t.Errorf("repeated evaluation differs: %g, %v then %g, %v", r1, err1, r2, err2)
	}
	env.SetVariable("x", 1)
	if r, err := a.Eval(env); r != 0 || err != nil {
		t.Errorf("after changing x: want 0, got %g, %v", r, err)
	}
	if a.String() != s {
		t.Errorf("evaluation modified the tree: %s became %s", s, a.String())
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := mathexpr.ParseString("sin(x) ^ 2 + cos(x) ^ 2 + x")
	if err != nil {
		t.Fatal(err)
	}
	base := mathexpr.NewEnv(mathexpr.Defaults())
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env := base.Clone(mathexpr.Var("x", float64(i)))
			for range 100 {
				r, err := a.Eval(env)
				if err != nil {
					errs[i] = err
					return
				}
				if math.Abs(r-1-float64(i)) > 1e-12 {
					errs[i] = fmt.Errorf("x=%d: got %g", i, r)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func TestEvalNilEnv(t *testing.T) {
	r, err := mathexpr.EvalString("1 + 2", nil)
	if err != nil || r != 3 {
		t.Errorf("want 3, got %g, %v", r, err)
	}
	_, err = mathexpr.EvalString("x", nil)
	var u *mathexpr.EvalError
	if !errors.As(err, &u) || u.Kind != mathexpr.UndefinedVariable {
		t.Errorf("wrong error %v", err)
	}
}

func TestEnv(t *testing.T) {
	env := mathexpr.NewEnv(mathexpr.Var("x", 0), mathexpr.Vars(map[string]float64{"y": 1, "z": 2}))
	if x, ok := env.Variable("x"); !ok || x != 0 {
		t.Errorf("x should be 0 but is %g, %t", x, ok)
	}
	if w, ok := env.Variable("w"); ok {
		t.Errorf("env has w: %g", w)
	}
	c := env.Clone(mathexpr.Var("x", 5))
	env.SetVariable("y", 3)
	if x, _ := c.Variable("x"); x != 5 {
		t.Errorf("clone x should be 5 but is %g", x)
	}
	if x, _ := env.Variable("x"); x != 0 {
		t.Errorf("x should still be 0 but is %g", x)
	}
	if y, _ := c.Variable("y"); y != 1 {
		t.Errorf("clone y should still be 1 but is %g", y)
	}
	if got := fmt.Sprint(env.VarNames()); got != "[x y z]" {
		t.Errorf("wrong variable names %s", got)
	}

	id := mathexpr.Monadic(func(x float64) float64 { return x })
	env.SetFunction("id", id)
	if _, ok := env.Function("id"); !ok {
		t.Error("env has no id")
	}
	if _, ok := c.Function("id"); ok {
		t.Error("clone has id")
	}
	env.SetFunction("id", nil)
	if _, ok := env.Function("id"); ok {
		t.Error("id not removed")
	}
	d := mathexpr.NewEnv(mathexpr.Defaults(), mathexpr.Func("sin", nil))
	if _, ok := d.Function("sin"); ok {
		t.Error("sin not removed")
	}
	if _, ok := d.Function("cos"); !ok {
		t.Error("defaults have no cos")
	}
	if got := fmt.Sprint(mathexpr.NewEnv(mathexpr.Funcs(map[string]mathexpr.Callable{"f": id, "e": id})).FuncNames()); got != "[e f]" {
		t.Errorf("wrong function names %s", got)
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := mathexpr.ParseString("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		env := mathexpr.NewEnv(mathexpr.Vars(map[string]float64{"x": 2, "y": 3, "z": 4}))
		a, err := mathexpr.ParseString("x+y+z")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
	b.Run("calls", func(b *testing.B) {
		b.ReportAllocs()
		env := mathexpr.NewEnv(mathexpr.Defaults(), mathexpr.Var("x", 0.24))
		a, err := mathexpr.ParseString("sin(x) ^ 2 + cos(x) ^ 2")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
}

func Example() {
	env := mathexpr.NewEnv()
	fx, _ := mathexpr.ParseString("x^3/2 - x")
	dfx, _ := mathexpr.ParseString("3*x^2/2 - 1")
	ddfx, _ := mathexpr.ParseString("3*x")

	for i := 0; i < 4; i++ {
		env.SetVariable("x", float64(i))
		y, _ := fx.Eval(env)
		yp, _ := dfx.Eval(env)
		ypp, _ := ddfx.Eval(env)
		fmt.Printf("x = %g   y = %-4g  y' = %-4g  y'' = %g\n", float64(i), y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}
