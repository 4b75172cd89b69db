package mathexpr

// Env is an environment of variables and functions for evaluating
// expressions. Variables and functions have separate namespaces, so the same
// name can refer to both a variable and a function. It is not safe to modify
// an Env concurrently with any other use of it.
type Env struct {
	vars  map[string]float64
	funcs map[string]Callable
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption(*Env)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Callable
	}
	funcsopt map[string]Callable
	// libopt installs the default library.
	libopt struct{}
)

func (o varopt) envOption(env *Env) { env.SetVariable(o.name, o.val) }

func (o varsopt) envOption(env *Env) {
	for k, v := range o {
		env.SetVariable(k, v)
	}
}

func (o funcopt) envOption(env *Env) { env.SetFunction(o.name, o.fn) }

func (o funcsopt) envOption(env *Env) {
	for k, v := range o {
		env.SetFunction(k, v)
	}
}

func (libopt) envOption(env *Env) {
	for k, v := range Constants() {
		env.SetVariable(k, v)
	}
	for k, v := range Library() {
		env.SetFunction(k, v)
	}
}

// Var sets the value of a variable in the environment.
func Var(name string, val float64) EnvOption {
	return varopt{name, val}
}

// Vars sets the values of any number of variables in the environment.
func Vars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// Func sets a function in the environment. A nil fn removes the function.
func Func(name string, fn Callable) EnvOption {
	return funcopt{name, fn}
}

// Funcs sets any number of functions in the environment.
func Funcs(fns map[string]Callable) EnvOption {
	return funcsopt(fns)
}

// Defaults installs the default constants and functions. See Library and
// Constants.
func Defaults() EnvOption {
	return libopt{}
}

// NewEnv creates a new environment. Options are applied in order, so later
// options override earlier ones for the same name. With no options, the
// environment is empty.
func NewEnv(opts ...EnvOption) *Env {
	return (*Env)(nil).Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it. Changes
// to the copy do not affect env, and vice versa. Cloning a nil *Env creates a
// new environment.
func (env *Env) Clone(opts ...EnvOption) *Env {
	if env == nil {
		env = &Env{}
	}
	n := Env{
		vars:  make(map[string]float64, len(env.vars)),
		funcs: make(map[string]Callable, len(env.funcs)),
	}
	for k, v := range env.vars {
		n.vars[k] = v
	}
	for k, v := range env.funcs {
		n.funcs[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.envOption(&n)
	}
	return &n
}

// SetVariable sets the value of a variable, replacing any previous value.
// Returns env for chaining.
func (env *Env) SetVariable(name string, value float64) *Env {
	if env.vars == nil {
		env.vars = make(map[string]float64)
	}
	env.vars[name] = value
	return env
}

// SetFunction sets a function, replacing any previous function of the same
// name regardless of arity. If fn is nil, the function is removed. Returns
// env for chaining.
func (env *Env) SetFunction(name string, fn Callable) *Env {
	if fn == nil {
		delete(env.funcs, name)
		return env
	}
	if env.funcs == nil {
		env.funcs = make(map[string]Callable)
	}
	env.funcs[name] = fn
	return env
}

// Variable returns the value of a variable and whether it is set.
func (env *Env) Variable(name string) (float64, bool) {
	if env == nil {
		return 0, false
	}
	v, ok := env.vars[name]
	return v, ok
}

// Function returns a function and whether it is set.
func (env *Env) Function(name string) (Callable, bool) {
	if env == nil {
		return nil, false
	}
	fn, ok := env.funcs[name]
	return fn, ok
}

// VarNames returns the names of all variables in the environment, in sorted
// order.
func (env *Env) VarNames() []string {
	if env == nil {
		return nil
	}
	names := make([]string, 0, len(env.vars))
	for k := range env.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// FuncNames returns the names of all functions in the environment, in sorted
// order.
func (env *Env) FuncNames() []string {
	if env == nil {
		return nil
	}
	names := make([]string, 0, len(env.funcs))
	for k := range env.funcs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}
