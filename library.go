package mathexpr

import (
	"math"
	"math/big"
	"sync"

	"github.com/zephyrtronium/bigfloat"
)

// libprec is the precision in bits of intermediate results for library
// functions computed with big floats. It leaves enough guard bits that
// rounding to float64 is correct for all but pathological inputs.
const libprec = 128

// Library returns a new map of the default functions:
//
//	abs sqrt exp
//	ln (natural), lg (base 10), log2
//	sin cos tan sec csc cot
//
// Each takes one argument. Logarithms and exp are computed in extended
// precision and rounded, so e.g. lg(1000) is exactly 3.
func Library() map[string]Callable {
	return map[string]Callable{
		"abs":  Monadic(math.Abs),
		"sqrt": Monadic(math.Sqrt),
		"exp":  Monadic(exp),
		"ln":   Monadic(func(x float64) float64 { return logb(x, nil) }),
		"lg":   Monadic(func(x float64) float64 { return logb(x, ln10()) }),
		"log2": Monadic(func(x float64) float64 { return logb(x, ln2()) }),
		"sin":  Monadic(math.Sin),
		"cos":  Monadic(math.Cos),
		"tan":  Monadic(math.Tan),
		"sec":  Monadic(func(x float64) float64 { return 1 / math.Cos(x) }),
		"csc":  Monadic(func(x float64) float64 { return 1 / math.Sin(x) }),
		"cot":  Monadic(func(x float64) float64 { return 1 / math.Tan(x) }),
	}
}

// Constants returns a new map of the default constants, PI and E.
func Constants() map[string]float64 {
	c := constants()
	return map[string]float64{"PI": c[0], "E": c[1]}
}

var constants = sync.OnceValue(func() [2]float64 {
	var pi, e, one big.Float
	pi.SetPrec(libprec)
	e.SetPrec(libprec)
	one.SetPrec(libprec).SetInt64(1)
	bigfloat.Pi(&pi)
	bigfloat.Exp(&e, &one)
	p, _ := pi.Float64()
	x, _ := e.Float64()
	return [2]float64{p, x}
})

// bigln computes the natural logarithm of a positive finite x.
func bigln(x float64) *big.Float {
	var z, in big.Float
	in.SetPrec(libprec).SetFloat64(x)
	z.SetPrec(libprec)
	return bigfloat.Log(&z, &in)
}

var (
	ln10 = sync.OnceValue(func() *big.Float { return bigln(10) })
	ln2  = sync.OnceValue(func() *big.Float { return bigln(2) })
)

// logb computes the logarithm of x divided by lnb, or the natural logarithm
// if lnb is nil. Special cases are as for math.Log.
func logb(x float64, lnb *big.Float) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	case math.IsInf(x, 1):
		return x
	}
	z := bigln(x)
	if lnb != nil {
		z.Quo(z, lnb)
	}
	r, _ := z.Float64()
	return r
}

// exp computes e**x. Special cases are as for math.Exp.
func exp(x float64) float64 {
	switch {
	case math.IsNaN(x), math.IsInf(x, 1):
		return x
	case x > 710:
		return math.Inf(1)
	case x < -746:
		return 0
	}
	var z, in big.Float
	in.SetPrec(libprec).SetFloat64(x)
	z.SetPrec(libprec)
	bigfloat.Exp(&z, &in)
	r, _ := z.Float64()
	return r
}
