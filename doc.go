// Package mathexpr implements a double-precision calculator for formulas
// written as text.
//
// The language is a single arithmetic expression over numeric constants
// (2, 2.5, .5), variables, and function calls, combined with + - * / and ^.
// "-2^2" is the same as "(-2)^2", since negation binds tighter than any
// binary operator, and "2^2^3" is "2^(2^3)". There are no comparisons,
// assignments, strings, or statements.
//
// Evaluation happens in three stages. Scan converts text to tokens, Parse
// converts tokens to an immutable syntax tree, and Evaluate reduces a tree to
// a number using the variables and functions of an Env. Each stage reports
// failures with an error that implements InputError, giving the byte offset
// in the source of the character or token responsible.
//
// Variables let you parse an expression once and evaluate it for many inputs.
// Variables and functions are separate namespaces, so "f + f(1)" may refer to
// both a variable f and a function f. Formula bundles an expression with an
// environment holding the default Library and Constants.
package mathexpr
