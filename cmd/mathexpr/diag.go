package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/sahilm/fuzzy"

	"github.com/zephyrtronium/mathexpr"
)

// sourceError is an error in a named piece of input text.
type sourceError struct {
	name string
	src  string
	err  error
}

func (err *sourceError) Error() string {
	return err.name + ": " + err.err.Error()
}

func (err *sourceError) Unwrap() error {
	return err.err
}

var (
	errColor   = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
	hintColor  = color.New(color.FgCyan)
)

// maxSuggestions is the most names suggested for an undefined name.
const maxSuggestions = 3

// diagnoser renders errors for people.
type diagnoser struct {
	w   io.Writer
	env *mathexpr.Env
}

// report writes a description of err. If err carries source text and a
// position, the report shows the offending line with a caret under the
// error.
func (d *diagnoser) report(err error) {
	var se *sourceError
	if !errors.As(err, &se) {
		errColor.Fprint(d.w, "error: ")
		fmt.Fprintln(d.w, err)
		return
	}
	var ie mathexpr.InputError
	if !errors.As(se.err, &ie) {
		errColor.Fprint(d.w, "error: ")
		fmt.Fprintf(d.w, "%s: %v\n", se.name, se.err)
		return
	}
	pos := ie.Pos()
	line, col, text := locate(se.src, pos)
	errColor.Fprint(d.w, "error: ")
	fmt.Fprintf(d.w, "%s:%d:%d: %s\n", se.name, line, col, message(ie))
	fmt.Fprintf(d.w, "    %s\n", text)
	fmt.Fprint(d.w, "    ", pad(text, col-1))
	caretColor.Fprintln(d.w, strings.Repeat("^", span(ie)))
	if hint := d.hint(ie); hint != "" {
		hintColor.Fprintf(d.w, "    %s\n", hint)
	}
}

// locate finds the one-based line and column of the byte offset pos in src,
// counting columns in runes, and returns the text of that line.
func locate(src string, pos int) (line, col int, text string) {
	pos = min(max(pos, 0), len(src))
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos
	}
	line = strings.Count(src[:start], "\n") + 1
	col = utf8.RuneCountInString(src[start:pos]) + 1
	return line, col, src[start:end]
}

// pad returns whitespace that aligns with the first n runes of text, keeping
// tabs so the caret lines up however they are displayed.
func pad(text string, n int) string {
	var b strings.Builder
	for _, r := range text {
		if n <= 0 {
			break
		}
		n--
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	for ; n > 0; n-- {
		b.WriteByte(' ')
	}
	return b.String()
}

// message is the error message without its position prefix.
func message(err mathexpr.InputError) string {
	s := err.Error()
	if _, after, ok := strings.Cut(s, ": "); ok {
		return after
	}
	return s
}

// span is the width in runes of the text an error refers to.
func span(err mathexpr.InputError) int {
	var s string
	switch err := err.(type) {
	case *mathexpr.ScanError:
		s = err.Text
		if err.Kind == mathexpr.UnknownToken {
			s = "?"
		}
	case *mathexpr.ParseError:
		s = err.Token.Lexeme
	case *mathexpr.EvalError:
		s = err.Token.Lexeme
	}
	return max(utf8.RuneCountInString(s), 1)
}

// hint gives extra help for an error, or the empty string if there is none.
func (d *diagnoser) hint(err mathexpr.InputError) string {
	switch err := err.(type) {
	case *mathexpr.EvalError:
		name := err.Token.Lexeme
		switch err.Kind {
		case mathexpr.UndefinedVariable:
			if _, ok := d.env.Function(name); ok {
				return name + " is a function; call it as " + name + "(...)"
			}
			return didYouMean(name, d.env.VarNames())
		case mathexpr.UndefinedFunction:
			if _, ok := d.env.Variable(name); ok {
				return name + " is a variable, not a function"
			}
			return didYouMean(name, d.env.FuncNames())
		case mathexpr.ArityMismatch:
			return fmt.Sprintf("%s takes %d %s", name, err.Want, plural(err.Want, "argument"))
		}
	case *mathexpr.ParseError:
		switch err.Kind {
		case mathexpr.ExpectRightParen, mathexpr.IncompleteCall:
			return "missing ')'"
		}
	case *mathexpr.ScanError:
		if err.Kind == mathexpr.InvalidConstantFormat {
			return "constants need a digit after the point"
		}
	}
	return ""
}

// didYouMean suggests names similar to name.
func didYouMean(name string, names []string) string {
	var sug []string
	for _, m := range fuzzy.Find(name, names) {
		sug = append(sug, m.Str)
	}
	// Also suggest names which are abbreviations of the given one, e.g. sin
	// for sine.
	for _, c := range names {
		if len(c) > 1 && len(fuzzy.Find(c, []string{name})) != 0 && !contains(sug, c) {
			sug = append(sug, c)
		}
	}
	if len(sug) == 0 {
		return ""
	}
	if len(sug) > maxSuggestions {
		sug = sug[:maxSuggestions]
	}
	return "did you mean " + strings.Join(sug, ", ") + "?"
}

func contains(names []string, name string) bool {
	for _, s := range names {
		if s == name {
			return true
		}
	}
	return false
}

func plural(n int, s string) string {
	if n == 1 {
		return s
	}
	return s + "s"
}
