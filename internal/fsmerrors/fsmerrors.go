// Package fsmerrors contains the error types produced by loading, grammar
// parsing, and evaluation of fsmql programs. Every error that can escape the
// interpreter is one of the kinds defined here; the evaluator never lets a
// raw Go error surface from a lower layer without wrapping it first.
package fsmerrors

import "fmt"

// Kind identifies which of the error categories in the language's error
// handling design an error belongs to.
type Kind int

const (
	// KindUninitialized is returned when a var expression references a name
	// that is not bound in any active frame of the environment.
	KindUninitialized Kind = iota

	// KindTypeMismatch is returned when an operator is applied to an operand
	// of the wrong value variant.
	KindTypeMismatch

	// KindLoadFailure is returned when a loadFrom expression cannot produce
	// an automaton: the path doesn't exist, the registered name is unknown,
	// or the regex text doesn't parse.
	KindLoadFailure

	// KindGrammar is returned for malformed or duplicate grammar
	// declarations encountered by the grammar front end.
	KindGrammar
)

func (k Kind) String() string {
	switch k {
	case KindUninitialized:
		return "uninitialized variable"
	case KindTypeMismatch:
		return "type mismatch"
	case KindLoadFailure:
		return "load failure"
	case KindGrammar:
		return "grammar error"
	default:
		return "error"
	}
}

// InterpretingError is an error raised while interpreting an fsmql program.
// It carries the Kind of problem encountered along with a message suitable
// for direct display to the person running the program.
type InterpretingError struct {
	kind Kind
	msg  string
	wrap error
}

func (e *InterpretingError) Error() string {
	return e.msg
}

// Kind returns the category of interpreting error this is.
func (e *InterpretingError) Kind() Kind {
	return e.kind
}

// Unwrap gives the error that this InterpretingError wraps, if any.
func (e *InterpretingError) Unwrap() error {
	return e.wrap
}

// Uninitialized returns a new InterpretingError reporting that name is not
// bound in the current environment.
func Uninitialized(name string) error {
	return &InterpretingError{kind: KindUninitialized, msg: fmt.Sprintf("variable %q is not bound", name)}
}

// TypeMismatch returns a new InterpretingError reporting that op was applied
// to a value of the wrong variant. wanted and got are human-readable type
// names, e.g. "Fsm" and "Int".
func TypeMismatch(op string, wanted string, got string) error {
	return &InterpretingError{
		kind: KindTypeMismatch,
		msg:  fmt.Sprintf("%s expects %s, got %s", op, wanted, got),
	}
}

// TypeMismatchf returns a new InterpretingError with a caller-supplied
// message, for type mismatches that don't fit the wanted/got template.
func TypeMismatchf(format string, a ...interface{}) error {
	return &InterpretingError{kind: KindTypeMismatch, msg: fmt.Sprintf(format, a...)}
}

// LoadFailure returns a new InterpretingError reporting that a loadFrom
// expression failed, wrapping the underlying cause.
func LoadFailure(source string, cause error) error {
	return &InterpretingError{
		kind: KindLoadFailure,
		msg:  fmt.Sprintf("could not load %q: %s", source, cause),
		wrap: cause,
	}
}

// Grammar returns a new InterpretingError reporting a malformed or
// duplicate-nonterminal grammar declaration.
func Grammar(format string, a ...interface{}) error {
	return &InterpretingError{kind: KindGrammar, msg: fmt.Sprintf(format, a...)}
}

// Is reports whether err is an InterpretingError of the given Kind.
func Is(err error, k Kind) bool {
	ie, ok := err.(*InterpretingError)
	return ok && ie.kind == k
}

// Message returns the display message for err: its InterpretingError message
// if it is one, otherwise its ordinary Error() text.
func Message(err error) string {
	if ie, ok := err.(*InterpretingError); ok {
		return ie.Error()
	}
	return err.Error()
}
