package main

import (
	"errors"
	"fmt"
)

// Failures reported by the machine; callers match them with errors.Is.
var (
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrWordNotFound        = errors.New("word not found")
	ErrCompilation         = errors.New("compilation error")
	ErrOutsideCompileMode  = errors.New("compile operator used outside compile mode")
	ErrBranchOutOfBounds   = errors.New("branch out of bounds")
	ErrInvalidOffset       = errors.New("invalid offset")
	ErrUnbalancedControl   = errors.New("unbalanced control structure")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrReturnStackOverflow = errors.New("return stack overflow")
)

var (
	errMissingName      = errors.New("missing definition name")
	errNestedDefinition = errors.New("nested definition")
)

// wordError names the word a failure relates to.
type wordError struct {
	name string
	err  error
}

func (we wordError) Error() string { return fmt.Sprintf("%v: %v", we.name, we.err) }
func (we wordError) Unwrap() error { return we.err }

// WordName returns the name of the word involved in err, if any.
func WordName(err error) (string, bool) {
	var we wordError
	if errors.As(err, &we) {
		return we.name, true
	}
	var ce compileError
	if errors.As(err, &ce) && ce.name != "" {
		return ce.name, true
	}
	return "", false
}

type undefinedError string

func (name undefinedError) Error() string { return fmt.Sprintf("undefined word %q", string(name)) }

// compileError is a failed definition; it matches ErrCompilation and unwraps
// to the underlying cause.
type compileError struct {
	name  string
	cause error
}

func (ce compileError) Error() string {
	if ce.name == "" {
		return fmt.Sprintf("%v: %v", ErrCompilation, ce.cause)
	}
	return fmt.Sprintf("%v in %q: %v", ErrCompilation, ce.name, ce.cause)
}

func (ce compileError) Unwrap() error        { return ce.cause }
func (ce compileError) Is(target error) bool { return target == ErrCompilation }
