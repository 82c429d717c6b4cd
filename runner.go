package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/flushio"
	"github.com/jcorbin/goforth/internal/panicerr"
)

// lineRunner feeds lines of source to a VM, acknowledging each one on the
// VM's own output with "ok" or a failure message.
type lineRunner struct {
	vm  *VM
	col *flushio.Column

	okColor   *color.Color
	failColor *color.Color

	// failf, when set, also receives each failure with its location.
	failf func(mess string, args ...interface{})

	lines    int
	failures int
}

func newLineRunner(w io.Writer, useColor bool, opts ...VMOption) *lineRunner {
	col := &flushio.Column{WriteFlusher: flushio.NewWriteFlusher(w)}
	run := &lineRunner{
		col:       col,
		okColor:   color.New(color.FgGreen),
		failColor: color.New(color.FgRed, color.Bold),
	}
	if useColor {
		run.okColor.EnableColor()
		run.failColor.EnableColor()
	} else {
		run.okColor.DisableColor()
		run.failColor.DisableColor()
	}
	run.vm = New(append([]VMOption{WithOutput(col)}, opts...)...)
	return run
}

// runLine interprets one line. A failure, including a recovered panic, is
// reported and returned; it never stops the runner.
func (run *lineRunner) runLine(loc fileinput.Location, line string) error {
	run.lines++
	err := panicerr.Recover(loc.String(), func() error {
		return run.vm.Interpret(line)
	})
	if err == nil {
		return run.ack()
	}
	run.failures++
	run.vm.logf("#", "%v: %v", loc, err)
	if run.failf != nil {
		run.failf("%v: %v", loc, describe(err))
	}
	if rerr := run.report(err); rerr != nil {
		return rerr
	}
	return err
}

func (run *lineRunner) ack() error {
	if _, err := run.okColor.Fprint(run.col, "ok"); err != nil {
		return err
	}
	return run.endLine()
}

func (run *lineRunner) report(err error) error {
	if !run.col.AtLineStart() {
		if _, werr := io.WriteString(run.col, "\n"); werr != nil {
			return werr
		}
	}
	if _, werr := run.failColor.Fprint(run.col, describe(err)); werr != nil {
		return werr
	}
	return run.endLine()
}

func (run *lineRunner) endLine() error {
	if _, err := io.WriteString(run.col, "\n"); err != nil {
		return err
	}
	return run.col.Flush()
}

// runInput runs every line of in, returning only i/o errors; line failures
// are counted in run.failures.
func (run *lineRunner) runInput(in *fileinput.Input) error {
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := run.runLine(line.Location, line.Buffer.String()); err != nil && isIOError(err) {
			return err
		}
	}
}

// describe renders a failure the way it is shown to the user.
func describe(err error) string {
	var ce compileError
	switch {
	case errors.Is(err, ErrWordNotFound):
		name, _ := WordName(err)
		return fmt.Sprintf("%v?", name)
	case errors.As(err, &ce):
		return ce.Error()
	case errors.Is(err, ErrStackUnderflow):
		return ErrStackUnderflow.Error()
	case errors.Is(err, ErrOutsideCompileMode):
		return ErrOutsideCompileMode.Error()
	case errors.Is(err, ErrBranchOutOfBounds):
		return ErrBranchOutOfBounds.Error()
	case errors.Is(err, ErrInvalidOffset):
		return ErrInvalidOffset.Error()
	case errors.Is(err, ErrUnbalancedControl):
		return ErrUnbalancedControl.Error()
	case errors.Is(err, ErrDivisionByZero):
		return ErrDivisionByZero.Error()
	case errors.Is(err, ErrReturnStackOverflow):
		return ErrReturnStackOverflow.Error()
	case panicerr.IsPanic(err):
		return fmt.Sprintf("internal error: %v", err)
	default:
		return err.Error()
	}
}

// isIOError distinguishes output failures, which should stop a run, from
// the machine's own failures, which only fail one line.
func isIOError(err error) bool {
	for _, known := range []error{
		ErrStackUnderflow, ErrWordNotFound, ErrCompilation, ErrOutsideCompileMode,
		ErrBranchOutOfBounds, ErrInvalidOffset, ErrUnbalancedControl,
		ErrDivisionByZero, ErrReturnStackOverflow,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return !panicerr.IsPanic(err) && !panicerr.IsExit(err)
}
