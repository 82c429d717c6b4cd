package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/jcorbin/goforth/internal/fileinput"
)

const continuePrompt = "... "

// repl drives a line runner interactively, with line editing and history.
type repl struct {
	run    *lineRunner
	rl     *readline.Instance
	prompt string
	lineno int
}

func newREPL(run *lineRunner, cfg config) (*repl, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return nil, err
	}
	return &repl{run: run, rl: rl, prompt: cfg.Prompt}, nil
}

func (r *repl) Close() error { return r.rl.Close() }

func (r *repl) banner() {
	pterm.Info.Println("goforth: enter words, or a : definition ; ctrl-D quits")
}

// loop reads and runs lines until end of input. Failed lines are reported
// by the runner and do not end the session.
func (r *repl) loop() error {
	for {
		if r.run.vm.Compiling() {
			r.rl.SetPrompt(continuePrompt)
		} else {
			r.rl.SetPrompt(r.prompt)
		}
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		r.lineno++
		if strings.TrimSpace(line) == "" && !r.run.vm.Compiling() {
			continue
		}
		loc := fileinput.Location{Name: "<stdin>", Line: r.lineno}
		if err := r.run.runLine(loc, line); err != nil && isIOError(err) {
			return fmt.Errorf("%v: %w", loc, err)
		}
	}
}

// runStream runs non-interactive input, such as a pipe on stdin.
func runStream(run *lineRunner, name string, in io.Reader) error {
	input := fileinput.Input{Queue: []io.Reader{fileinput.NamedReader(name, in)}}
	defer input.Close()
	return run.runInput(&input)
}
