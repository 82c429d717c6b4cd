package main

import (
	"fmt"
	"io"
	"strings"
)

// New creates a VM with every builtin and structural word defined, and the
// prelude words too if WithPrelude is given.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.init()
	if vm.prelude {
		if err := vm.load(preludeKernel); err != nil {
			panic(fmt.Errorf("loading %v: %w", preludeKernel.Name(), err))
		}
	}
	return &vm
}

// Interpret tokenizes one line of source and executes it.
func (vm *VM) Interpret(line string) error {
	code, err := Parse(line)
	if err != nil {
		return err
	}
	return vm.Execute(code)
}

// Stack returns a copy of the data stack, bottom first.
func (vm *VM) Stack() []int32 { return append([]int32{}, vm.stack...) }

// Compiling returns true while a definition is open.
func (vm *VM) Compiling() bool { return vm.compiling }

// Lookup returns the dictionary entry for a name.
func (vm *VM) Lookup(name string) (Function, bool) {
	vm.init()
	return vm.dict.lookup(name)
}

// load interprets every line of src, stopping at the first failure.
func (vm *VM) load(src io.WriterTo) error {
	var sb strings.Builder
	if _, err := src.WriteTo(&sb); err != nil {
		return err
	}
	for _, line := range strings.Split(sb.String(), "\n") {
		if err := vm.Interpret(line); err != nil {
			return err
		}
	}
	return nil
}

func WithOutput(w io.Writer) VMOption          { return withOutput(w) }
func WithTee(w io.Writer) VMOption             { return withTee(w) }
func WithDynamicControl(enabled bool) VMOption { return dynamicControlOption(enabled) }
func WithMaxDepth(limit int) VMOption          { return maxDepthOption(limit) }
func WithPrelude() VMOption                    { return preludeOption(true) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
