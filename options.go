package main

import (
	"io"

	"github.com/jcorbin/goforth/internal/flushio"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = options{
	withOutput(io.Discard),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type dynamicControlOption bool
type maxDepthOption int
type preludeOption bool

func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption       { return teeOption{w} }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (dyn dynamicControlOption) apply(vm *VM) {
	vm.dynamicControl = bool(dyn)
	vm.dict = nil // rebuilt by init with the chosen control words
}

func (limit maxDepthOption) apply(vm *VM) {
	vm.maxDepth = int(limit)
}

func (opt preludeOption) apply(vm *VM) {
	vm.prelude = bool(opt)
}
