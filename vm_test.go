package main

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/goforth/internal/logio"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	input   []string
	ops     []func(vm *VM) error
	expect  []func(t *testing.T, vm *VM)
	wantErr  error
	wantWord string

	exclusive bool
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...int32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withRStack(values ...int32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.rstack = append(vm.rstack, values...)
	}))
	return vmt
}

// withInput adds lines to interpret, in order, stopping at the first failure.
func (vmt vmTestCase) withInput(lines ...string) vmTestCase {
	vmt.input = append(vmt.input, lines...)
	return vmt
}

func (vmt vmTestCase) do(ops ...func(vm *VM) error) vmTestCase {
	vmt.ops = append(vmt.ops, ops...)
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int32{}
		}
		assert.Equal(t, values, vm.Stack(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectRStack(values ...int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int32{}
		}
		assert.Equal(t, values, append([]int32{}, vm.rstack...), "expected return stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

// expectWord checks a user defined word's compiled code, as rendered by
// formatCode.
func (vmt vmTestCase) expectWord(name string, code string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		fn, defined := vm.Lookup(name)
		if !assert.True(t, defined, "expected %q to be defined", name) {
			return
		}
		body, isUser := fn.Body()
		if assert.True(t, isUser, "expected %q to be user defined, got %v", name, fn.kind) {
			assert.Equal(t, code, formatCode(body), "expected %q code", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectUndefined(name string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		_, defined := vm.Lookup(name)
		assert.False(t, defined, "expected %q to be undefined", name)
	})
	return vmt
}

func (vmt vmTestCase) expectCompiling(compiling bool) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, compiling, vm.Compiling(), "expected compile mode")
	})
	return vmt
}

// expectFailingWord checks the word named by the run's error.
func (vmt vmTestCase) expectFailingWord(name string) vmTestCase {
	vmt.wantWord = name
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	// trace into a buffer, only shown if the test fails
	var trace strings.Builder
	vm := vmt.buildVM(t, WithLogf(func(mess string, args ...interface{}) {
		fmt.Fprintf(&trace, mess, args...)
		trace.WriteByte('\n')
	}))
	defer func() {
		if t.Failed() {
			t.Logf("trace:\n%v", trace.String())
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(vm)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM error")
	}
	if vmt.wantWord != "" {
		name, _ := WordName(err)
		assert.Equal(t, vmt.wantWord, name, "expected failing word")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(vm *VM) error {
	for _, line := range vmt.input {
		vm.logf(">", "%q", line)
		if err := vm.Interpret(line); err != nil {
			return err
		}
	}

	if len(vmt.ops) > 0 {
		vm.frame = &frame{}
		defer func() { vm.frame = nil }()
		for _, op := range vmt.ops {
			vm.logf(">", "do %v", runtime.FuncForPC(reflect.ValueOf(op).Pointer()).Name())
			if err := op(vm); err != nil {
				return err
			}
		}
		return vm.flush()
	}
	return nil
}

func (vmt vmTestCase) buildVM(t *testing.T, extra ...VMOption) *VM {
	var opt VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(append(extra, opt)...)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf, Prefix: "dump: "}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
