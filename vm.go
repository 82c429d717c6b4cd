package main

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// VM is the interpreter: a dictionary of words, the stacks they operate on,
// and the compiler state that turns source definitions into new words.
type VM struct {
	ioCore

	dict dictionary

	// The data stack holds operands for every primitive.
	stack []int32

	// The return stack holds the caller's program counter across each call
	// into a user defined word; >r r> and do-loops also use it as scratch.
	rstack []int32

	// The control stack carries flags between a dynamically scanned if and
	// its else; it is empty between top level executions.
	cstack *arraystack.Stack

	// Each nested call runs in its own frame; callers' frames are saved here
	// and restored when the callee returns.
	frames *arraystack.Stack
	frame  *frame

	compiling bool    // between : and ;
	buffer    []Value // tokens since :

	dynamicControl bool
	maxDepth       int
	prelude        bool
}

// frame is one executing instruction stream along with its program counter.
type frame struct {
	prog int
	code []Value
}

func (fr *frame) String() string { return fmt.Sprintf("@%v/%v", fr.prog, len(fr.code)) }

func (vm *VM) init() {
	if vm.cstack == nil {
		vm.cstack = arraystack.New()
	}
	if vm.frames == nil {
		vm.frames = arraystack.New()
	}
	if vm.dict == nil {
		vm.dict = make(dictionary, len(builtins)+8)
		for _, def := range builtins {
			vm.dict.define(def.name, builtin(def.prim))
		}
		for _, name := range structuralWords {
			vm.dict.define(name, structural())
		}
		if vm.dynamicControl {
			for _, def := range dynamicControlWords {
				vm.dict.define(def.name, builtin(def.prim))
			}
		}
	}
}

// Execute runs code as a top level program. Compile state carries over
// between calls, so a definition may span several. On failure the stacks are
// left as they were at the point of failure.
func (vm *VM) Execute(code []Value) error {
	vm.init()
	vm.cstack.Clear()
	vm.frames.Clear()
	vm.frame = nil
	err := vm.run(code)
	vm.frame = nil
	if ferr := vm.flush(); err == nil {
		err = ferr
	}
	return err
}

// run executes code in a new frame until it runs off the end or fails.
func (vm *VM) run(code []Value) error {
	fr := &frame{code: code}
	vm.frame = fr
	for fr.prog < len(fr.code) {
		val := fr.code[fr.prog]
		fr.prog++
		if err := vm.step(val); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) step(val Value) error {
	name, isWord := val.Name()

	if vm.compiling && !(isWord && name == ";") {
		vm.buffer = append(vm.buffer, val)
		return nil
	}

	if !isWord {
		n, _ := val.Int()
		vm.push(n)
		return nil
	}

	if vm.logfn != nil {
		vm.logf("exec", "%v %v -- s:%v r:%v", vm.frame, name, vm.stack, vm.rstack)
	}

	fn, defined := vm.dict.lookup(name)
	switch {
	case !defined:
		return wordError{name, ErrWordNotFound}
	case fn.kind == funcBuiltin:
		return fn.prim(vm)
	case fn.kind == funcUser:
		return vm.call(name, fn.body)
	default:
		return wordError{name, ErrOutsideCompileMode}
	}
}

// call runs a user defined word's body, saving the caller's frame and
// program counter around it. The body slice is captured by value, so a
// redefinition during the call does not affect it.
func (vm *VM) call(name string, body []Value) error {
	if vm.maxDepth > 0 && vm.frames.Size() >= vm.maxDepth {
		return wordError{name, ErrReturnStackOverflow}
	}

	caller := vm.frame
	ret, err := safecast.Conv[int32](caller.prog)
	if err != nil {
		return wordError{name, err}
	}
	rdepth := len(vm.rstack)
	vm.rstack = append(vm.rstack, ret)
	vm.frames.Push(caller)

	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	if err := vm.run(body); err != nil {
		return err
	}

	saved, _ := vm.frames.Pop()
	vm.frame = saved.(*frame)
	// discard the return address along with anything the callee left above it
	if len(vm.rstack) > rdepth {
		vm.rstack = vm.rstack[:rdepth]
	}
	return nil
}

func (vm *VM) push(val int32) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (int32, error) {
	i := len(vm.stack) - 1
	if i < 0 {
		return 0, ErrStackUnderflow
	}
	val := vm.stack[i]
	vm.stack = vm.stack[:i]
	return val, nil
}

func (vm *VM) pushr(val int32) {
	vm.rstack = append(vm.rstack, val)
}

func (vm *VM) popr() (int32, error) {
	i := len(vm.rstack) - 1
	if i < 0 {
		return 0, ErrStackUnderflow
	}
	val := vm.rstack[i]
	vm.rstack = vm.rstack[:i]
	return val, nil
}

// jump reads the branch offset at the program counter and moves the program
// counter by it, relative to the offset's own position.
func (vm *VM) jump() error {
	fr := vm.frame
	if fr.prog < 0 || fr.prog >= len(fr.code) {
		return ErrBranchOutOfBounds
	}
	off, isNum := fr.code[fr.prog].Int()
	if !isNum {
		return ErrInvalidOffset
	}
	target := fr.prog + int(off)
	if target < 0 || target > len(fr.code) {
		return ErrBranchOutOfBounds
	}
	vm.logf("jump", "%v -> @%v", fr, target)
	fr.prog = target
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return -1
	}
	return 0
}
