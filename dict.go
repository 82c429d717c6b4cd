package main

import "sort"

type funcKind uint8

const (
	funcBuiltin funcKind = iota + 1
	funcUser
	funcStructural
)

func (kind funcKind) String() string {
	switch kind {
	case funcBuiltin:
		return "builtin"
	case funcUser:
		return "user"
	case funcStructural:
		return "structural"
	default:
		return "invalid"
	}
}

type primitive func(vm *VM) error

// Function is what a dictionary name resolves to: a builtin primitive, a
// user defined body, or a structural marker that only means something while
// compiling.
type Function struct {
	kind funcKind
	prim primitive
	body []Value
}

func builtin(prim primitive) Function   { return Function{kind: funcBuiltin, prim: prim} }
func userDefined(body []Value) Function { return Function{kind: funcUser, body: body} }
func structural() Function              { return Function{kind: funcStructural} }

// Body returns the compiled code of a user defined word.
func (fn Function) Body() ([]Value, bool) { return fn.body, fn.kind == funcUser }

// Builtin returns true for native primitives.
func (fn Function) Builtin() bool { return fn.kind == funcBuiltin }

// Structural returns true for compile-only markers.
func (fn Function) Structural() bool { return fn.kind == funcStructural }

// dictionary maps case-sensitive names to functions; defining an existing
// name replaces it.
type dictionary map[string]Function

func (dict dictionary) lookup(name string) (Function, bool) {
	fn, defined := dict[name]
	return fn, defined
}

func (dict dictionary) define(name string, fn Function) {
	dict[name] = fn
}

func (dict dictionary) names() []string {
	names := make([]string, 0, len(dict))
	for name := range dict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
