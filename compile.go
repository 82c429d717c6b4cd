package main

import (
	"fmt"

	"fortio.org/safecast"
)

// compileDefinition installs a definition from the tokens buffered between
// : and ; . The first token names the word (a number is used by its decimal
// text); the rest are validated and have their control structures rewritten
// into branches. A failed definition leaves the dictionary untouched.
func (vm *VM) compileDefinition(src []Value) error {
	if len(src) == 0 {
		return compileError{cause: errMissingName}
	}
	name := src[0].String()
	if err := vm.validate(name, src[1:]); err != nil {
		return compileError{name, err}
	}
	body, err := vm.rewrite(src[1:])
	if err != nil {
		return compileError{name, err}
	}
	vm.logf(":", "%v %v", name, body)
	vm.dict.define(name, userDefined(body))
	return nil
}

// validate checks that every word a body references is already defined, or
// is the word being defined. The text of string literals is not checked.
func (vm *VM) validate(name string, body []Value) error {
	for i := 0; i < len(body); i++ {
		word, isWord := body[i].Name()
		switch {
		case !isWord, word == name:
		case word == ":":
			return errNestedDefinition
		case word == `."`:
			i, _ = stringRun(body, i+1)
		default:
			if _, defined := vm.dict.lookup(word); !defined {
				return undefinedError(word)
			}
		}
	}
	return nil
}

// mark is a pending forward or backward reference while rewriting.
type mark struct {
	word string
	at   int
}

// rewrite turns structured control words into primitive branches:
//
//	if      ->  0branch <offset to just past else, or to then>
//	else    ->  branch  <offset to then>
//	then    ->  (nothing)
//	do      ->  (do)
//	loop    ->  (loop)  <offset back to the first word after do>
//
// Offsets count from the offset's own position. Under dynamic control, if
// else and then are left for the runtime to scan.
func (vm *VM) rewrite(body []Value) ([]Value, error) {
	out := make([]Value, 0, len(body)+len(body)/2)
	var marks []mark

	pop := func(word string, expect ...string) (mark, error) {
		if i := len(marks) - 1; i >= 0 {
			m := marks[i]
			for _, want := range expect {
				if m.word == want {
					marks = marks[:i]
					return m, nil
				}
			}
			return m, fmt.Errorf("%w: %v after %v", ErrUnbalancedControl, word, m.word)
		}
		return mark{}, fmt.Errorf("%w: %v without %v", ErrUnbalancedControl, word, expect[0])
	}

	patch := func(slot, target int) error {
		off, err := safecast.Conv[int32](target - slot)
		if err != nil {
			return err
		}
		out[slot] = Number(off)
		return nil
	}

	for i := 0; i < len(body); i++ {
		tok := body[i]
		word, isWord := tok.Name()
		if !isWord {
			out = append(out, tok)
			continue
		}

		switch {
		case word == `."`:
			end, closed := stringRun(body, i+1)
			if closed {
				end++
			}
			out = append(out, body[i:end]...)
			i = end - 1

		case word == "if" && !vm.dynamicControl:
			out = append(out, Word("0branch"), Number(0))
			marks = append(marks, mark{word, len(out) - 1})

		case word == "else" && !vm.dynamicControl:
			m, err := pop(word, "if")
			if err != nil {
				return nil, err
			}
			out = append(out, Word("branch"), Number(0))
			if err := patch(m.at, len(out)); err != nil {
				return nil, err
			}
			marks = append(marks, mark{word, len(out) - 1})

		case word == "then" && !vm.dynamicControl:
			m, err := pop(word, "if", "else")
			if err != nil {
				return nil, err
			}
			if err := patch(m.at, len(out)); err != nil {
				return nil, err
			}

		case word == "do":
			out = append(out, Word("(do)"))
			marks = append(marks, mark{word, len(out)})

		case word == "loop":
			m, err := pop(word, "do")
			if err != nil {
				return nil, err
			}
			out = append(out, Word("(loop)"), Number(0))
			if err := patch(len(out)-1, m.at); err != nil {
				return nil, err
			}

		default:
			out = append(out, tok)
		}
	}

	if i := len(marks) - 1; i >= 0 {
		return nil, fmt.Errorf("%w: unterminated %v", ErrUnbalancedControl, marks[i].word)
	}
	return out, nil
}
