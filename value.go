package main

import (
	"strconv"

	"github.com/jcorbin/goforth/internal/lexer"
)

// Value is the datum flowing through the machine: either a 32-bit number or
// the name of a word. Source tokens, compiled code, and branch operands are
// all Values.
type Value struct {
	word bool
	num  int32
	name string
}

// Number returns a numeric Value.
func Number(n int32) Value { return Value{num: n} }

// Word returns a Value naming a word.
func Word(name string) Value { return Value{word: true, name: name} }

// IsWord returns true if the value names a word.
func (v Value) IsWord() bool { return v.word }

// Int returns the value's number, and false if it is a word.
func (v Value) Int() (int32, bool) { return v.num, !v.word }

// Name returns the value's word name, and false if it is a number.
func (v Value) Name() (string, bool) { return v.name, v.word }

func (v Value) String() string {
	if v.word {
		return v.name
	}
	return strconv.FormatInt(int64(v.num), 10)
}

// Parse tokenizes a line of source text into Values.
func Parse(line string) ([]Value, error) {
	toks, err := lexer.Tokenize(line)
	if err != nil {
		return nil, err
	}
	code := make([]Value, len(toks))
	for i, tok := range toks {
		if tok.Kind == lexer.Number {
			code[i] = Number(tok.Num)
		} else {
			code[i] = Word(tok.Text)
		}
	}
	return code, nil
}

// Words is a convenience for building code from source fragments, mostly for
// tests; it panics on tokenizer failure.
func Words(fragments ...string) []Value {
	var code []Value
	for _, frag := range fragments {
		part, err := Parse(frag)
		if err != nil {
			panic(err)
		}
		code = append(code, part...)
	}
	return code
}

// stringRun locates the end of a string literal opened by ." : the index of
// the first word at or after from that ends in a double quote. If there is no
// such word, len(code) and false are returned.
func stringRun(code []Value, from int) (end int, closed bool) {
	for end = from; end < len(code); end++ {
		if name, ok := code[end].Name(); ok && name != "" && name[len(name)-1] == '"' {
			return end, true
		}
	}
	return len(code), false
}
