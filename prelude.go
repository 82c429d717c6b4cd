package main

import (
	"bytes"
	"io"
)

//// The prelude: words built out of other words

var preludeKernel = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.fs" }

// Everything here could be typed in by hand; none of it needs a primitive.
// Each definition may only use words defined above it.
func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for i, s := range parts {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	// Stack shuffles beyond the primitive five.
	line(`: nip swap drop ;`)
	line(`: tuck swap over ;`)
	line(`: 2dup over over ;`)
	line(`: 2drop drop drop ;`)

	// Binary operators take the top of the stack as their left operand, so
	// "x 0 -" is 0-x, and decrementing adds a negative one.
	line(`: negate 0 - ;`)
	line(`: 1+ 1 + ;`)
	line(`: 1- -1 + ;`)

	// Comparisons do read as written though: "x 0 <" is x<0.
	line(`: 0= 0 = ;`)
	line(`: 0< 0 < ;`)

	// With conditionals we can do a little more.
	line(`: ?dup dup if dup then ;`)
	line(`: abs dup 0< if negate then ;`)
	line(`: max 2dup < if swap then drop ;`)
	line(`: min 2dup > if swap then drop ;`)

	return n, err
}
