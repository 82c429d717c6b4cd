package main

import (
	"math"
	"testing"
)

func Test_primitives(t *testing.T) {
	var testCases vmTestCases

	// primitive tests that work by driving individual VM methods
	var (
		add        = (*VM).add
		sub        = (*VM).sub
		mul        = (*VM).mul
		div        = (*VM).div
		mod        = (*VM).mod
		eq         = (*VM).eq
		gt         = (*VM).gt
		lt         = (*VM).lt
		and        = (*VM).and
		or         = (*VM).or
		invert     = (*VM).invert
		dup        = (*VM).dup
		drop       = (*VM).drop
		swap       = (*VM).swap
		over       = (*VM).over
		rot        = (*VM).rot
		clearstack = (*VM).clearstack
		depth      = (*VM).depth
		toR        = (*VM).toR
		fromR      = (*VM).fromR
		dot        = (*VM).dot
		dotS       = (*VM).dotS
		emit       = (*VM).emit
		cr         = (*VM).cr
	)

	testCases = append(testCases,
		// binary operations take the top as their left operand
		vmTest("add").withStack(7, 5, 3).do(add).expectStack(7, 8),
		vmTest("sub").withStack(7, 10, 3).do(sub).expectStack(7, -7),
		vmTest("mul").withStack(11, 5, 6).do(mul).expectStack(11, 30),
		vmTest("div").withStack(3, 13).do(div).expectStack(4),
		vmTest("div truncates").withStack(3, -13).do(div).expectStack(-4),
		vmTest("mod").withStack(3, 13).do(mod).expectStack(1),
		vmTest("add wraps").withStack(1, math.MaxInt32).do(add).expectStack(math.MinInt32),
		vmTest("mul wraps").withStack(2, math.MaxInt32).do(mul).expectStack(-2),

		vmTest("div by zero").withStack(0, 5).do(div).expectError(ErrDivisionByZero).expectStack(),
		vmTest("mod by zero").withStack(9, 0, 5).do(mod).expectError(ErrDivisionByZero).expectStack(9),

		// comparisons read as written
		vmTest("gt true").withStack(5, 3).do(gt).expectStack(-1),
		vmTest("gt false").withStack(3, 5).do(gt).expectStack(0),
		vmTest("lt true").withStack(3, 5).do(lt).expectStack(-1),
		vmTest("lt false").withStack(5, 5).do(lt).expectStack(0),
		vmTest("eq true").withStack(4, 4).do(eq).expectStack(-1),
		vmTest("eq false").withStack(4, 5).do(eq).expectStack(0),

		vmTest("and").withStack(12, 10).do(and).expectStack(8),
		vmTest("or").withStack(12, 10).do(or).expectStack(14),
		vmTest("invert").withStack(0).do(invert).expectStack(-1),
		vmTest("invert flag").withStack(-1).do(invert).expectStack(0),

		// stack shuffling
		vmTest("dup").withStack(1, 2).do(dup).expectStack(1, 2, 2),
		vmTest("drop").withStack(1, 2).do(drop).expectStack(1),
		vmTest("swap").withStack(1, 2, 3).do(swap).expectStack(1, 3, 2),
		vmTest("over").withStack(1, 2).do(over).expectStack(1, 2, 1),
		vmTest("rot").withStack(1, 2, 3).do(rot).expectStack(2, 3, 1),
		vmTest("rot^3").withStack(1, 2, 3).do(rot, rot, rot).expectStack(1, 2, 3),
		vmTest("swap^2").withStack(4, 5).do(swap, swap).expectStack(4, 5),
		vmTest("clearstack").withStack(1, 2, 3).do(clearstack).expectStack(),
		vmTest("depth").withStack(8, 9).do(depth).expectStack(8, 9, 2),
		vmTest("depth empty").do(depth).expectStack(0),

		// return stack transfer
		vmTest(">r").withStack(1, 2).do(toR).expectStack(1).expectRStack(2),
		vmTest("r>").withRStack(3).do(fromR).expectStack(3).expectRStack(),
		vmTest(">r r>").withStack(5).do(toR, fromR).expectStack(5).expectRStack(),

		// output
		vmTest("dot").withStack(1, 42).do(dot).expectStack(1).expectOutput("42 "),
		vmTest("dot negative").withStack(-3).do(dot).expectOutput("-3 "),
		vmTest(".s").withStack(1, 2, 3).do(dotS).expectStack(1, 2, 3).expectOutput("<3> 1 2 3 "),
		vmTest(".s empty").do(dotS).expectOutput("<0> "),
		vmTest("emit").withStack(72, 105).do(swap, emit, emit).expectOutput("Hi"),
		vmTest("cr").do(cr).expectOutput("\n"),
	)

	// an underflow leaves only what was never popped
	for _, tc := range []struct {
		name  string
		op    func(vm *VM) error
		stack []int32
	}{
		{"+", add, []int32{1}},
		{"-", sub, []int32{1}},
		{"*", mul, nil},
		{"/", div, []int32{1}},
		{"mod", mod, nil},
		{"=", eq, []int32{1}},
		{">", gt, []int32{1}},
		{"<", lt, nil},
		{"and", and, []int32{1}},
		{"or", or, nil},
		{"swap", swap, []int32{1}},
		{"over", over, []int32{1}},
		{"rot", rot, []int32{1, 2}},
		{"dup", dup, nil},
		{"drop", drop, nil},
		{".", dot, nil},
		{"emit", emit, nil},
		{">r", toR, nil},
		{"invert", invert, nil},
	} {
		vmt := vmTest(tc.name+" underflow").do(tc.op)
		if tc.stack != nil {
			vmt = vmt.withStack(tc.stack...)
		}
		testCases = append(testCases, vmt.apply(
			expectVMError(ErrStackUnderflow),
			expectVMStack(),
		))
	}
	testCases = append(testCases,
		vmTest("r> underflow").do(fromR).expectError(ErrStackUnderflow),
	)

	testCases.run(t)
}

func Test_interpret(t *testing.T) {
	vmTestCases{
		vmTest("numbers").withInput("1 2 3").expectStack(1, 2, 3),
		vmTest("signed numbers").withInput("-5 +7").expectStack(-5, 7),
		vmTest("add print").withInput("2 3 + .").expectOutput("5 ").expectStack(),
		vmTest("sub order").withInput("10 3 - .").expectOutput("-7 "),
		vmTest("gt").withInput("5 3 > .").expectOutput("-1 "),
		vmTest("stack persists").withInput("1 2", "3", "+").expectStack(1, 5),
		vmTest("case sensitive").withInput("1 DUP").expectError(ErrWordNotFound).
			expectFailingWord("DUP").expectStack(1),
		vmTest("unknown word").withInput("1 2 foo 3").expectError(ErrWordNotFound).
			expectFailingWord("foo").expectStack(1, 2),
		vmTest("failure keeps progress").withInput("1 2 + drop drop 7").
			expectError(ErrStackUnderflow).expectStack(),
		vmTest("overflowing literal is a word").withInput("99999999999").
			expectError(ErrWordNotFound).expectFailingWord("99999999999"),
		vmTest("dot quote").withInput(`." hello world" 1`).
			expectOutput("hello world").expectStack(1),
		vmTest("dot quote unclosed").withInput(`." hello world`).
			expectOutput("hello world").expectStack(),
		vmTest("dot quote empty").withInput(`." " 2`).
			expectOutput("").expectStack(2),
		vmTest("words").withInput(": zz 1 ;", "words").expectOutput(lines(
			`(do) (loop) * + - . ." .s / 0branch : ; < = > >r ` +
				`and branch clearstack cr depth do drop dup else emit i if ` +
				`invert loop mod or over r> rot swap then words zz`,
		)),
		vmTest("structural outside definition").withInput("1 if").
			expectError(ErrOutsideCompileMode).expectFailingWord("if"),
		vmTest("semicolon outside definition").withInput(";").
			expectError(ErrOutsideCompileMode).expectFailingWord(";"),
	}.run(t)
}
