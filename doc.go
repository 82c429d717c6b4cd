/* Package main: goforth, a small Forth

Forth programs work on a stack of numbers. Every token is either a number,
which is pushed, or the name of a word, which is looked up in the dictionary
and executed. Words take their operands from the stack and leave results on
it:

	2 3 + .        prints "5 "
	10 3 - .       prints "-7 "

Binary operators take the top of the stack as their left operand, so the
second example computes 3-10. Comparisons read as written ("5 3 >" is true)
and leave -1 for true, 0 for false.

Numbers are signed 32-bit integers; arithmetic wraps. Division and modulo
by zero fail.

New words are defined between : and ; . The first token names the word; the
remaining tokens become its body, and every word it mentions must already be
defined (or be the word itself, allowing recursion):

	: square dup * ;
	5 square .     prints "25 "

Inside a definition, if/else/then and do/loop are compiled into primitive
branches. A branch word is followed in the compiled code by an offset,
counted from the offset's own position:

	: sign 0 < if -1 else 1 then ;
	compiles to  0 < 0branch 4 -1 branch 2 1

With dynamic control enabled, if/else/then are instead left in the code and
scan forward for their partners when executed.

A definition may span lines; the interpreter stays in compile mode until the
closing ; is seen. The first ; ends it, even inside a ." string, whose text
then runs to the end of the definition.

Failure of any word ends the line being interpreted; whatever was already
done to the stacks and dictionary remains. Each interpreted line is answered
with "ok" or an error message.

Section 1: the machine; see vm.go and prims.go

Section 2: the compiler; see compile.go and control.go

Section 3: words defined in Forth itself; see prelude.go

*/
package main
