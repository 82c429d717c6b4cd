package main

import (
	"strconv"
	"strings"
)

//// Primitives

// Binary operations pop a (the top) and then b, pushing a OP b; an underflow
// on either pop fails immediately, without restoring anything already popped.

//// Arithmetic

// Symbol   Name       Function
//    +     add        pop a, pop b, push a+b
func (vm *VM) add() error { return vm.binary(func(a, b int32) int32 { return a + b }) }

// Symbol   Name       Function
//    -     subtract   pop a, pop b, push a-b
func (vm *VM) sub() error { return vm.binary(func(a, b int32) int32 { return a - b }) }

// Symbol   Name       Function
//    *     multiply   pop a, pop b, push a*b
func (vm *VM) mul() error { return vm.binary(func(a, b int32) int32 { return a * b }) }

// Symbol   Name       Function
//    /     divide     pop a, pop b, push a/b truncated toward zero
func (vm *VM) div() error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	if b == 0 {
		return ErrDivisionByZero
	}
	vm.push(a / b)
	return nil
}

// Symbol   Name       Function
//   mod    modulo     pop a, pop b, push the remainder of a/b
func (vm *VM) mod() error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	if b == 0 {
		return ErrDivisionByZero
	}
	vm.push(a % b)
	return nil
}

//// Comparison

// Flags are -1 (all bits set) for true and 0 for false. Comparisons read as
// written: "5 3 >" is true.

// Symbol   Name       Function
//    =     equal      pop a, pop b, push b=a
func (vm *VM) eq() error { return vm.binary(func(a, b int32) int32 { return boolInt(b == a) }) }

// Symbol   Name       Function
//    >     greater    pop a, pop b, push b>a
func (vm *VM) gt() error { return vm.binary(func(a, b int32) int32 { return boolInt(b > a) }) }

// Symbol   Name       Function
//    <     less       pop a, pop b, push b<a
func (vm *VM) lt() error { return vm.binary(func(a, b int32) int32 { return boolInt(b < a) }) }

//// Bitwise

// Name     Function
// and      pop a, pop b, push a&b
func (vm *VM) and() error { return vm.binary(func(a, b int32) int32 { return a & b }) }

// Name     Function
// or       pop a, pop b, push a|b
func (vm *VM) or() error { return vm.binary(func(a, b int32) int32 { return a | b }) }

// Name     Function
// invert   pop a, push its bitwise complement
func (vm *VM) invert() error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	vm.push(^a)
	return nil
}

func (vm *VM) pop2() (a, b int32, err error) {
	if a, err = vm.pop(); err == nil {
		b, err = vm.pop()
	}
	return a, b, err
}

func (vm *VM) binary(op func(a, b int32) int32) error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	vm.push(op(a, b))
	return nil
}

//// Stack shuffling

// Name         Function
// dup          ( a -- a a )
func (vm *VM) dup() error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	vm.push(a)
	vm.push(a)
	return nil
}

// Name         Function
// drop         ( a -- )
func (vm *VM) drop() error {
	_, err := vm.pop()
	return err
}

// Name         Function
// swap         ( b a -- a b )
func (vm *VM) swap() error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	vm.push(a)
	vm.push(b)
	return nil
}

// Name         Function
// over         ( b a -- b a b )
func (vm *VM) over() error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	vm.push(b)
	vm.push(a)
	vm.push(b)
	return nil
}

// Name         Function
// rot          ( c b a -- b a c )
func (vm *VM) rot() error {
	a, b, err := vm.pop2()
	if err != nil {
		return err
	}
	c, err := vm.pop()
	if err != nil {
		return err
	}
	vm.push(b)
	vm.push(a)
	vm.push(c)
	return nil
}

// Name         Function
// clearstack   empty the data stack
func (vm *VM) clearstack() error {
	vm.stack = vm.stack[:0]
	return nil
}

// Name         Function
// depth        push the number of items on the data stack
func (vm *VM) depth() error {
	vm.push(int32(len(vm.stack)))
	return nil
}

//// Return stack

// Name   Function
// >r     pop the data stack, push onto the return stack
func (vm *VM) toR() error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	vm.pushr(a)
	return nil
}

// Name   Function
// r>     pop the return stack, push onto the data stack
func (vm *VM) fromR() error {
	a, err := vm.popr()
	if err != nil {
		return err
	}
	vm.push(a)
	return nil
}

//// Output

// Symbol   Name         Function
//    .     print        pop and print followed by a space
func (vm *VM) dot() error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	return vm.writef("%d ", a)
}

// Symbol   Name         Function
//   .s     show stack   print depth and contents, bottom first, without popping
func (vm *VM) dotS() error {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(strconv.Itoa(len(vm.stack)))
	sb.WriteString("> ")
	for _, val := range vm.stack {
		sb.WriteString(strconv.FormatInt(int64(val), 10))
		sb.WriteByte(' ')
	}
	return vm.writeString(sb.String())
}

// Symbol   Name         Function
//   ."     print text   print the following tokens up to one ending in a
//                       double quote, then continue after it
func (vm *VM) dotQuote() error {
	fr := vm.frame
	end, closed := stringRun(fr.code, fr.prog)
	words := make([]string, 0, end-fr.prog+1)
	for _, val := range fr.code[fr.prog:end] {
		words = append(words, val.String())
	}
	if closed {
		last := fr.code[end].String()
		if last = last[:len(last)-1]; last != "" {
			words = append(words, last)
		}
		end++
	}
	fr.prog = end
	return vm.writeWords(words...)
}

// Name   Function
// emit   pop and print as a character
func (vm *VM) emit() error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	return vm.writeRune(rune(a))
}

// Name   Function
// cr     print a line break
func (vm *VM) cr() error { return vm.writeRune('\n') }

// Name    Function
// words   print every dictionary name
func (vm *VM) words() error {
	if err := vm.writeWords(vm.dict.names()...); err != nil {
		return err
	}
	return vm.writeRune('\n')
}

//// Branching

// Branch primitives are followed in the code by a numeric offset, relative
// to the offset's own position.

// Name      Function
// 0branch   pop; if zero jump by the following offset, otherwise skip it
func (vm *VM) zeroBranch() error {
	flag, err := vm.pop()
	if err != nil {
		return err
	}
	if flag != 0 {
		vm.frame.prog++
		return nil
	}
	return vm.jump()
}

// Name      Function
// branch    jump by the following offset
func (vm *VM) branch() error { return vm.jump() }

// Name      Function
// (do)      pop index, pop limit, push limit then index onto the return stack
func (vm *VM) doLoop() error {
	index, limit, err := vm.pop2()
	if err != nil {
		return err
	}
	vm.pushr(limit)
	vm.pushr(index)
	return nil
}

// Name      Function
// (loop)    increment the loop index; while below the limit jump back by the
//           following offset, otherwise drop the loop parameters and skip it
func (vm *VM) loop() error {
	index, err := vm.popr()
	if err != nil {
		return err
	}
	limit, err := vm.popr()
	if err != nil {
		return err
	}
	if index++; index < limit {
		vm.pushr(limit)
		vm.pushr(index)
		return vm.jump()
	}
	vm.frame.prog++
	return nil
}

// Name      Function
// i         push a copy of the innermost loop index
func (vm *VM) loopIndex() error {
	if len(vm.rstack) == 0 {
		return ErrStackUnderflow
	}
	vm.push(vm.rstack[len(vm.rstack)-1])
	return nil
}

//// Definitions

// Symbol   Name     Function
//    :     define   start compiling; the next token names the new word
func (vm *VM) define() error {
	vm.compiling = true
	vm.buffer = vm.buffer[:0]
	return nil
}

// Symbol   Name     Function
//    ;     end      compile the buffered definition into the dictionary
func (vm *VM) endDefinition() error {
	if !vm.compiling {
		return wordError{";", ErrOutsideCompileMode}
	}
	src := vm.buffer
	vm.compiling = false
	vm.buffer = nil
	return vm.compileDefinition(src)
}

type builtinDef struct {
	name string
	prim primitive
}

var builtins []builtinDef

func init() {
	builtins = []builtinDef{
		{"+", (*VM).add},
		{"-", (*VM).sub},
		{"*", (*VM).mul},
		{"/", (*VM).div},
		{"mod", (*VM).mod},

		{"=", (*VM).eq},
		{">", (*VM).gt},
		{"<", (*VM).lt},

		{"and", (*VM).and},
		{"or", (*VM).or},
		{"invert", (*VM).invert},

		{"dup", (*VM).dup},
		{"drop", (*VM).drop},
		{"swap", (*VM).swap},
		{"over", (*VM).over},
		{"rot", (*VM).rot},
		{"clearstack", (*VM).clearstack},
		{"depth", (*VM).depth},

		{">r", (*VM).toR},
		{"r>", (*VM).fromR},

		{".", (*VM).dot},
		{".s", (*VM).dotS},
		{`."`, (*VM).dotQuote},
		{"emit", (*VM).emit},
		{"cr", (*VM).cr},
		{"words", (*VM).words},

		{"0branch", (*VM).zeroBranch},
		{"branch", (*VM).branch},
		{"(do)", (*VM).doLoop},
		{"(loop)", (*VM).loop},
		{"i", (*VM).loopIndex},

		{":", (*VM).define},
		{";", (*VM).endDefinition},
	}
}

// structuralWords only have meaning inside a definition, where the compiler
// rewrites them into branches.
var structuralWords = []string{"if", "else", "then", "do", "loop"}
