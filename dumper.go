package main

import (
	"fmt"
	"io"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	builtins bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	if dump.vm.compiling {
		fmt.Fprintf(dump.out, "  compiling: %v\n", dump.vm.buffer)
	}
	dump.dumpStacks()
	dump.dumpDict()
}

func (dump vmDumper) dumpStacks() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	fmt.Fprintf(dump.out, "  rstack: %v\n", dump.vm.rstack)
	if fr := dump.vm.frame; fr != nil {
		fmt.Fprintf(dump.out, "  frame: %v %v\n", fr, fr.code)
	}
	if frames := dump.vm.frames; frames != nil && !frames.Empty() {
		for _, val := range frames.Values() {
			fr := val.(*frame)
			fmt.Fprintf(dump.out, "  caller: %v %v\n", fr, fr.code)
		}
	}
}

func (dump vmDumper) dumpDict() {
	fmt.Fprintf(dump.out, "# Dictionary\n")
	var natives []string
	for _, name := range dump.vm.dict.names() {
		fn, _ := dump.vm.dict.lookup(name)
		if body, ok := fn.Body(); ok {
			fmt.Fprintf(dump.out, "  : %v %v ;\n", name, formatCode(body))
		} else {
			natives = append(natives, name)
		}
	}
	if dump.builtins && len(natives) > 0 {
		fmt.Fprintf(dump.out, "  native: %v\n", strings.Join(natives, " "))
	}
}

// formatCode renders compiled code with branch offsets resolved to their
// target index, e.g. "0branch(->5)".
func formatCode(code []Value) string {
	var sb strings.Builder
	for i := 0; i < len(code); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(code[i].String())
		switch name, _ := code[i].Name(); name {
		case "0branch", "branch", "(loop)":
			if i+1 < len(code) {
				if off, isNum := code[i+1].Int(); isNum {
					fmt.Fprintf(&sb, "(->%v)", i+1+int(off))
					i++
				}
			}
		}
	}
	return sb.String()
}
