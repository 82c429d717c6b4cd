package main

// Dynamic control: instead of being rewritten at definition time, if else
// and then stay in the code as live words that scan forward through the
// current frame for their partners when a branch is taken. Unbalanced
// structures are only detected when such a scan runs off the end.

// Name   Function
// if     pop; if zero skip ahead to the matching else or then
func (vm *VM) dynamicIf() error {
	flag, err := vm.pop()
	if err != nil {
		return err
	}
	if flag != 0 {
		return nil
	}
	at, word, err := vm.scanControl(true)
	if err != nil {
		return err
	}
	if word == "else" {
		// land on the else itself, telling it that its body was chosen
		vm.frame.prog = at
		vm.cstack.Push(int32(0))
		return nil
	}
	vm.frame.prog = at + 1
	return nil
}

// Name   Function
// else   unless entered from a false if, skip ahead past the matching then
func (vm *VM) dynamicElse() error {
	flag := int32(1)
	if val, ok := vm.cstack.Pop(); ok {
		flag = val.(int32)
	}
	if flag == 0 {
		return nil
	}
	at, _, err := vm.scanControl(false)
	if err != nil {
		return err
	}
	vm.frame.prog = at + 1
	return nil
}

// Name   Function
// then   marks the end of an if; does nothing
func (vm *VM) dynamicThen() error { return nil }

// scanControl searches forward from the program counter for the then (or,
// if elseStops, the else) that pairs with an already consumed if, skipping
// over nested pairs and string literals. It returns the partner's index.
func (vm *VM) scanControl(elseStops bool) (int, string, error) {
	fr := vm.frame
	depth := 0
	for i := fr.prog; i < len(fr.code); i++ {
		word, isWord := fr.code[i].Name()
		if !isWord {
			continue
		}
		switch word {
		case `."`:
			i, _ = stringRun(fr.code, i+1)
		case "if":
			depth++
		case "then":
			if depth == 0 {
				return i, word, nil
			}
			depth--
		case "else":
			if depth == 0 && elseStops {
				return i, word, nil
			}
		}
	}
	return 0, "", ErrUnbalancedControl
}

var dynamicControlWords []builtinDef

func init() {
	dynamicControlWords = []builtinDef{
		{"if", (*VM).dynamicIf},
		{"else", (*VM).dynamicElse},
		{"then", (*VM).dynamicThen},
	}
}
