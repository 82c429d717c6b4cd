// gen_vm_expects writes a curried expectVM* function for each vmTestCase
// expect* method that takes arguments, so that expectations can be shared
// between cases with vmTestCase.apply.
//
// Usage: go run scripts/gen_vm_expects.go vm_test.go vm_expects_test.go
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		log.Fatalf("usage: gen_vm_expects SOURCE OUTPUT")
	}
	srcName, outName := args[0], args[1]

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, srcName, nil, 0)
	if err != nil {
		log.Fatalln(err)
	}

	out, err := os.Create(outName)
	if err != nil {
		log.Fatalf("failed to create %v: %v", outName, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// generate into goimports, which formats into the output file
	eg, ctx := errgroup.WithContext(ctx)
	pr, pw := io.Pipe()
	eg.Go(func() error {
		defer out.Close()
		goimports := exec.CommandContext(ctx, "goimports")
		goimports.Stdin = pr
		goimports.Stdout = out
		goimports.Stderr = os.Stderr
		if err := goimports.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		err := generate(pw, fset, file, srcName, args)
		pw.CloseWithError(err)
		return err
	})
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func generate(w io.Writer, fset *token.FileSet, file *ast.File, srcName string, args []string) error {
	var buf bytes.Buffer
	buf.WriteString("package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", srcName)
	fmt.Fprintf(&buf, "//go:generate go run scripts/gen_vm_expects.go %v\n", strings.Join(args, " "))

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !isExpectation(fn) {
			continue
		}
		what := strings.TrimPrefix(fn.Name.Name, "expect")

		var params, call []string
		for _, field := range fn.Type.Params.List {
			var typ bytes.Buffer
			if err := printer.Fprint(&typ, fset, field.Type); err != nil {
				return err
			}
			_, variadic := field.Type.(*ast.Ellipsis)
			for _, name := range field.Names {
				params = append(params, name.Name+" "+typ.String())
				if variadic {
					call = append(call, name.Name+"...")
				} else {
					call = append(call, name.Name)
				}
			}
		}

		fmt.Fprintf(&buf, "\nfunc expectVM%v(%v) func(vmTestCase) vmTestCase {\n", what, strings.Join(params, ", "))
		fmt.Fprintf(&buf, "\treturn func(vmt vmTestCase) vmTestCase {\n")
		fmt.Fprintf(&buf, "\t\treturn vmt.%v(%v)\n", fn.Name.Name, strings.Join(call, ", "))
		fmt.Fprintf(&buf, "\t}\n}\n")
	}

	_, err := buf.WriteTo(w)
	return err
}

// isExpectation matches `func (vmt vmTestCase) expectX(args...) vmTestCase`.
func isExpectation(fn *ast.FuncDecl) bool {
	if fn.Recv == nil || len(fn.Recv.List) != 1 || !strings.HasPrefix(fn.Name.Name, "expect") {
		return false
	}
	if recv, ok := fn.Recv.List[0].Type.(*ast.Ident); !ok || recv.Name != "vmTestCase" {
		return false
	}
	if fn.Type.Params.NumFields() == 0 || fn.Type.Results.NumFields() != 1 {
		return false
	}
	res, ok := fn.Type.Results.List[0].Type.(*ast.Ident)
	return ok && res.Name == "vmTestCase"
}
