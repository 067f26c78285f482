package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/depmerge"
	"github.com/foglang/fogc/lang/lexer"
	"github.com/foglang/fogc/lang/parser"
	"github.com/foglang/fogc/lang/signature"
)

// Parse implements the `parse` subcommand: run the signature collector and
// the body parser over each file and print the resulting function bodies,
// with no lowering and no entry-point validation.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, args...)
}

// ParseFiles lexes, collects signatures for, and parses the bodies of each
// named file in turn, printing every parsed function's body tree to
// stdio.Stdout. It stops at the first file that fails any stage.
func ParseFiles(stdio mainer.Stdio, files ...string) error {
	printer := ast.Printer{Output: stdio.Stdout}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		insts, lerr := lexer.Lex(src)
		if lerr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, lerr)
			return lerr
		}

		sigOut, serr := signature.Collect(insts, ast.ModulePath{file})
		if serr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, serr)
			return serr
		}

		local := depmerge.BuildLocalIndex(sigOut.Functions)
		imports, merr := depmerge.Merge(sigOut.SourceImports, ast.ModulePath{file}, local, nil)
		if merr != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, merr)
			return merr
		}
		for _, ext := range sigOut.ExternalImports {
			imports.Set(ext.Name, ext)
		}
		for _, f := range sigOut.Functions {
			if _, ok := imports.Get(f.Signature.Name); !ok {
				imports.Set(f.Signature.Name, f.Signature)
			}
		}

		p := parser.New(sigOut.CustomTypes, imports)
		for _, f := range sigOut.Functions {
			fmt.Fprintf(stdio.Stdout, "-- %s --\n", f.Signature.Name)
			body, perr := p.ParseFunction(f)
			if perr != nil {
				fmt.Fprintf(stdio.Stderr, "%s: %s: %s\n", file, f.Signature.Name, perr)
				return perr
			}
			for _, inst := range body {
				if err := printer.Print(inst); err != nil {
					fmt.Fprintln(stdio.Stderr, err)
					return err
				}
			}
		}
	}
	return nil
}
