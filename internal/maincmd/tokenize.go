package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/foglang/fogc/lang/lexer"
)

// Tokenize implements the `tokenize` subcommand: lex each file and print
// its token vector, one token per line, with no parsing.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles lexes each named file in turn and writes its token
// vector to stdio.Stdout. It stops at the first file that fails to lex.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
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
		for _, inst := range insts {
			fmt.Fprintf(stdio.Stdout, "%d:%d-%d:%d\t%s\t%s\n",
				inst.Range.Start.Line, inst.Range.Start.Col,
				inst.Range.End.Line, inst.Range.End.Col,
				inst.Tok, inst.Text)
		}
	}
	return nil
}
