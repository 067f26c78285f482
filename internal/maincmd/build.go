package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/mainer"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/depmerge"
	"github.com/foglang/fogc/project"
)

// Build implements the `build` subcommand: load config.toml from the
// given directory (or the current directory if args is empty), then run
// the full orchestrator pipeline over its source and report success or
// failure. It writes nothing to the build path; lowering to machine code
// is out of scope.
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return BuildProject(stdio, dir)
}

// BuildProject loads dir/config.toml, reads dir/main.fog, and compiles it
// through the project orchestrator, printing a one-line success report or
// the first error encountered.
func BuildProject(stdio mainer.Stdio, dir string) error {
	cfg, err := project.LoadConfig(filepath.Join(dir, "config.toml"))
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	src, err := os.ReadFile(filepath.Join(dir, "main.fog"))
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	o := project.New(cfg, nil)
	res, cerr := o.Compile(ast.ModulePath{cfg.Name}, src, depmerge.Libraries{})
	if cerr != nil {
		fmt.Fprintln(stdio.Stderr, cerr)
		return cerr
	}

	fmt.Fprintf(stdio.Stdout, "%s: compiled %d function(s)\n", cfg.Name, res.FunctionTable.Len())
	return nil
}
