// Package depmerge implements the dependency merger: it resolves the
// source import directives the signature collector recorded against the
// current project's own function index and its declared library
// dependencies, producing the single ordered import table the body
// parser resolves bare calls against.
package depmerge

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/signature"
)

// Table is an ordered name -> signature map. Local tables are keyed by
// the function's full path (its module path plus its own name, joined
// with "::"); a resolved import table is keyed by the bare name a call
// site uses.
type Table = *orderedmap.OrderedMap[string, *ast.Signature]

// Libraries maps a project dependency's declared name (the config.toml
// `dependencies` table key) to the signature table the orchestrator
// built by compiling that dependency's own sources.
type Libraries map[string]Table

// BuildLocalIndex indexes every function defined anywhere in the current
// project by its full path (module path + name), the key intra-project
// source imports are resolved against.
func BuildLocalIndex(funcs []*ast.UnparsedFunctionDefinition) Table {
	idx := orderedmap.New[string, *ast.Signature]()
	for _, f := range funcs {
		full := append(append(ast.ModulePath{}, f.Signature.ModulePath...), f.Signature.Name)
		idx.Set(full.String(), f.Signature)
	}
	return idx
}

// Merge resolves every import against local (intra-project) and libs
// (cross-library, filtered to public-library visibility), in declaration
// order (spec.md 4.F: "stable merge... imports are inserted in
// declaration order"). Each import must resolve to exactly one
// signature: zero candidates fails FunctionDependencyNotFound, more than
// one fails DuplicateSignatureImports.
func Merge(imports []signature.SourceImport, modulePath ast.ModulePath, local Table, libs Libraries) (Table, *errs.Error) {
	out := orderedmap.New[string, *ast.Signature]()
	for _, imp := range imports {
		sig, err := resolveOne(imp, modulePath, local, libs)
		if err != nil {
			return nil, err
		}
		name := imp.Path[len(imp.Path)-1]
		out.Set(name, sig)
	}
	return out, nil
}

func resolveOne(imp signature.SourceImport, modulePath ast.ModulePath, local Table, libs Libraries) (*ast.Signature, *errs.Error) {
	var candidates []*ast.Signature

	localKey := append(append(ast.ModulePath{}, modulePath...), imp.Path...)
	if sig, ok := local.Get(localKey.String()); ok {
		candidates = append(candidates, sig)
	}

	if len(imp.Path) > 1 {
		if tbl, ok := libs[imp.Path[0]]; ok {
			libKey := ast.ModulePath(imp.Path[1:])
			if sig, ok := tbl.Get(libKey.String()); ok {
				if sig.Visibility == ast.PublicLibrary {
					candidates = append(candidates, sig)
				}
			}
		}
	}

	switch len(candidates) {
	case 0:
		return nil, errs.NewNamed(errs.FunctionDependencyNotFound, imp.Range, imp.Path.String())
	case 1:
		return candidates[0], nil
	default:
		return nil, errs.NewNamed(errs.DuplicateSignatureImports, imp.Range, imp.Path.String())
	}
}
