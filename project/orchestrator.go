package project

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/sirupsen/logrus"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/depmerge"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/lexer"
	"github.com/foglang/fogc/lang/parser"
	"github.com/foglang/fogc/lang/signature"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// FunctionTable is the ordered name -> parsed-definition map handed off
// to the downstream lowering collaborator.
type FunctionTable = *orderedmap.OrderedMap[string, *ast.FunctionDefinition]

// SignatureTable is an ordered name/path -> signature map, used for both
// imported_functions and library_public_function_table.
type SignatureTable = *orderedmap.OrderedMap[string, *ast.Signature]

// Result is the downstream lowering contract: everything the core hands
// off once a compilation unit has been fully parsed and checked.
type Result struct {
	FunctionTable              FunctionTable
	ImportedFunctions          SignatureTable
	CustomTypes                *types.Registry
	LibraryPublicFunctionTable SignatureTable
}

// Orchestrator drives the pipeline for a single compilation unit (one
// source file's worth of tokens, for now; multi-file projects call
// Compile once per source file and merge the CustomTypes registries and
// function tables themselves, since the core treats each as sharing one
// project module path).
type Orchestrator struct {
	Config *Config
	Log    *logrus.Logger
}

// New builds an Orchestrator. A nil log defaults to logrus's standard
// logger.
func New(cfg *Config, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{Config: cfg, Log: log}
}

// Compile runs the lexer, signature collector, dependency merger, and
// body parser over src in order, then validates the entry point per
// o.Config.IsLibrary. libs supplies the already-compiled signature
// tables of the project's library dependencies, keyed by the dependency
// name used in config.toml's `dependencies` table.
func (o *Orchestrator) Compile(modulePath ast.ModulePath, src []byte, libs depmerge.Libraries) (*Result, *errs.Error) {
	insts, lerr := lexer.Lex(src)
	if lerr != nil {
		return nil, lerr
	}
	o.Log.WithFields(logrus.Fields{"phase": "lex", "tokens": len(insts)}).Debug("lexed source")

	sigOut, serr := signature.Collect(insts, modulePath)
	if serr != nil {
		return nil, serr
	}
	o.Log.WithFields(logrus.Fields{"phase": "signature", "functions": len(sigOut.Functions)}).Debug("collected signatures")

	local := depmerge.BuildLocalIndex(sigOut.Functions)
	imports, merr := depmerge.Merge(sigOut.SourceImports, modulePath, local, libs)
	if merr != nil {
		return nil, merr
	}
	for _, ext := range sigOut.ExternalImports {
		imports.Set(ext.Name, ext)
	}
	o.Log.WithFields(logrus.Fields{"phase": "depmerge", "imports": imports.Len()}).Debug("merged dependencies")

	kept := o.elideFeatureGated(sigOut.Functions)
	for _, f := range kept {
		if _, ok := imports.Get(f.Signature.Name); !ok {
			imports.Set(f.Signature.Name, f.Signature)
		}
	}

	p := parser.New(sigOut.CustomTypes, imports)
	functionTable := orderedmap.New[string, *ast.FunctionDefinition]()
	for _, f := range kept {
		body, perr := p.ParseFunction(f)
		if perr != nil {
			return nil, perr
		}
		functionTable.Set(f.Signature.Name, &ast.FunctionDefinition{Signature: f.Signature, Body: body})
	}
	o.Log.WithFields(logrus.Fields{"phase": "body-parse", "functions": functionTable.Len()}).Debug("parsed bodies")

	if err := o.validateEntryPoint(functionTable); err != nil {
		return nil, err
	}

	importedFuncs := orderedmap.New[string, *ast.Signature]()
	for _, ext := range sigOut.ExternalImports {
		importedFuncs.Set(ext.Name, ext)
	}

	libPublic := orderedmap.New[string, *ast.Signature]()
	for pr := sigOut.LibraryPublic.Oldest(); pr != nil; pr = pr.Next() {
		libPublic.Set(pr.Key, pr.Value)
	}

	return &Result{
		FunctionTable:              functionTable,
		ImportedFunctions:          importedFuncs,
		CustomTypes:                sigOut.CustomTypes,
		LibraryPublicFunctionTable: libPublic,
	}, nil
}

// elideFeatureGated drops every function whose signature carries
// @feature("X") where X is not in the project's enabled-feature set.
// This happens before body parsing, so an elided function's body may
// reference anything without error (spec.md 4.G).
func (o *Orchestrator) elideFeatureGated(funcs []*ast.UnparsedFunctionDefinition) []*ast.UnparsedFunctionDefinition {
	var kept []*ast.UnparsedFunctionDefinition
	for _, f := range funcs {
		if feature, ok := f.Signature.HasFeatureGate(); ok && !o.Config.EnabledFeatures(feature) {
			o.Log.WithFields(logrus.Fields{"function": f.Signature.Name, "feature": feature}).Debug("elided feature-gated function")
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// validateEntryPoint enforces spec.md 4.G's executable/library split: an
// executable project requires a zero-parameter, i32-returning `main`;
// a library project allows main's absence and only warns if present.
func (o *Orchestrator) validateEntryPoint(funcs FunctionTable) *errs.Error {
	main, ok := funcs.Get("main")
	if o.Config.IsLibrary {
		if ok {
			o.Log.Warn("library project defines a main function; it will not be used as an entry point")
		}
		return nil
	}
	if !ok {
		return errs.New(errs.NoMain, token.Range{})
	}
	if main.Signature.Parameters.Len() != 0 || main.Signature.ReturnType.Kind != types.I32 {
		return errs.New(errs.InvalidMain, token.Range{})
	}
	return nil
}
