package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps a parsed-node tree as an indented, one-node-per-line tree,
// annotating each node with its source range. It is used by the CLI's
// `parse` subcommand to report what the body parser produced.
type Printer struct {
	Output io.Writer
}

// Print walks inst depth-first and writes one line per node.
func (p *Printer) Print(inst *Instance) error {
	pp := &printer{w: p.Output}
	Walk(pp, inst)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(inst *Instance, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.printNode(inst, p.depth)
	p.depth++
	return p
}

func (p *printer) printNode(inst *Instance, indent int) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%d:%d-%d:%d %s\n",
		strings.Repeat(". ", indent),
		inst.Range.Start.Line, inst.Range.Start.Col,
		inst.Range.End.Line, inst.Range.End.Col,
		describe(inst.Node))
}

// describe renders a one-line label for a node kind, without recursing
// into its children (the Printer's own Walk handles that).
func describe(n Node) string {
	switch n := n.(type) {
	case *NewVariable:
		return fmt.Sprintf("NewVariable %s: %s (id=%d)", n.Name, n.Type, n.ID)
	case *BasicReference:
		return fmt.Sprintf("VariableReference %s", n.Name)
	case *ArrayReference:
		return "ArrayReference"
	case *StructFieldReference:
		return fmt.Sprintf("StructFieldReference %v", n.Chain)
	case *Literal:
		return fmt.Sprintf("Literal %s %s", n.Type, n.Text)
	case *TypeCast:
		return fmt.Sprintf("TypeCast -> %s", n.Target)
	case *MathematicalExpression:
		return "MathematicalExpression"
	case *MathematicalBlock:
		return "MathematicalBlock"
	case *Brackets:
		return "Brackets"
	case *Comparison:
		return "Comparison"
	case *FunctionCall:
		return fmt.Sprintf("FunctionCall %s", n.Name)
	case *SetValue:
		return "SetValue"
	case *ReturnValue:
		return "ReturnValue"
	case *If:
		return "If"
	case *CodeBlock:
		return "CodeBlock"
	case *Loop:
		return "Loop"
	case *ControlFlow:
		if n.Kind == Break {
			return "ControlFlow break"
		}
		return "ControlFlow continue"
	case *ArrayInitialization:
		return "ArrayInitialization"
	case *GetPointerTo:
		return "GetPointerTo"
	case *DerefPointer:
		return "DerefPointer"
	default:
		return fmt.Sprintf("%T", n)
	}
}
