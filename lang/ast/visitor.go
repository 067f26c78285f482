package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

// List of visit directions.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement for a Visitor, which gets called
// for each participating node in the call to Walk. A node's children can
// be skipped by returning a nil visitor from the call to Visit.
type Visitor interface {
	Visit(inst *Instance, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface.
type VisitorFunc func(inst *Instance, dir VisitDirection) Visitor

// Visit implements the Visitor interface for VisitorFunc.
func (f VisitorFunc) Visit(inst *Instance, dir VisitDirection) Visitor {
	return f(inst, dir)
}

// Walk visits inst and its children with v, depth-first. It calls Visit in
// VisitEnter direction before descending into children and, if Visit
// returned a non-nil Visitor, again in VisitExit direction after every
// child has been walked.
func Walk(v Visitor, inst *Instance) {
	if inst == nil {
		return
	}
	if v = v.Visit(inst, VisitEnter); v == nil {
		return
	}
	for _, child := range children(inst.Node) {
		Walk(v, child)
	}
	v.Visit(inst, VisitExit)
}

// children returns the immediate child Instances of n, in source order.
func children(n Node) []*Instance {
	switch n := n.(type) {
	case *NewVariable:
		if n.Init != nil {
			return []*Instance{n.Init}
		}
	case *ArrayReference:
		return []*Instance{n.Base, n.Index}
	case *StructFieldReference:
		return []*Instance{n.Base}
	case *TypeCast:
		return []*Instance{n.Expr}
	case *MathematicalExpression:
		return []*Instance{n.Left, n.Right}
	case *MathematicalBlock:
		return []*Instance{n.Inner}
	case *Brackets:
		return []*Instance{n.Inner}
	case *Comparison:
		return []*Instance{n.Left, n.Right}
	case *FunctionCall:
		var out []*Instance
		for p := n.Args.Oldest(); p != nil; p = p.Next() {
			out = append(out, p.Value.Expr)
		}
		return out
	case *SetValue:
		return []*Instance{n.Target, n.Value}
	case *ReturnValue:
		if n.Expr != nil {
			return []*Instance{n.Expr}
		}
	case *If:
		out := append([]*Instance{n.Cond}, n.Then...)
		return append(out, n.Else...)
	case *CodeBlock:
		return n.Body
	case *Loop:
		return n.Body
	case *ArrayInitialization:
		return n.Elems
	case *GetPointerTo:
		return []*Instance{n.Expr}
	case *DerefPointer:
		return []*Instance{n.Expr}
	}
	return nil
}
