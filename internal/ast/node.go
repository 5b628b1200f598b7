package ast

import "fmt"

// Node is any expression node in the surface syntax tree. It mirrors the
// teacher's ast.Node interface (NodePos/NodeEndPos/String) but is scoped
// to the far smaller expression grammar this compiler cares about.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	String() string
}

// Expr is a parsed expression node. Every concrete type below implements
// it. Children are themselves Expr nodes here (a full tree); §4.1's
// "recursive expression" (a flattened, topologically sorted list) is
// produced separately by FromExpr, once a tree has been built.
type Expr interface {
	Node
	exprNode()
}

// BinaryExpr is "+", "-", "*" or "pair" applied to two children.
type BinaryExpr struct {
	Pos, EndPos Position
	Op          Op
	Left, Right Expr
}

// UnaryExpr is "sq", "inv", "fst" or "snd" applied to one child.
type UnaryExpr struct {
	Pos, EndPos Position
	Op          Op
	Value       Expr
}

// ConstExpr is a numeric literal; equality is by value.
type ConstExpr struct {
	Pos, EndPos Position
	Value       float64
}

// SymbolExpr is a free variable named by an identifier.
type SymbolExpr struct {
	Pos, EndPos Position
	Name        string
}

func (n *BinaryExpr) NodePos() Position    { return n.Pos }
func (n *BinaryExpr) NodeEndPos() Position { return n.EndPos }
func (n *UnaryExpr) NodePos() Position     { return n.Pos }
func (n *UnaryExpr) NodeEndPos() Position  { return n.EndPos }
func (n *ConstExpr) NodePos() Position     { return n.Pos }
func (n *ConstExpr) NodeEndPos() Position  { return n.EndPos }
func (n *SymbolExpr) NodePos() Position    { return n.Pos }
func (n *SymbolExpr) NodeEndPos() Position { return n.EndPos }

func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*ConstExpr) exprNode()  {}
func (*SymbolExpr) exprNode() {}

func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Op, n.Left.String(), n.Right.String())
}

func (n *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", n.Op, n.Value.String())
}

func (n *ConstExpr) String() string {
	return formatConstant(n.Value)
}

func (n *SymbolExpr) String() string {
	return n.Name
}

// formatConstant prints integral constants without a trailing ".0" so
// round-tripped S-expressions read the way a human would have typed them.
func formatConstant(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
