package ast

import "fmt"

// Children returns the direct children of n in evaluation order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case Identity, Field, Index, Slice, Literal:
		return nil
	case Flatten:
		return []Node{n.Node}
	case ObjectValues:
		return []Node{n.Node}
	case Projection:
		return []Node{n.Left, n.Right}
	case MultiSelectList:
		return n.Items
	case MultiSelectHash:
		children := make([]Node, len(n.Entries))
		for i, entry := range n.Entries {
			children[i] = entry.Value
		}
		return children
	case Not:
		return []Node{n.Operand}
	case And:
		return []Node{n.Left, n.Right}
	case Or:
		return []Node{n.Left, n.Right}
	case Comparison:
		return []Node{n.Left, n.Right}
	case Condition:
		return []Node{n.Predicate, n.Then}
	case SubExpression:
		return []Node{n.Left, n.Right}
	case ExpressionRef:
		return []Node{n.Expression}
	case Function:
		return n.Arguments
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
}

// Walk visits n and its descendants depth-first in pre-order. When visit
// returns false the children of that node are skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// Name returns the variant name of n, e.g. "SubExpression".
func Name(n Node) string {
	switch n.(type) {
	case Identity:
		return "Identity"
	case Field:
		return "Field"
	case Index:
		return "Index"
	case Slice:
		return "Slice"
	case Flatten:
		return "Flatten"
	case Projection:
		return "Projection"
	case ObjectValues:
		return "ObjectValues"
	case MultiSelectList:
		return "MultiSelectList"
	case MultiSelectHash:
		return "MultiSelectHash"
	case Not:
		return "Not"
	case And:
		return "And"
	case Or:
		return "Or"
	case Comparison:
		return "Comparison"
	case Condition:
		return "Condition"
	case SubExpression:
		return "SubExpression"
	case ExpressionRef:
		return "ExpressionRef"
	case Function:
		return "Function"
	case Literal:
		return "Literal"
	default:
		return fmt.Sprintf("%T", n)
	}
}
