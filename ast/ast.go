// Package ast declares the node types of a parsed JMESPath expression.
//
// The set of nodes is closed: every node type lives in this package and
// implements the unexported marker method of Node. Trees are built bottom-up
// by the parser and never modified afterwards; each node owns its children.
package ast

import "fmt"

// Node is any expression node. Pos returns the byte offset where parsing of
// the construct began.
type Node interface {
	Pos() int
	node()
}

// Identity is the current node, `@`.
type Identity struct {
	Offset int
}

// Field selects a member of an object by name.
type Field struct {
	Offset int
	Name   string
}

// Index selects an array element; negative values count from the end.
type Index struct {
	Offset int
	Value  int
}

// Slice selects a range of array elements. Nil bounds take their defaults
// at evaluation time.
type Slice struct {
	Offset int
	Start  *int
	End    *int
	Step   int
}

// Flatten merges one level of nested arrays produced by Node.
type Flatten struct {
	Offset int
	Node   Node
}

// Projection applies Right to every element produced by Left.
type Projection struct {
	Offset int
	Left   Node
	Right  Node
}

// ObjectValues yields the values of the object produced by Node.
type ObjectValues struct {
	Offset int
	Node   Node
}

// MultiSelectList builds an array from the results of Items.
type MultiSelectList struct {
	Offset int
	Items  []Node
}

// KeyValue is a single entry of a MultiSelectHash.
type KeyValue struct {
	Key   string
	Value Node
}

// MultiSelectHash builds an object from Entries. Entries keep source order
// and repeated keys are all retained.
type MultiSelectHash struct {
	Offset  int
	Entries []KeyValue
}

// Not negates the truthiness of Operand.
type Not struct {
	Offset  int
	Operand Node
}

// And is the logical conjunction `left && right`.
type And struct {
	Offset int
	Left   Node
	Right  Node
}

// Or is the logical disjunction `left || right`.
type Or struct {
	Offset int
	Left   Node
	Right  Node
}

// Comparison compares the results of Left and Right.
type Comparison struct {
	Offset   int
	Operator Comparator
	Left     Node
	Right    Node
}

// Condition evaluates Then only when Predicate is truthy. It is the right
// hand side of a filter projection.
type Condition struct {
	Offset    int
	Predicate Node
	Then      Node
}

// SubExpression evaluates Right against the result of Left. Both `.` and
// `|` chains produce it.
type SubExpression struct {
	Offset int
	Left   Node
	Right  Node
}

// ExpressionRef is an unevaluated expression passed to a function, `&expr`.
type ExpressionRef struct {
	Offset     int
	Expression Node
}

// Function is a call of a named function.
type Function struct {
	Offset    int
	Name      string
	Arguments []Node
}

// Literal is a constant JSON value as decoded by package literal.
type Literal struct {
	Offset int
	Value  any
}

func (n Identity) Pos() int        { return n.Offset }
func (n Field) Pos() int           { return n.Offset }
func (n Index) Pos() int           { return n.Offset }
func (n Slice) Pos() int           { return n.Offset }
func (n Flatten) Pos() int         { return n.Offset }
func (n Projection) Pos() int      { return n.Offset }
func (n ObjectValues) Pos() int    { return n.Offset }
func (n MultiSelectList) Pos() int { return n.Offset }
func (n MultiSelectHash) Pos() int { return n.Offset }
func (n Not) Pos() int             { return n.Offset }
func (n And) Pos() int             { return n.Offset }
func (n Or) Pos() int              { return n.Offset }
func (n Comparison) Pos() int      { return n.Offset }
func (n Condition) Pos() int       { return n.Offset }
func (n SubExpression) Pos() int   { return n.Offset }
func (n ExpressionRef) Pos() int   { return n.Offset }
func (n Function) Pos() int        { return n.Offset }
func (n Literal) Pos() int         { return n.Offset }

func (Identity) node()        {}
func (Field) node()           {}
func (Index) node()           {}
func (Slice) node()           {}
func (Flatten) node()         {}
func (Projection) node()      {}
func (ObjectValues) node()    {}
func (MultiSelectList) node() {}
func (MultiSelectHash) node() {}
func (Not) node()             {}
func (And) node()             {}
func (Or) node()              {}
func (Comparison) node()      {}
func (Condition) node()       {}
func (SubExpression) node()   {}
func (ExpressionRef) node()   {}
func (Function) node()        {}
func (Literal) node()         {}

// Comparator is the operator of a Comparison.
type Comparator uint8

const (
	Eq Comparator = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

func (c Comparator) String() string {
	switch c {
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	default:
		return fmt.Sprintf("Comparator(%d)", uint8(c))
	}
}
