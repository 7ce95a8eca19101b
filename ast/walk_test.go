package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	t.Parallel()

	// foo[?a == `1`].{x: bar, y: baz(&c)}
	root := Projection{
		Offset: 3,
		Left:   Field{Offset: 0, Name: "foo"},
		Right: Condition{
			Offset: 3,
			Predicate: Comparison{
				Offset:   7,
				Operator: Eq,
				Left:     Field{Offset: 5, Name: "a"},
				Right:    Literal{Offset: 10, Value: 1},
			},
			Then: MultiSelectHash{
				Offset: 16,
				Entries: []KeyValue{
					{Key: "x", Value: Field{Offset: 20, Name: "bar"}},
					{Key: "y", Value: Function{
						Offset:    28,
						Name:      "baz",
						Arguments: []Node{ExpressionRef{Offset: 32, Expression: Field{Offset: 33, Name: "c"}}},
					}},
				},
			},
		},
	}

	var names []string
	Walk(root, func(n Node) bool {
		names = append(names, Name(n))
		return true
	})

	want := []string{
		"Projection", "Field", "Condition", "Comparison", "Field", "Literal",
		"MultiSelectHash", "Field", "Function", "ExpressionRef", "Field",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()

	root := SubExpression{
		Left:  Not{Operand: Field{Name: "a"}},
		Right: Flatten{Node: ObjectValues{Node: Identity{}}},
	}

	var names []string
	Walk(root, func(n Node) bool {
		names = append(names, Name(n))
		_, isNot := n.(Not)
		return !isNot
	})

	want := []string{"SubExpression", "Not", "Flatten", "ObjectValues", "Identity"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	a, b := Field{Name: "a"}, Field{Name: "b"}
	tests := []struct {
		name string
		node Node
		want []Node
	}{
		{name: "identity", node: Identity{}, want: nil},
		{name: "slice", node: Slice{Step: 1}, want: nil},
		{name: "and", node: And{Left: a, Right: b}, want: []Node{a, b}},
		{name: "or", node: Or{Left: a, Right: b}, want: []Node{a, b}},
		{name: "list", node: MultiSelectList{Items: []Node{b, a}}, want: []Node{b, a}},
		{name: "index", node: Index{Value: -1}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Children(tt.node)); diff != "" {
				t.Errorf("Children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComparatorString(t *testing.T) {
	t.Parallel()

	want := map[Comparator]string{Eq: "==", Neq: "!=", Lt: "<", Lte: "<=", Gt: ">", Gte: ">="}
	for c, s := range want {
		if got := c.String(); got != s {
			t.Errorf("%d.String() = %q, want %q", c, got, s)
		}
	}
}
