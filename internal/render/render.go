// Package render writes tokens and syntax trees in human and machine
// readable formats.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jmespath/ast"
	"github.com/jacoelho/jmespath/literal"
	"github.com/jacoelho/jmespath/token"
)

// Format selects the output encoding of a syntax tree.
type Format string

const (
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTree, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Tokens writes one token per line as "offset kind payload".
func Tokens(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", tok.Offset, tok); err != nil {
			return err
		}
	}
	return nil
}

// Tree writes root in the requested format.
func Tree(w io.Writer, root ast.Node, format Format) error {
	switch format {
	case FormatTree:
		var b strings.Builder
		writeTree(&b, root, "", 0)
		_, err := io.WriteString(w, b.String())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Document(root)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		payload, err := yaml.Marshal(toYAML(Document(root)))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(payload)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Document converts a node into an ordered document with a "type" and
// "offset" member followed by the node's own fields.
func Document(n ast.Node) literal.Object {
	doc := literal.Object{
		{Key: "type", Value: ast.Name(n)},
		{Key: "offset", Value: n.Pos()},
	}

	add := func(key string, value any) {
		doc = append(doc, literal.Member{Key: key, Value: value})
	}

	switch n := n.(type) {
	case ast.Identity:
	case ast.Field:
		add("name", n.Name)
	case ast.Index:
		add("index", n.Value)
	case ast.Slice:
		add("start", optional(n.Start))
		add("end", optional(n.End))
		add("step", n.Step)
	case ast.Flatten:
		add("node", Document(n.Node))
	case ast.ObjectValues:
		add("node", Document(n.Node))
	case ast.Projection:
		add("left", Document(n.Left))
		add("right", Document(n.Right))
	case ast.MultiSelectList:
		add("items", documents(n.Items))
	case ast.MultiSelectHash:
		entries := make([]any, len(n.Entries))
		for i, entry := range n.Entries {
			entries[i] = literal.Object{
				{Key: "key", Value: entry.Key},
				{Key: "value", Value: Document(entry.Value)},
			}
		}
		add("entries", entries)
	case ast.Not:
		add("operand", Document(n.Operand))
	case ast.And:
		add("left", Document(n.Left))
		add("right", Document(n.Right))
	case ast.Or:
		add("left", Document(n.Left))
		add("right", Document(n.Right))
	case ast.Comparison:
		add("operator", n.Operator.String())
		add("left", Document(n.Left))
		add("right", Document(n.Right))
	case ast.Condition:
		add("predicate", Document(n.Predicate))
		add("then", Document(n.Then))
	case ast.SubExpression:
		add("left", Document(n.Left))
		add("right", Document(n.Right))
	case ast.ExpressionRef:
		add("expression", Document(n.Expression))
	case ast.Function:
		add("name", n.Name)
		add("arguments", documents(n.Arguments))
	case ast.Literal:
		add("value", n.Value)
	}

	return doc
}

func documents(nodes []ast.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = Document(n)
	}
	return out
}

func optional(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// toYAML replaces ordered objects with yaml.MapSlice and numbers with Go
// numeric types so the YAML encoder keeps order and emits plain scalars.
func toYAML(v any) any {
	switch v := v.(type) {
	case literal.Object:
		out := make(yaml.MapSlice, len(v))
		for i, m := range v {
			out[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toYAML(item)
		}
		return out
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}

func writeTree(b *strings.Builder, n ast.Node, label string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	b.WriteString(ast.Name(n))

	switch n := n.(type) {
	case ast.Field:
		b.WriteString(" " + strconv.Quote(n.Name))
	case ast.Index:
		b.WriteString(" " + strconv.Itoa(n.Value))
	case ast.Slice:
		fmt.Fprintf(b, " [%s:%s:%d]", bound(n.Start), bound(n.End), n.Step)
	case ast.Comparison:
		b.WriteString(" " + n.Operator.String())
	case ast.Function:
		b.WriteString(" " + n.Name)
	case ast.Literal:
		b.WriteString(" " + formatValue(n.Value))
	}
	fmt.Fprintf(b, " @%d\n", n.Pos())

	switch n := n.(type) {
	case ast.MultiSelectHash:
		for _, entry := range n.Entries {
			writeTree(b, entry.Value, strconv.Quote(entry.Key), depth+1)
		}
	case ast.Projection:
		writeTree(b, n.Left, "left", depth+1)
		writeTree(b, n.Right, "right", depth+1)
	case ast.Condition:
		writeTree(b, n.Predicate, "if", depth+1)
		writeTree(b, n.Then, "then", depth+1)
	default:
		for _, child := range ast.Children(n) {
			writeTree(b, child, "", depth+1)
		}
	}
}

func bound(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatValue(v any) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
