// Package token defines the lexical units of a JMESPath expression and the
// binding powers the parser uses to combine them.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	EOF Kind = iota
	Identifier
	QuotedIdentifier
	Number
	Literal
	Dot
	Star
	At
	Pipe
	Or
	And
	Not
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Colon
	Eq
	Neq
	Gt
	Lt
	Gte
	Lte
	Filter
	Flatten
	Ampersand
	Comma

	kindCount
)

// ProjectionStop is the binding power below which a projection stops
// absorbing the expression that follows it.
const ProjectionStop = 5

var kindNames = [kindCount]string{
	EOF:              "end of input",
	Identifier:       "identifier",
	QuotedIdentifier: "quoted identifier",
	Number:           "number",
	Literal:          "literal",
	Dot:              "'.'",
	Star:             "'*'",
	At:               "'@'",
	Pipe:             "'|'",
	Or:               "'||'",
	And:              "'&&'",
	Not:              "'!'",
	LParen:           "'('",
	RParen:           "')'",
	LBracket:         "'['",
	RBracket:         "']'",
	LBrace:           "'{'",
	RBrace:           "'}'",
	Colon:            "':'",
	Eq:               "'=='",
	Neq:              "'!='",
	Gt:               "'>'",
	Lt:               "'<'",
	Gte:              "'>='",
	Lte:              "'<='",
	Filter:           "'[?'",
	Flatten:          "'[]'",
	Ampersand:        "'&'",
	Comma:            "','",
}

var bindingPowers = [kindCount]int{
	Pipe:     1,
	Or:       2,
	And:      3,
	Eq:       4,
	Neq:      4,
	Gt:       4,
	Lt:       4,
	Gte:      4,
	Lte:      4,
	Flatten:  5,
	Star:     6,
	Filter:   7,
	Dot:      8,
	Not:      9,
	LBrace:   10,
	LBracket: 11,
	LParen:   12,
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := range kindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// BindingPower reports how tightly the kind binds to the expression on its
// left. Kinds that never continue an expression have a binding power of 0.
func (k Kind) BindingPower() int {
	if k < kindCount {
		return bindingPowers[k]
	}
	return 0
}

// IsComparison reports whether the kind is one of the comparison operators.
func (k Kind) IsComparison() bool {
	switch k {
	case Eq, Neq, Gt, Lt, Gte, Lte:
		return true
	}
	return false
}

// Token is a single lexical unit and the byte offset of its first character.
//
// Only one payload field is meaningful per kind: Text for Identifier and
// QuotedIdentifier (already unescaped), Number for Number and Value for
// Literal.
type Token struct {
	Kind   Kind
	Offset int
	Text   string
	Number int
	Value  any
}

// New returns a token without payload.
func New(kind Kind, offset int) Token {
	return Token{Kind: kind, Offset: offset}
}

// NewIdentifier returns an Identifier token.
func NewIdentifier(name string, offset int) Token {
	return Token{Kind: Identifier, Offset: offset, Text: name}
}

// NewQuotedIdentifier returns a QuotedIdentifier token holding the decoded name.
func NewQuotedIdentifier(name string, offset int) Token {
	return Token{Kind: QuotedIdentifier, Offset: offset, Text: name}
}

// NewNumber returns a Number token.
func NewNumber(n int, offset int) Token {
	return Token{Kind: Number, Offset: offset, Number: n}
}

// NewLiteral returns a Literal token holding a decoded JSON value.
func NewLiteral(value any, offset int) Token {
	return Token{Kind: Literal, Offset: offset, Value: value}
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("identifier %s", t.Text)
	case QuotedIdentifier:
		return fmt.Sprintf("quoted identifier %q", t.Text)
	case Number:
		return fmt.Sprintf("number %d", t.Number)
	case Literal:
		return fmt.Sprintf("literal %v", t.Value)
	default:
		return t.Kind.String()
	}
}
