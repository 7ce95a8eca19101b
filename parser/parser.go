// Package parser builds JMESPath syntax trees with a precedence climbing
// (Pratt) parser driven by token.Kind.BindingPower.
package parser

import (
	"github.com/jacoelho/jmespath/ast"
	"github.com/jacoelho/jmespath/lexer"
	"github.com/jacoelho/jmespath/token"
)

type parser struct {
	cur cursor
}

// Parse tokenizes and parses expression. Lexical failures are returned as
// *lexer.Error, everything else as *Error.
func Parse(expression string) (ast.Node, error) {
	tokens, err := lexer.Tokenize(expression)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token sequence produced by lexer.Tokenize. A missing
// trailing EOF token is implied.
func ParseTokens(tokens []token.Token) (ast.Node, error) {
	p := &parser{cur: newCursor(tokens)}

	if tok := p.cur.peek(0); tok.Kind == token.EOF {
		return nil, syntaxError(tok.Offset, "expression is empty")
	}

	root, err := p.expression(0)
	if err != nil {
		return nil, err
	}

	if tok := p.cur.peek(0); tok.Kind != token.EOF {
		return nil, syntaxError(tok.Offset, "unexpected %s after expression", tok)
	}

	return root, nil
}

// expression parses a prefix construct and folds infix constructs into it
// while the lookahead binds tighter than rbp.
func (p *parser) expression(rbp int) (ast.Node, error) {
	left, err := p.nud()
	if err != nil {
		return nil, err
	}

	for rbp < p.cur.peek(0).Kind.BindingPower() {
		left, err = p.led(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *parser) nud() (ast.Node, error) {
	tok := p.cur.next()

	switch tok.Kind {
	case token.At:
		return ast.Identity{Offset: tok.Offset}, nil
	case token.Identifier:
		return ast.Field{Offset: tok.Offset, Name: tok.Text}, nil
	case token.QuotedIdentifier:
		if next := p.cur.peek(0); next.Kind == token.LParen {
			return nil, syntaxError(next.Offset, "quoted identifier %q cannot be used as a function name", tok.Text)
		}
		return ast.Field{Offset: tok.Offset, Name: tok.Text}, nil
	case token.Star:
		return p.wildcardProjection(ast.Identity{Offset: tok.Offset}, tok.Offset)
	case token.Literal:
		return ast.Literal{Offset: tok.Offset, Value: tok.Value}, nil
	case token.LBracket:
		switch p.cur.peek(0).Kind {
		case token.Number, token.Colon:
			return p.index(tok.Offset)
		case token.Star:
			if p.cur.peek(1).Kind == token.RBracket {
				p.cur.next()
				return p.wildcardIndex(ast.Identity{Offset: tok.Offset}, tok.Offset)
			}
		}
		return p.multiSelectList(tok.Offset)
	case token.Flatten:
		return p.flatten(ast.Identity{Offset: tok.Offset}, tok.Offset)
	case token.LBrace:
		return p.multiSelectHash(tok.Offset)
	case token.Ampersand:
		expr, err := p.expression(token.Ampersand.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.ExpressionRef{Offset: tok.Offset, Expression: expr}, nil
	case token.Not:
		operand, err := p.expression(token.Not.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.Not{Offset: tok.Offset, Operand: operand}, nil
	case token.Filter:
		return p.filter(ast.Identity{Offset: tok.Offset}, tok.Offset)
	case token.LParen:
		expr, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if closing := p.cur.next(); closing.Kind != token.RParen {
			return nil, syntaxError(closing.Offset, "expected ')', found %s", closing)
		}
		return expr, nil
	default:
		return nil, syntaxError(tok.Offset, "unexpected %s", tok)
	}
}

func (p *parser) led(left ast.Node) (ast.Node, error) {
	tok := p.cur.next()

	switch tok.Kind {
	case token.Dot:
		if p.cur.peek(0).Kind == token.Star {
			p.cur.next()
			return p.wildcardProjection(left, tok.Offset)
		}
		right, err := p.dot(token.Dot.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.SubExpression{Offset: tok.Offset, Left: left, Right: right}, nil
	case token.LBracket:
		switch next := p.cur.peek(0); next.Kind {
		case token.Number, token.Colon:
			right, err := p.index(tok.Offset)
			if err != nil {
				return nil, err
			}
			return ast.SubExpression{Offset: tok.Offset, Left: left, Right: right}, nil
		case token.Star:
			p.cur.next()
			return p.wildcardIndex(left, tok.Offset)
		default:
			return nil, syntaxError(next.Offset, "expected number, ':' or '*' after '[', found %s", next)
		}
	case token.Or:
		right, err := p.expression(token.Or.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.Or{Offset: tok.Offset, Left: left, Right: right}, nil
	case token.And:
		right, err := p.expression(token.And.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.And{Offset: tok.Offset, Left: left, Right: right}, nil
	case token.Pipe:
		right, err := p.expression(token.Pipe.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.SubExpression{Offset: tok.Offset, Left: left, Right: right}, nil
	case token.LParen:
		field, ok := left.(ast.Field)
		if !ok {
			return nil, syntaxError(tok.Offset, "expected a function name before '(', found %s", ast.Name(left))
		}
		args, err := p.list(token.RParen)
		if err != nil {
			return nil, err
		}
		return ast.Function{Offset: field.Offset, Name: field.Name, Arguments: args}, nil
	case token.Flatten:
		return p.flatten(left, tok.Offset)
	case token.Filter:
		return p.filter(left, tok.Offset)
	case token.Eq, token.Neq, token.Gt, token.Gte, token.Lt, token.Lte:
		// all comparison operators share one binding power
		right, err := p.expression(token.Eq.BindingPower())
		if err != nil {
			return nil, err
		}
		return ast.Comparison{Offset: tok.Offset, Operator: comparators[tok.Kind], Left: left, Right: right}, nil
	default:
		return nil, syntaxError(tok.Offset, "unexpected %s", tok)
	}
}

var comparators = map[token.Kind]ast.Comparator{
	token.Eq:  ast.Eq,
	token.Neq: ast.Neq,
	token.Lt:  ast.Lt,
	token.Lte: ast.Lte,
	token.Gt:  ast.Gt,
	token.Gte: ast.Gte,
}

// dot parses the right hand side of a '.' that has already been consumed.
func (p *parser) dot(lbp int) (ast.Node, error) {
	switch next := p.cur.peek(0); next.Kind {
	case token.LBracket:
		p.cur.next()
		return p.multiSelectList(next.Offset)
	case token.Identifier, token.QuotedIdentifier, token.Star, token.LBrace, token.Ampersand:
		return p.expression(lbp)
	default:
		return nil, syntaxError(next.Offset, "expected identifier, '*', '{', '[' or '&' after '.', found %s", next)
	}
}

// projection parses what a projection applies to each element. Tokens that
// bind looser than token.ProjectionStop end the projection.
func (p *parser) projection(lbp int) (ast.Node, error) {
	switch next := p.cur.peek(0); {
	case next.Kind == token.Dot:
		p.cur.next()
		return p.dot(lbp)
	case next.Kind == token.LBracket, next.Kind == token.Filter:
		return p.expression(lbp)
	case next.Kind.BindingPower() < token.ProjectionStop:
		return ast.Identity{Offset: next.Offset}, nil
	default:
		return nil, syntaxError(next.Offset, "expected '.', '[' or '[?', found %s", next)
	}
}

// index parses an index or slice after its '['. A slice becomes the left
// side of a projection.
func (p *parser) index(offset int) (ast.Node, error) {
	var slots [3]*int
	colons := 0

loop:
	for {
		tok := p.cur.next()
		switch tok.Kind {
		case token.Number:
			if slots[colons] != nil {
				return nil, syntaxError(tok.Offset, "unexpected %s in index or slice", tok)
			}
			n := tok.Number
			slots[colons] = &n
		case token.Colon:
			if colons >= 2 {
				return nil, syntaxError(tok.Offset, "too many colons in slice")
			}
			colons++
		case token.RBracket:
			break loop
		default:
			return nil, syntaxError(tok.Offset, "expected number, ':' or ']', found %s", tok)
		}
	}

	if colons == 0 {
		if slots[0] == nil {
			return nil, syntaxError(offset, "empty index")
		}
		return ast.Index{Offset: offset, Value: *slots[0]}, nil
	}

	step := 1
	if slots[2] != nil {
		step = *slots[2]
	}

	right, err := p.projection(token.Star.BindingPower())
	if err != nil {
		return nil, err
	}

	return ast.Projection{
		Offset: offset,
		Left:   ast.Slice{Offset: offset, Start: slots[0], End: slots[1], Step: step},
		Right:  right,
	}, nil
}

func (p *parser) wildcardProjection(left ast.Node, offset int) (ast.Node, error) {
	right, err := p.projection(token.Star.BindingPower())
	if err != nil {
		return nil, err
	}
	return ast.Projection{
		Offset: offset,
		Left:   ast.ObjectValues{Offset: offset, Node: left},
		Right:  right,
	}, nil
}

// wildcardIndex is called with the '*' of '[*]' already consumed.
func (p *parser) wildcardIndex(left ast.Node, offset int) (ast.Node, error) {
	if tok := p.cur.next(); tok.Kind != token.RBracket {
		return nil, syntaxError(tok.Offset, "expected ']', found %s", tok)
	}
	right, err := p.projection(token.Star.BindingPower())
	if err != nil {
		return nil, err
	}
	return ast.Projection{Offset: offset, Left: left, Right: right}, nil
}

func (p *parser) flatten(left ast.Node, offset int) (ast.Node, error) {
	right, err := p.projection(token.Flatten.BindingPower())
	if err != nil {
		return nil, err
	}
	return ast.Projection{
		Offset: offset,
		Left:   ast.Flatten{Offset: offset, Node: left},
		Right:  right,
	}, nil
}

func (p *parser) filter(left ast.Node, offset int) (ast.Node, error) {
	predicate, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if tok := p.cur.next(); tok.Kind != token.RBracket {
		return nil, syntaxError(tok.Offset, "expected ']' after filter expression, found %s", tok)
	}
	then, err := p.projection(token.Filter.BindingPower())
	if err != nil {
		return nil, err
	}
	return ast.Projection{
		Offset: offset,
		Left:   left,
		Right:  ast.Condition{Offset: offset, Predicate: predicate, Then: then},
	}, nil
}

func (p *parser) multiSelectList(offset int) (ast.Node, error) {
	items, err := p.list(token.RBracket)
	if err != nil {
		return nil, err
	}
	return ast.MultiSelectList{Offset: offset, Items: items}, nil
}

func (p *parser) multiSelectHash(offset int) (ast.Node, error) {
	var entries []ast.KeyValue

	for {
		key := p.cur.next()
		if key.Kind != token.Identifier && key.Kind != token.QuotedIdentifier {
			return nil, syntaxError(key.Offset, "expected identifier or quoted identifier as key, found %s", key)
		}
		if colon := p.cur.next(); colon.Kind != token.Colon {
			return nil, syntaxError(colon.Offset, "expected ':' after key %q, found %s", key.Text, colon)
		}
		value, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.KeyValue{Key: key.Text, Value: value})

		switch sep := p.cur.next(); sep.Kind {
		case token.Comma:
			if next := p.cur.peek(0); next.Kind == token.RBrace {
				return nil, syntaxError(sep.Offset, "trailing comma before %s", next)
			}
		case token.RBrace:
			return ast.MultiSelectHash{Offset: offset, Entries: entries}, nil
		default:
			return nil, syntaxError(sep.Offset, "expected ',' or '}', found %s", sep)
		}
	}
}

// list parses comma separated expressions up to and including closing.
func (p *parser) list(closing token.Kind) ([]ast.Node, error) {
	var items []ast.Node

	for p.cur.peek(0).Kind != closing {
		item, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		switch next := p.cur.peek(0); next.Kind {
		case token.Comma:
			p.cur.next()
			if after := p.cur.peek(0); after.Kind == closing {
				return nil, syntaxError(next.Offset, "trailing comma before %s", after)
			}
		case closing:
		default:
			return nil, syntaxError(next.Offset, "expected ',' or %s, found %s", closing, next)
		}
	}

	p.cur.next()
	return items, nil
}
