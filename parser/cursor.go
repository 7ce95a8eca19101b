package parser

import (
	"slices"

	"github.com/jacoelho/jmespath/token"
)

// cursor reads an immutable token slice. The last token is always EOF and
// reading past the end keeps returning it.
type cursor struct {
	tokens []token.Token
	pos    int
}

func newCursor(tokens []token.Token) cursor {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		offset := 0
		if n > 0 {
			offset = tokens[n-1].Offset
		}
		tokens = append(slices.Clip(tokens), token.New(token.EOF, offset))
	}
	return cursor{tokens: tokens}
}

// peek returns the token n positions ahead without consuming anything.
func (c *cursor) peek(n int) token.Token {
	if i := c.pos + n; i < len(c.tokens) {
		return c.tokens[i]
	}
	return c.tokens[len(c.tokens)-1]
}

// next consumes and returns the current token.
func (c *cursor) next() token.Token {
	tok := c.peek(0)
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}
