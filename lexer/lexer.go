// Package lexer turns JMESPath expression text into tokens.
package lexer

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jacoelho/jmespath/literal"
	"github.com/jacoelho/jmespath/token"
)

// Tokenize scans input and returns its tokens terminated by a single EOF
// token at len(input). Offsets are byte offsets into input.
func Tokenize(input string) ([]token.Token, error) {
	tokens := make([]token.Token, 0, len(input)/2+1)
	pos := 0

	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		if isIdentifierStart(r) {
			start := pos
			pos += size
			for pos < len(input) {
				r, size = utf8.DecodeRuneInString(input[pos:])
				if !isIdentifierPart(r) {
					break
				}
				pos += size
			}
			tokens = append(tokens, token.NewIdentifier(input[start:pos], start))
			continue
		}

		if isDigit(input[pos]) || input[pos] == '-' {
			tok, nextPos, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = nextPos
			continue
		}

		switch input[pos] {
		case '"':
			raw, nextPos, err := scanDelimited(input, pos, '"')
			if err != nil {
				return nil, err
			}
			if !utf8.ValidString(raw) {
				return nil, lexError(pos, "invalid UTF-8 in quoted identifier")
			}
			var name string
			if err := json.Unmarshal([]byte(`"`+raw+`"`), &name); err != nil {
				return nil, lexError(pos, "invalid quoted identifier %q: %v", raw, err)
			}
			tokens = append(tokens, token.NewQuotedIdentifier(name, pos))
			pos = nextPos
		case '`':
			raw, nextPos, err := scanDelimited(input, pos, '`')
			if err != nil {
				return nil, err
			}
			value, err := literal.Decode(strings.ReplaceAll(raw, "\\`", "`"))
			if err != nil {
				return nil, lexError(pos, "invalid JSON literal %q: %v", raw, err)
			}
			tokens = append(tokens, token.NewLiteral(value, pos))
			pos = nextPos
		case '[':
			switch peekByte(input, pos+1) {
			case '?':
				tokens = append(tokens, token.New(token.Filter, pos))
				pos += 2
			case ']':
				tokens = append(tokens, token.New(token.Flatten, pos))
				pos += 2
			default:
				tokens = append(tokens, token.New(token.LBracket, pos))
				pos++
			}
		case '&':
			pos = appendPair(&tokens, input, pos, '&', token.Ampersand, token.And)
		case '>':
			pos = appendPair(&tokens, input, pos, '=', token.Gt, token.Gte)
		case '<':
			pos = appendPair(&tokens, input, pos, '=', token.Lt, token.Lte)
		case '!':
			pos = appendPair(&tokens, input, pos, '=', token.Not, token.Neq)
		case '|':
			pos = appendPair(&tokens, input, pos, '|', token.Pipe, token.Or)
		case '=':
			if peekByte(input, pos+1) != '=' {
				return nil, lexError(pos, "expected '==' but found a single '='")
			}
			tokens = append(tokens, token.New(token.Eq, pos))
			pos += 2
		default:
			kind, ok := singleCharKinds[input[pos]]
			if !ok {
				return nil, lexError(pos, "unexpected character %q", r)
			}
			tokens = append(tokens, token.New(kind, pos))
			pos++
		}
	}

	tokens = append(tokens, token.New(token.EOF, len(input)))
	return tokens, nil
}

var singleCharKinds = map[byte]token.Kind{
	'.': token.Dot,
	'*': token.Star,
	'@': token.At,
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	':': token.Colon,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
}

// appendPair emits double when the byte after pos is next, single otherwise.
func appendPair(tokens *[]token.Token, input string, pos int, next byte, single, double token.Kind) int {
	if peekByte(input, pos+1) == next {
		*tokens = append(*tokens, token.New(double, pos))
		return pos + 2
	}
	*tokens = append(*tokens, token.New(single, pos))
	return pos + 1
}

func peekByte(input string, pos int) byte {
	if pos < len(input) {
		return input[pos]
	}
	return 0
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func lexNumber(input string, start int) (token.Token, int, error) {
	pos := start
	if input[pos] == '-' {
		pos++
		if pos >= len(input) || !isDigit(input[pos]) {
			return token.Token{}, 0, lexError(start, "'-' must be followed by a digit")
		}
	}

	for pos < len(input) && isDigit(input[pos]) {
		pos++
	}

	n, err := strconv.Atoi(input[start:pos])
	if err != nil {
		return token.Token{}, 0, lexError(start, "malformed number %q", input[start:pos])
	}

	return token.NewNumber(n, start), pos, nil
}

// scanDelimited returns the raw text between the delimiter at start and the
// next unescaped delimiter, and the position after the closing delimiter.
// A backslash escapes the byte that follows it.
func scanDelimited(input string, start int, delim byte) (string, int, error) {
	for pos := start + 1; pos < len(input); pos++ {
		switch input[pos] {
		case '\\':
			pos++
		case delim:
			return input[start+1 : pos], pos + 1, nil
		}
	}

	if delim == '"' {
		return "", 0, lexError(start, "unterminated quoted identifier")
	}
	return "", 0, lexError(start, "unterminated literal")
}
