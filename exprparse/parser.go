package exprparse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse tokenizes and parses input into an AST.
//
// Identifier validity is not checked here; unknown unit names surface
// later, when a registry evaluates the tree. Returns *ParseError
// (unwrapping to ErrSyntax) on malformed input, including trailing
// tokens after a complete expression.
func Parse(input string) (*Node, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected trailing token " + strconv.Quote(tok.text)}
	}

	return node, nil
}

// ------------------------------------------------------------------------
// Scanner
// ------------------------------------------------------------------------

// scan splits input into tokens. Whitespace separates tokens but is
// otherwise insignificant (adjacency becomes implicit multiplication in
// the parser, not here).
func scan(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		r, width := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += width
		case r == '*':
			// "**" is exponentiation, a single "*" multiplication.
			if strings.HasPrefix(input[i+1:], "*") {
				toks = append(toks, token{kind: tokenPow, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokenStar, text: "*", pos: i})
				i++
			}
		case r == '^':
			toks = append(toks, token{kind: tokenPow, text: "^", pos: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokenSlash, text: "/", pos: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokenMinus, text: "-", pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case r == '.' || (r >= '0' && r <= '9'):
			lit, n, err := scanNumber(input[i:], i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokenNumber, text: lit, pos: i})
			i += n
		case isIdentStart(r):
			start := i
			i += width
			for i < len(input) {
				r, width = utf8.DecodeRuneInString(input[i:])
				if !isIdentPart(r) {
					break
				}
				i += width
			}
			toks = append(toks, token{kind: tokenIdent, text: input[start:i], pos: start})
		default:
			return nil, &ParseError{Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r)}
		}
	}
	toks = append(toks, token{kind: tokenEOF, pos: len(input)})

	return toks, nil
}

// scanNumber consumes an int, float, or scientific literal at the head
// of s (absolute offset base, for error positions) and returns the
// literal text and its byte length.
func scanNumber(s string, base int) (string, int, error) {
	n := 0
	digits := func() {
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
	}
	digits()
	if n < len(s) && s[n] == '.' {
		n++
		digits()
	}
	if n == 1 && s[0] == '.' {
		return "", 0, &ParseError{Pos: base, Msg: "malformed number"}
	}
	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		mark := n
		n++
		if n < len(s) && (s[n] == '+' || s[n] == '-') {
			n++
		}
		before := n
		digits()
		if n == before {
			// "2e" followed by non-digit: the e belongs to an identifier,
			// not the literal. Back off and let the scanner re-read it.
			n = mark
		}
	}
	if _, err := strconv.ParseFloat(s[:n], 64); err != nil {
		return "", 0, &ParseError{Pos: base, Msg: "malformed number " + strconv.Quote(s[:n])}
	}

	return s[:n], n, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ------------------------------------------------------------------------
// Parser
// ------------------------------------------------------------------------

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	tok := p.toks[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}

	return tok
}

// parseExpr handles the lowest precedence level: "*", "/", and implicit
// multiplication by adjacency.
func (p *parser) parseExpr() (*Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.kind {
		case tokenStar, tokenSlash:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			kind := NodeMul
			if tok.kind == tokenSlash {
				kind = NodeDiv
			}
			left = &Node{Kind: kind, Pos: tok.pos, Left: left, Right: right}
		case tokenIdent, tokenNumber, tokenLParen:
			// Adjacency: "kg m", "2 m", "(kg)(m)".
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = &Node{Kind: NodeMul, Pos: tok.pos, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

// parseTerm handles exponentiation, which binds tighter than "*" and
// "/" and associates to the right: "m ** 2 ** 3" is m ** (2 ** 3).
func (p *parser) parseTerm() (*Node, error) {
	base, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.kind != tokenPow {
		return base, nil
	}
	p.next()
	exp, err := p.parseExponent()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: NodePow, Pos: tok.pos, Left: base, Right: exp}, nil
}

// parseExponent parses the right-hand side of "**": an optional unary
// minus followed by a term (so "m ** -2" and "s ** (1/2)" both work).
// Unary minus is legal only here.
func (p *parser) parseExponent() (*Node, error) {
	if tok := p.peek(); tok.kind == tokenMinus {
		p.next()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		return &Node{
			Kind:  NodeMul,
			Pos:   tok.pos,
			Left:  &Node{Kind: NodeNumber, Value: -1, Pos: tok.pos},
			Right: inner,
		}, nil
	}

	return p.parseTerm()
}

// parseFactor parses an atom: identifier, number, or parenthesized
// subexpression.
func (p *parser) parseFactor() (*Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenIdent:
		return &Node{Kind: NodeName, Name: tok.text, Pos: tok.pos}, nil
	case tokenNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &ParseError{Pos: tok.pos, Msg: "malformed number " + strconv.Quote(tok.text)}
		}

		return &Node{Kind: NodeNumber, Value: v, Pos: tok.pos}, nil
	case tokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, &ParseError{Pos: closing.pos, Msg: "unbalanced parenthesis"}
		}

		return inner, nil
	case tokenEOF:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected end of expression"}
	default:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected token " + strconv.Quote(tok.text)}
	}
}
