package symmath

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse reads an expression in the same notation String produces:
// rational and decimal numbers, symbols, + - * / ^ (also ** for powers),
// parentheses and the ln/exp functions.
func Parse(input string) (Expr, error) {
	p := &parser{src: input}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("symmath: unexpected %q at offset %d in %q", p.src[p.pos], p.pos, p.src)
	}
	return e.Simplify(), nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// accept consumes the literal token if present.
func (p *parser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		if p.accept("+") {
			t, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		} else if p.accept("-") {
			t, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			terms = append(terms, MulOf(N(-1), t))
		} else {
			return AddOf(terms...), nil
		}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for {
		// "**" must not be read as "*" followed by a unary "*".
		if p.peek() == '*' && strings.HasPrefix(p.src[p.pos:], "**") {
			return nil, fmt.Errorf("symmath: misplaced ** at offset %d in %q", p.pos, p.src)
		}
		if p.accept("*") {
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		} else if p.accept("/") {
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, PowOf(f, N(-1)))
		} else {
			return MulOf(factors...), nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.accept("-") {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept("**") || p.accept("^") {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, fmt.Errorf("symmath: missing ) in %q", p.src)
		}
		return e, nil
	case c >= '0' && c <= '9':
		return p.parseNumber()
	case c == '_' || unicode.IsLetter(rune(c)):
		return p.parseIdent()
	case c == 0:
		return nil, fmt.Errorf("symmath: unexpected end of input in %q", p.src)
	}
	return nil, fmt.Errorf("symmath: unexpected %q at offset %d in %q", c, p.pos, p.src)
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	lit := p.src[start:p.pos]
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, fmt.Errorf("symmath: invalid number %q", lit)
	}
	return &Num{val: r}, nil
}

func (p *parser) parseIdent() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if p.peek() == '(' && (name == "ln" || name == "exp") {
		p.pos++
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, fmt.Errorf("symmath: missing ) after %s in %q", name, p.src)
		}
		if name == "ln" {
			return LnOf(arg), nil
		}
		return ExpOf(arg), nil
	}
	return S(name), nil
}
