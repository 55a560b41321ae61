package alt

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"text/scanner"

	"github.com/linfeas/linfeas/expr"
)

type token struct {
	text string
	pos  scanner.Position
}

type parser struct {
	toks   []token
	cur    int                    // Index of the current token
	params map[string]expr.Symbol // Declared parameters
}

// Parse parses the formula from the given input Reader.
// It returns the corresponding Formula.
//
// The input starts with optional parameter declarations, such as "param a, b;".
// Every other identifier is an unknown.
// Formulas are written using the following operators (from lowest to highest priority) :
//
// - for a conjunction, the ";" operator,
// - for a disjunction, the "|" operator,
// - for a conjunction, the "&" operator.
//
// Atoms are the constants "true" and "false" and comparisons between two linear expressions,
// using one of the operators ">", ">=", "<", "<=", "=" and "!=".
// Expressions are made of numbers (such as 3, 1.5 or 1/2), identifiers, and the "+", "-", "*" and "/" operators.
// Only numbers can appear on the right of "/".
// Parentheses can be used to group subformulas and subexpressions.
// A "#" starts a comment that lasts until the end of the line.
func Parse(r io.Reader) (Formula, error) {
	toks, err := tokenize(r)
	if err != nil {
		return Formula{}, err
	}
	p := parser{toks: toks, params: make(map[string]expr.Symbol)}
	if err := p.parseParams(); err != nil {
		return Formula{}, err
	}
	if p.eof() {
		return True(), nil
	}
	f, err := p.parseConj()
	if err != nil {
		return Formula{}, err
	}
	if !p.eof() {
		return Formula{}, fmt.Errorf("unexpected token %q at %s", p.token().text, p.token().pos)
	}
	return f, nil
}

func tokenize(r io.Reader) ([]token, error) {
	var s scanner.Scanner
	s.Init(r)
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	var errs []string
	s.Error = func(s *scanner.Scanner, msg string) {
		errs = append(errs, fmt.Sprintf("%s at %s", msg, s.Pos()))
	}
	var toks []token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		pos := s.Position
		text := s.TokenText()
		switch tok {
		case '#':
			for ch := s.Peek(); ch != '\n' && ch != scanner.EOF; ch = s.Peek() {
				s.Next()
			}
			continue
		case '>', '<', '!':
			if s.Peek() == '=' {
				s.Next()
				text += "="
			}
		}
		toks = append(toks, token{text: text, pos: pos})
	}
	if len(errs) != 0 {
		return nil, fmt.Errorf("could not read formula: %s", errs[0])
	}
	return toks, nil
}

func (p *parser) eof() bool {
	return p.cur >= len(p.toks)
}

// token returns the current token. At EOF, its text is empty.
func (p *parser) token() token {
	if p.eof() {
		return token{}
	}
	return p.toks[p.cur]
}

func (p *parser) scan() {
	if !p.eof() {
		p.cur++
	}
}

func (p *parser) unexpected(expected string) error {
	if p.eof() {
		return fmt.Errorf("expected %s, found EOF", expected)
	}
	tok := p.token()
	return fmt.Errorf("expected %s, found %q at %s", expected, tok.text, tok.pos)
}

func (p *parser) expect(text string) error {
	if p.token().text != text {
		return p.unexpected(fmt.Sprintf("%q", text))
	}
	p.scan()
	return nil
}

func isIdent(text string) bool {
	if text == "" {
		return false
	}
	for i, c := range text {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || i > 0 && c >= '0' && c <= '9' || c > 127) {
			return false
		}
	}
	return true
}

func isKeyword(text string) bool {
	return text == "param" || text == "true" || text == "false"
}

func (p *parser) parseParams() error {
	for p.token().text == "param" {
		p.scan()
		for {
			name := p.token().text
			if !isIdent(name) || isKeyword(name) {
				return p.unexpected("parameter name")
			}
			p.params[name] = expr.NewParameter(name)
			p.scan()
			if p.token().text != "," {
				break
			}
			p.scan()
		}
		if err := p.expect(";"); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseConj() (Formula, error) {
	f, err := p.parseOr()
	if err != nil {
		return Formula{}, err
	}
	for p.token().text == ";" {
		p.scan()
		if p.eof() || p.token().text == ")" { // Trailing semicolon
			break
		}
		g, err := p.parseOr()
		if err != nil {
			return Formula{}, err
		}
		f = f.And(g)
	}
	return f, nil
}

func (p *parser) parseOr() (Formula, error) {
	f, err := p.parseAnd()
	if err != nil {
		return Formula{}, err
	}
	for p.token().text == "|" {
		p.scan()
		g, err := p.parseAnd()
		if err != nil {
			return Formula{}, err
		}
		f = f.Or(g)
	}
	return f, nil
}

func (p *parser) parseAnd() (Formula, error) {
	f, err := p.parseAtom()
	if err != nil {
		return Formula{}, err
	}
	for p.token().text == "&" {
		p.scan()
		g, err := p.parseAtom()
		if err != nil {
			return Formula{}, err
		}
		f = f.And(g)
	}
	return f, nil
}

// parseAtom parses a constant, a comparison or a parenthesized subformula.
// A leading parenthesis may open either a subformula or a subexpression, so a comparison
// is tried first, and the parser backtracks if that fails.
func (p *parser) parseAtom() (Formula, error) {
	switch p.token().text {
	case "true":
		p.scan()
		return True(), nil
	case "false":
		p.scan()
		return False(), nil
	case "(":
		start := p.cur
		if f, err := p.parseComparison(); err == nil {
			return f, nil
		}
		p.cur = start + 1
		f, err := p.parseConj()
		if err != nil {
			return Formula{}, err
		}
		if err := p.expect(")"); err != nil {
			return Formula{}, err
		}
		return f, nil
	}
	return p.parseComparison()
}

var comparisons = map[string]func(expr.Expr) Formula{
	">":  Positive,
	">=": Nonnegative,
	"<":  Negative,
	"<=": Nonpositive,
	"=":  Zero,
	"!=": Nonzero,
}

func (p *parser) parseComparison() (Formula, error) {
	left, err := p.parseExpr()
	if err != nil {
		return Formula{}, err
	}
	cmp, ok := comparisons[p.token().text]
	if !ok {
		return Formula{}, p.unexpected("comparison operator")
	}
	p.scan()
	right, err := p.parseExpr()
	if err != nil {
		return Formula{}, err
	}
	return cmp(left.Sub(right)), nil
}

func (p *parser) parseExpr() (expr.Expr, error) {
	var res expr.Expr
	neg := false
	switch p.token().text {
	case "-":
		neg = true
		p.scan()
	case "+":
		p.scan()
	}
	for {
		t, err := p.parseTerm()
		if err != nil {
			return expr.Expr{}, err
		}
		if neg {
			t = t.Neg()
		}
		res = res.Add(t)
		switch p.token().text {
		case "+":
			neg = false
		case "-":
			neg = true
		default:
			return res, nil
		}
		p.scan()
	}
}

func (p *parser) parseTerm() (expr.Expr, error) {
	res, err := p.parsePower()
	if err != nil {
		return expr.Expr{}, err
	}
	for {
		switch p.token().text {
		case "*":
			p.scan()
			f, err := p.parsePower()
			if err != nil {
				return expr.Expr{}, err
			}
			res = res.Mul(f)
		case "/":
			pos := p.token().pos
			p.scan()
			f, err := p.parsePower()
			if err != nil {
				return expr.Expr{}, err
			}
			div, ok := f.Constant()
			if !ok {
				return expr.Expr{}, fmt.Errorf("division by non-constant expression %v at %s", f, pos)
			}
			if div.Sign() == 0 {
				return expr.Expr{}, fmt.Errorf("division by zero at %s", pos)
			}
			res = res.Scale(div.Inv(div))
		default:
			return res, nil
		}
	}
}

// parsePower parses a factor, optionally raised to a positive integer power, as in "x^2".
// maxExponent bounds the exponents accepted after '^'.
const maxExponent = 64

func (p *parser) parsePower() (expr.Expr, error) {
	f, err := p.parseFactor()
	if err != nil || p.token().text != "^" {
		return f, err
	}
	p.scan()
	tok := p.token()
	n, err := strconv.Atoi(tok.text)
	if err != nil || n < 1 || n > maxExponent {
		return expr.Expr{}, p.unexpected("positive exponent")
	}
	p.scan()
	res := f
	for i := 1; i < n; i++ {
		res = res.Mul(f)
	}
	return res, nil
}

func (p *parser) parseFactor() (expr.Expr, error) {
	tok := p.token()
	switch {
	case tok.text == "(":
		p.scan()
		e, err := p.parseExpr()
		if err != nil {
			return expr.Expr{}, err
		}
		if err := p.expect(")"); err != nil {
			return expr.Expr{}, err
		}
		return e, nil
	case tok.text == "-":
		p.scan()
		e, err := p.parseFactor()
		if err != nil {
			return expr.Expr{}, err
		}
		return e.Neg(), nil
	case tok.text != "" && tok.text[0] >= '0' && tok.text[0] <= '9' || tok.text != "" && tok.text[0] == '.':
		r, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return expr.Expr{}, fmt.Errorf("invalid number %q at %s", tok.text, tok.pos)
		}
		p.scan()
		return expr.Rat(r), nil
	case isIdent(tok.text) && !isKeyword(tok.text):
		p.scan()
		if param, ok := p.params[tok.text]; ok {
			return expr.Var(param), nil
		}
		return expr.Var(expr.NewUnknown(tok.text)), nil
	default:
		return expr.Expr{}, p.unexpected("expression")
	}
}
