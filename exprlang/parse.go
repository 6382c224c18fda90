package exprlang

import (
	"fmt"

	"github.com/npillmayer/astmatch"
)

// Parse parses a program and returns its Module node.
func Parse(source string) (*astmatch.Node, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	m, err := p.module()
	if err != nil {
		tracer().Debugf("parse error: %v", err)
		return nil, err
	}
	return m, nil
}

// Stmt parses a program consisting of exactly one statement and returns the
// statement node.
func Stmt(source string) (*astmatch.Node, error) {
	m, err := Parse(source)
	if err != nil {
		return nil, err
	}
	v, _ := m.Get("body")
	body, _ := v.(astmatch.Sequence).Nodes()
	if len(body) != 1 {
		return nil, fmt.Errorf("expected exactly one statement, have %d: %w", len(body), ErrSyntax)
	}
	return body[0], nil
}

// Expr parses a single expression.
func Expr(source string) (*astmatch.Node, error) {
	s, err := Stmt(source)
	if err != nil {
		return nil, err
	}
	if s.Tag != ExprTag {
		return nil, fmt.Errorf("expected an expression, have %s statement: %w", s.Tag, ErrSyntax)
	}
	return s.Child("value"), nil
}

// MustStmt is like Stmt, but panics on error. It simplifies the
// initialization of global variables and tests.
func MustStmt(source string) *astmatch.Node {
	s, err := Stmt(source)
	if err != nil {
		panic(err)
	}
	return s
}

// MustExpr is like Expr, but panics on error.
func MustExpr(source string) *astmatch.Node {
	e, err := Expr(source)
	if err != nil {
		panic(err)
	}
	return e
}

// --- Recursive descent -----------------------------------------------------

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(t TokType) bool {
	if p.peek().Type == t {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(t TokType) (Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, p.errorf(tok, "expected %s", t)
	}
	return p.next(), nil
}

func (p *parser) errorf(tok Token, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("line %d, column %d: %s, have %s: %w", tok.Line, tok.Col, msg, tok, ErrSyntax)
}

func (p *parser) atLineEnd() bool {
	t := p.peek().Type
	return t == NEWLINE || t == EOF
}

// module = { statements ( NEWLINE | EOF ) }
func (p *parser) module() (*astmatch.Node, error) {
	var body []*astmatch.Node
	for {
		for p.accept(NEWLINE) {
		}
		if p.peek().Type == EOF {
			break
		}
		stmts, err := p.line()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
		if !p.atLineEnd() {
			return nil, p.errorf(p.peek(), "expected end of statement")
		}
	}
	return module(body), nil
}

// line = for | simple { ';' simple } [ ';' ]
func (p *parser) line() ([]*astmatch.Node, error) {
	if p.peek().Type == FOR {
		f, err := p.forLoop()
		if err != nil {
			return nil, err
		}
		return []*astmatch.Node{f}, nil
	}
	return p.simpleStatements()
}

func (p *parser) simpleStatements() ([]*astmatch.Node, error) {
	var stmts []*astmatch.Node
	for {
		s, err := p.simple()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if !p.accept(';') || p.atLineEnd() {
			return stmts, nil
		}
	}
}

// for = 'for' target 'in' expr ':' simple { ';' simple }
func (p *parser) forLoop() (*astmatch.Node, error) {
	p.next()
	target, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(IN); err != nil {
		return nil, err
	}
	iter, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(':'); err != nil {
		return nil, err
	}
	if p.atLineEnd() {
		return nil, p.errorf(p.peek(), "expected loop body on the same line")
	}
	body, err := p.simpleStatements()
	if err != nil {
		return nil, err
	}
	return forStmt(target, iter, body), nil
}

// simple = 'return' [ expr ] | expr { '=' expr }
func (p *parser) simple() (*astmatch.Node, error) {
	if p.accept(RETURN) {
		if t := p.peek().Type; t == NEWLINE || t == EOF || t == ';' {
			return returnStmt(nil), nil
		}
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		return returnStmt(v), nil
	}
	start := p.peek()
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != '=' {
		return exprStmt(e), nil
	}
	chain := []*astmatch.Node{e}
	for p.accept('=') {
		if e, err = p.expr(); err != nil {
			return nil, err
		}
		chain = append(chain, e)
	}
	targets := chain[:len(chain)-1]
	for _, t := range targets {
		switch t.Tag {
		case NameTag, AttributeTag, SubscriptTag, ListTag:
		default:
			return nil, p.errorf(start, "cannot assign to %s", t.Tag)
		}
	}
	return assign(targets, chain[len(chain)-1]), nil
}

// expr = term { ( '+' | '-' ) term }
func (p *parser) expr() (*astmatch.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for t := p.peek().Type; t == '+' || t == '-'; t = p.peek().Type {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binOp(left, binOps[t], right)
	}
	return left, nil
}

// term = factor { ( '*' | '/' | '%' ) factor }
func (p *parser) term() (*astmatch.Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for t := p.peek().Type; t == '*' || t == '/' || t == '%'; t = p.peek().Type {
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = binOp(left, binOps[t], right)
	}
	return left, nil
}

// factor = '-' factor | postfix
func (p *parser) factor() (*astmatch.Node, error) {
	if p.accept('-') {
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return unaryOp(operand), nil
	}
	return p.postfix()
}

// postfix = atom { '(' args ')' | '.' NAME | '[' expr ']' }
func (p *parser) postfix() (*astmatch.Node, error) {
	a, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept('('):
			args, err := p.exprList(')')
			if err != nil {
				return nil, err
			}
			a = call(a, args)
		case p.accept('.'):
			attr, err := p.expect(NAME)
			if err != nil {
				return nil, err
			}
			a = attribute(a, attr.Lexeme)
		case p.accept('['):
			index, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err = p.expect(']'); err != nil {
				return nil, err
			}
			a = subscript(a, index)
		default:
			return a, nil
		}
	}
}

// atom = NAME | NUM | STRING | 'True' | 'False' | 'None' | '(' expr ')' | '[' args ']'
func (p *parser) atom() (*astmatch.Node, error) {
	tok := p.next()
	switch tok.Type {
	case NAME:
		return Name(tok.Lexeme), nil
	case NUM, STRING:
		return Constant(tok.Value), nil
	case TRUE:
		return Constant(true), nil
	case FALSE:
		return Constant(false), nil
	case NONE:
		return Constant(nil), nil
	case '(':
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil
	case '[':
		elts, err := p.exprList(']')
		if err != nil {
			return nil, err
		}
		return list(elts), nil
	}
	return nil, p.errorf(tok, "expected an expression")
}

// exprList = [ expr { ',' expr } [ ',' ] ] closing
func (p *parser) exprList(closing TokType) ([]*astmatch.Node, error) {
	var exprs []*astmatch.Node
	for !p.accept(closing) {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.accept(',') {
			if _, err = p.expect(closing); err != nil {
				return nil, err
			}
			break
		}
	}
	return exprs, nil
}
