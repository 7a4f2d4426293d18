// Package parser implements a recursive-descent parser over the DSL
// surface syntax of §6, producing the internal/ast tree the evaluator
// consumes. Per §6's AST contract, this is the one external collaborator
// the interpreter never needs to know the concrete shape of, but a real
// program still has to come from somewhere, so this package plays that
// role end to end.
package parser

import (
	"fmt"

	"github.com/dekarrin/fsmql/internal/ast"
	"github.com/dekarrin/fsmql/internal/lexer"
)

// Parser consumes a Token stream and builds an ast.Program.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse lexes and parses source into a Program.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.New(source).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}
	p := &Parser{toks: toks}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}
	return prog, nil
}

func (p *Parser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(c lexer.Class) bool {
	return p.cur().Class == c
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(c lexer.Class, what string) (lexer.Token, error) {
	if !p.at(c) {
		return lexer.Token{}, fmt.Errorf("line %d: expected %s, got %q", p.cur().Line, what, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) skipSeparators() {
	for p.at(lexer.ClassSlash) {
		p.advance()
	}
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipSeparators()
	for !p.at(lexer.ClassEOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipSeparators()
	}
	return prog, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Class {
	case lexer.ClassLet:
		p.advance()
		name, err := p.expect(lexer.ClassIdent, "identifier")
		if err != nil {
			return ast.Stmt{}, err
		}
		if _, err := p.expect(lexer.ClassAssign, "'='"); err != nil {
			return ast.Stmt{}, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return ast.Stmt{}, err
		}
		return ast.NewLet(name.Text, val), nil
	case lexer.ClassPrint:
		p.advance()
		val, err := p.parseExpr()
		if err != nil {
			return ast.Stmt{}, err
		}
		return ast.NewPrint(val), nil
	default:
		return ast.Stmt{}, fmt.Errorf("line %d: expected 'let' or 'print', got %q", p.cur().Line, p.cur().Text)
	}
}

// parseExpr := equality
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseEquality()
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseIn()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassEqual) {
		p.advance()
		right, err := p.parseIn()
		if err != nil {
			return ast.Expr{}, err
		}
		left = ast.NewBinOp(ast.BinOpEqual, left, right)
	}
	return left, nil
}

func (p *Parser) parseIn() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassIn) {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return ast.Expr{}, err
		}
		left = ast.NewInSet(left, right)
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return ast.Expr{}, err
		}
		left = ast.NewBinOp(ast.BinOpOr, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseConcat()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassAnd) {
		p.advance()
		right, err := p.parseConcat()
		if err != nil {
			return ast.Expr{}, err
		}
		left = ast.NewBinOp(ast.BinOpAnd, left, right)
	}
	return left, nil
}

func (p *Parser) parseConcat() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassConcat) {
		p.advance()
		right, err := p.parsePostfix()
		if err != nil {
			return ast.Expr{}, err
		}
		left = ast.NewBinOp(ast.BinOpConcat, left, right)
	}
	return left, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(lexer.ClassStar) {
		p.advance()
		e = ast.NewStar(e)
	}
	return e, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Class {
	case lexer.ClassInt:
		p.advance()
		var n int64
		if _, err := fmt.Sscanf(tok.Text, "%d", &n); err != nil {
			return ast.Expr{}, fmt.Errorf("line %d: malformed integer literal %q", tok.Line, tok.Text)
		}
		return ast.NewIntLit(n), nil

	case lexer.ClassString:
		p.advance()
		return ast.NewStrLit(tok.Text), nil

	case lexer.ClassIdent:
		p.advance()
		return ast.NewVar(tok.Text), nil

	case lexer.ClassBackslash:
		p.advance()
		param, err := p.expect(lexer.ClassIdent, "lambda parameter name")
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(lexer.ClassArrow, "'->'"); err != nil {
			return ast.Expr{}, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.NewLambda(param.Text, body), nil

	case lexer.ClassLBrace:
		p.advance()
		elems, err := p.parseExprList(lexer.ClassRBrace)
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(lexer.ClassRBrace, "'}'"); err != nil {
			return ast.Expr{}, err
		}
		return ast.NewSetLit(elems), nil

	case lexer.ClassLParen:
		p.advance()
		first, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		if p.at(lexer.ClassComma) {
			elems := []ast.Expr{first}
			for p.at(lexer.ClassComma) {
				p.advance()
				next, err := p.parseExpr()
				if err != nil {
					return ast.Expr{}, err
				}
				elems = append(elems, next)
			}
			if _, err := p.expect(lexer.ClassRParen, "')'"); err != nil {
				return ast.Expr{}, err
			}
			return ast.NewTupleLit(elems), nil
		}
		if _, err := p.expect(lexer.ClassRParen, "')'"); err != nil {
			return ast.Expr{}, err
		}
		return first, nil

	case lexer.ClassSetStart, lexer.ClassSetFinal, lexer.ClassAddStart, lexer.ClassAddFinal:
		return p.parseSetOp()

	case lexer.ClassStartOf, lexer.ClassFinalOf, lexer.ClassReachableOf,
		lexer.ClassVerticesOf, lexer.ClassEdgesOf, lexer.ClassLabelsOf:
		return p.parseGetOp()

	case lexer.ClassLoadFrom:
		return p.parseLoad()

	case lexer.ClassMap:
		p.advance()
		lambda, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(lexer.ClassOn, "'on'"); err != nil {
			return ast.Expr{}, err
		}
		set, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.NewMap(lambda, set), nil

	case lexer.ClassFilter:
		p.advance()
		lambda, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(lexer.ClassOn, "'on'"); err != nil {
			return ast.Expr{}, err
		}
		set, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.NewFilter(lambda, set), nil

	default:
		return ast.Expr{}, fmt.Errorf("line %d: unexpected token %q", tok.Line, tok.Text)
	}
}

func (p *Parser) parseExprList(end lexer.Class) ([]ast.Expr, error) {
	var elems []ast.Expr
	if p.at(end) {
		return elems, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.at(lexer.ClassComma) {
			break
		}
		p.advance()
	}
	return elems, nil
}

func (p *Parser) parseSetOp() (ast.Expr, error) {
	var kind ast.SetOpKind
	switch p.cur().Class {
	case lexer.ClassSetStart:
		kind = ast.SetOpSetStart
	case lexer.ClassSetFinal:
		kind = ast.SetOpSetFinal
	case lexer.ClassAddStart:
		kind = ast.SetOpAddStart
	case lexer.ClassAddFinal:
		kind = ast.SetOpAddFinal
	}
	p.advance()

	set, err := p.parseOr()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(lexer.ClassTo, "'to'"); err != nil {
		return ast.Expr{}, err
	}
	fsm, err := p.parseOr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.NewSetOp(kind, set, fsm), nil
}

func (p *Parser) parseGetOp() (ast.Expr, error) {
	var kind ast.GetOpKind
	switch p.cur().Class {
	case lexer.ClassStartOf:
		kind = ast.GetOpStartOf
	case lexer.ClassFinalOf:
		kind = ast.GetOpFinalOf
	case lexer.ClassReachableOf:
		kind = ast.GetOpReachableOf
	case lexer.ClassVerticesOf:
		kind = ast.GetOpVerticesOf
	case lexer.ClassEdgesOf:
		kind = ast.GetOpEdgesOf
	case lexer.ClassLabelsOf:
		kind = ast.GetOpLabelsOf
	}
	p.advance()

	fsm, err := p.parseOr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.NewGetOp(kind, fsm), nil
}

func (p *Parser) parseLoad() (ast.Expr, error) {
	p.advance() // 'loadFrom'

	var kind ast.LoadKind
	switch p.cur().Class {
	case lexer.ClassPath:
		kind = ast.LoadPath
	case lexer.ClassName:
		kind = ast.LoadName
	case lexer.ClassRegex:
		kind = ast.LoadRegex
	default:
		return ast.Expr{}, fmt.Errorf("line %d: expected 'path', 'name', or 'regex', got %q", p.cur().Line, p.cur().Text)
	}
	p.advance()

	src, err := p.expect(lexer.ClassString, "string literal")
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.NewLoad(kind, src.Text), nil
}
