package parser

import (
	"slices"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/compiler/lexer"
)

// Expression = if_expression | logical_or, wrapped in an Expression node.
func (p *Parser) Expression(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	var (
		rest  lexer.Tokens
		inner ast.Node
		err   error
	)
	if leading(ts) == lexer.KindIf {
		rest, inner, err = p.IfExpression(ts)
	} else {
		rest, inner, err = p.logicalOr(ts)
	}
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.Expression{Token: ts.Peek(), Child: inner}, nil
}

func (p *Parser) logicalOr(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.logicalAnd, lexer.KindLogicalOr)
}

func (p *Parser) logicalAnd(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.equality, lexer.KindLogicalAnd)
}

func (p *Parser) equality(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.comparison, lexer.KindEqualEqual, lexer.KindNotEqual)
}

func (p *Parser) comparison(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.Addition, lexer.KindLess, lexer.KindGreater, lexer.KindLessEqual, lexer.KindGreaterEqual)
}

// Addition = multiplicative { ("+" | "-" | "%") multiplicative }
func (p *Parser) Addition(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.multiplicative, lexer.KindPlus, lexer.KindDash, lexer.KindModulus)
}

func (p *Parser) multiplicative(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.exponent, lexer.KindMultiply, lexer.KindSlash)
}

// exponent folds left: 2^3^2 is (2^3)^2.
func (p *Parser) exponent(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	return p.binary(ts, p.unary, lexer.KindExponent)
}

// binary parses operand { op operand } and folds left. A trailing operator
// with no operand is left unconsumed for the caller to reject.
func (p *Parser) binary(ts lexer.Tokens, operand Rule, ops ...lexer.Kind) (lexer.Tokens, ast.Node, error) {
	rest, left, err := operand(ts)
	if err != nil {
		return ts, nil, err
	}
	for {
		op := rest.Peek()
		if !slices.Contains(ops, op.Kind) {
			return rest, left, nil
		}
		after, right, err := operand(rest[1:])
		if err != nil {
			return rest, left, nil
		}
		left = &ast.BinaryExpression{Token: op, Op: op.Kind.String(), Left: left, Right: right}
		rest = after
	}
}

// unary = ("+" | "-" | "!") unary | postfix
func (p *Parser) unary(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	op := ts.Peek()
	switch op.Kind {
	case lexer.KindPlus, lexer.KindDash, lexer.KindNot:
		rest, operand, err := p.unary(ts[1:])
		if err != nil {
			return ts, nil, err
		}
		return rest, &ast.UnaryExpression{Token: op, Op: op.Kind.String(), Operand: operand}, nil
	}
	return p.postfix(ts)
}

// postfix = primary { "[" expression "]" | "." identifier [ call_args ] }
func (p *Parser) postfix(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	rest, node, err := p.primary(ts)
	if err != nil {
		return ts, nil, err
	}
	for {
		tok := rest.Peek()
		switch tok.Kind {
		case lexer.KindLeftBracket:
			after, index, err := p.Expression(rest[1:])
			if err != nil {
				return rest, node, nil
			}
			if _, after, err = p.expect(after, lexer.KindRightBracket); err != nil {
				return rest, node, nil
			}
			node = &ast.IndexAccess{Token: tok, Object: node, Index: index}
			rest = after
		case lexer.KindDot:
			name, after, err := p.identifier(rest[1:])
			if err != nil {
				return rest, node, nil
			}
			if after.Peek().Kind != lexer.KindLeftParen {
				node = &ast.PropertyAccess{Token: tok, Object: node, Property: name}
				rest = after
				continue
			}
			after, args, err := p.callArgs(after)
			if err != nil {
				return rest, node, nil
			}
			node = &ast.MethodCall{Token: tok, Name: name.Name, Object: node, Args: args.Children}
			rest = after
		default:
			return rest, node, nil
		}
	}
}

func (p *Parser) primary(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	switch leading(ts) {
	case lexer.KindLeftParen:
		return p.parenthesized(ts)
	case lexer.KindLeftBracket:
		return p.ArrayLiteral(ts)
	case lexer.KindAlpha:
		return p.callOrIdentifier(ts)
	case lexer.KindDigit:
		return p.Number(ts)
	case lexer.KindTrue, lexer.KindFalse:
		return p.Boolean(ts)
	case lexer.KindStringLiteral:
		return p.String(ts)
	}
	return ts, nil, p.fail(ts, "expected expression")
}

// parenthesized yields the inner expression's child, so grouping adds no node.
func (p *Parser) parenthesized(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	_, rest, err := p.expect(ts, lexer.KindLeftParen)
	if err != nil {
		return ts, nil, err
	}
	rest, inner, err := p.Expression(rest)
	if err != nil {
		return ts, nil, err
	}
	if _, rest, err = p.expect(rest, lexer.KindRightParen); err != nil {
		return ts, nil, err
	}
	return rest, inner.(*ast.Expression).Child, nil
}

// ArrayLiteral = "[" [ expression { "," expression } ] "]"
func (p *Parser) ArrayLiteral(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	open, rest, err := p.expect(ts, lexer.KindLeftBracket)
	if err != nil {
		return ts, nil, err
	}
	rest, elems, err := p.separated(rest, p.Expression, lexer.KindRightBracket)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.ArrayLiteral{Token: open, Elements: elems}, nil
}

func (p *Parser) callOrIdentifier(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	id, rest, err := p.identifier(ts)
	if err != nil {
		return ts, nil, err
	}
	if rest.Peek().Kind != lexer.KindLeftParen {
		return rest, id, nil
	}
	return p.FunctionCall(ts)
}

// FunctionCall = identifier "(" [ expression { "," expression } ] ")"
func (p *Parser) FunctionCall(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	id, rest, err := p.identifier(ts)
	if err != nil {
		return ts, nil, err
	}
	rest, args, err := p.callArgs(rest)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.FunctionCall{Token: id.Token, Name: id.Name, Args: args}, nil
}

func (p *Parser) callArgs(ts lexer.Tokens) (lexer.Tokens, *ast.FunctionArguments, error) {
	open, rest, err := p.expect(ts, lexer.KindLeftParen)
	if err != nil {
		return ts, nil, err
	}
	rest, exprs, err := p.separated(rest, p.Expression, lexer.KindRightParen)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.FunctionArguments{Token: open, Children: exprs}, nil
}
