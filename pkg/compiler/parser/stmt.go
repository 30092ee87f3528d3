package parser

import (
	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/compiler/lexer"
)

// Statement parses one statement. Keyword-led statements commit to their
// rule; anything else is an assignment or an expression followed by ";".
func (p *Parser) Statement(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	switch leading(ts) {
	case lexer.KindLet:
		return p.terminated(p.VariableDefine)(ts)
	case lexer.KindReturn:
		return p.terminated(p.FunctionReturn)(ts)
	case lexer.KindBreak, lexer.KindContinue:
		return p.terminated(p.jump)(ts)
	case lexer.KindIf:
		return p.optTerminated(p.IfExpression)(ts)
	case lexer.KindWhile:
		return p.optTerminated(p.WhileLoop)(ts)
	}
	return p.terminated(p.Assignment)(ts)
}

func (p *Parser) jump(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	tok := ts.Peek()
	switch tok.Kind {
	case lexer.KindBreak:
		return ts[1:], &ast.Break{Token: tok}, nil
	case lexer.KindContinue:
		return ts[1:], &ast.Continue{Token: tok}, nil
	}
	return ts, nil, p.fail(ts, "expected break or continue")
}

// bodyItem = statement | comment
func (p *Parser) bodyItem(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	if ts.Peek().Kind == lexer.KindSlash {
		return p.Comment(ts)
	}
	return p.Statement(ts)
}

// body parses "{" { statement | comment } "}".
func (p *Parser) body(ts lexer.Tokens) (lexer.Token, []ast.Node, lexer.Tokens, error) {
	open, rest, err := p.expect(ts, lexer.KindLeftCurly)
	if err != nil {
		return open, nil, ts, err
	}
	rest, items := p.many0(rest, p.bodyItem)
	if _, rest, err = p.expect(rest, lexer.KindRightCurly); err != nil {
		return open, nil, ts, err
	}
	return open, items, rest, nil
}

func (p *Parser) Block(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	open, items, rest, err := p.body(ts)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.Block{Token: open, Children: items}, nil
}

// VariableDefine = "let" identifier "=" expression
func (p *Parser) VariableDefine(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	letTok, rest, err := p.expect(ts, lexer.KindLet)
	if err != nil {
		return ts, nil, err
	}
	name, rest, err := p.identifier(rest)
	if err != nil {
		return ts, nil, err
	}
	if _, rest, err = p.expect(rest, lexer.KindEqual); err != nil {
		return ts, nil, err
	}
	rest, value, err := p.Expression(rest)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.VariableDefine{Token: letTok, Name: name, Value: value}, nil
}

// Assignment = target "=" expression, otherwise an expression statement.
// The left side is parsed once as an expression; only a following "="
// turns it into an assignment.
//
// target = identifier { "[" expression "]" | "." identifier }
func (p *Parser) Assignment(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	rest, expr, err := p.Expression(ts)
	if err != nil {
		return ts, nil, err
	}
	eq := rest.Peek()
	if eq.Kind != lexer.KindEqual {
		return rest, expr, nil
	}
	target := expr.(*ast.Expression).Child
	if !assignable(target) {
		return ts, nil, p.errorAt(rest, "invalid assignment target")
	}
	rest, value, err := p.Expression(rest[1:])
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.Assignment{Token: ts.Peek(), Target: target, Value: value}, nil
}

func assignable(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Identifier:
		return true
	case *ast.IndexAccess:
		return assignable(n.Object)
	case *ast.PropertyAccess:
		return assignable(n.Object)
	}
	return false
}

// FunctionReturn = "return" expression
func (p *Parser) FunctionReturn(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	retTok, rest, err := p.expect(ts, lexer.KindReturn)
	if err != nil {
		return ts, nil, err
	}
	rest, value, err := p.Expression(rest)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.FunctionReturn{Token: retTok, Value: value}, nil
}

// IfExpression = "if" cond block { "else" "if" cond block } [ "else" block ]
func (p *Parser) IfExpression(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	ifTok, rest, err := p.expect(ts, lexer.KindIf)
	if err != nil {
		return ts, nil, err
	}
	node := &ast.IfExpression{Token: ifTok}

	rest, cond, block, err := p.conditional(rest)
	if err != nil {
		return ts, nil, err
	}
	node.Children = append(node.Children, cond, block)

	for leading(rest) == lexer.KindElse {
		next := rest[1:] // skip else
		if leading(next) == lexer.KindIf {
			after, cond, block, err := p.conditional(next[1:])
			if err != nil {
				return ts, nil, err
			}
			node.Children = append(node.Children, cond, block)
			rest = after
			continue
		}
		after, block, err := p.Block(next)
		if err != nil {
			return ts, nil, err
		}
		node.Children = append(node.Children, block)
		rest = after
		break
	}
	return rest, node, nil
}

// conditional parses a condition followed by its block. A parenthesized
// condition is just a parenthesized expression.
func (p *Parser) conditional(ts lexer.Tokens) (lexer.Tokens, ast.Node, ast.Node, error) {
	rest, cond, err := p.Expression(ts)
	if err != nil {
		return ts, nil, nil, err
	}
	rest, block, err := p.Block(rest)
	if err != nil {
		return ts, nil, nil, err
	}
	return rest, cond, block, nil
}

// WhileLoop = "while" cond block
func (p *Parser) WhileLoop(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	whileTok, rest, err := p.expect(ts, lexer.KindWhile)
	if err != nil {
		return ts, nil, err
	}
	rest, cond, block, err := p.conditional(rest)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.WhileLoop{Token: whileTok, Cond: cond, Body: block}, nil
}

// FunctionDefine = "fn" identifier "(" [ argument { "," argument } ] ")" body
func (p *Parser) FunctionDefine(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	fnTok, rest, err := p.expect(ts, lexer.KindFn)
	if err != nil {
		return ts, nil, err
	}
	name, rest, err := p.identifier(rest)
	if err != nil {
		return ts, nil, err
	}
	open, rest, err := p.expect(rest, lexer.KindLeftParen)
	if err != nil {
		return ts, nil, err
	}
	args := &ast.FunctionArguments{Token: open}
	rest, args.Children, err = p.separated(rest, p.argument, lexer.KindRightParen)
	if err != nil {
		return ts, nil, err
	}

	bodyTok, items, rest, err := p.body(rest)
	if err != nil {
		return ts, nil, err
	}
	return rest, &ast.FunctionDefine{
		Token: fnTok,
		Name:  name.Name,
		Args:  args,
		Body:  &ast.FunctionStatements{Token: bodyTok, Children: items},
	}, nil
}

// argument = identifier [ "=" expression ]
func (p *Parser) argument(ts lexer.Tokens) (lexer.Tokens, ast.Node, error) {
	name, rest, err := p.identifier(ts)
	if err != nil {
		return ts, nil, err
	}
	arg := &ast.ArgumentDefine{Token: name.Token, Name: name}
	if rest.Peek().Kind == lexer.KindEqual {
		after, def, err := p.Expression(rest[1:])
		if err != nil {
			return ts, nil, err
		}
		arg.Default = def
		rest = after
	}
	return rest, arg, nil
}

// separated parses [ item { "," item } ] close. The opening delimiter has
// already been consumed.
func (p *Parser) separated(ts lexer.Tokens, item Rule, close lexer.Kind) (lexer.Tokens, []ast.Node, error) {
	rest := ts
	if rest.Peek().Kind == close {
		return rest[1:], nil, nil
	}
	var items []ast.Node
	for {
		after, n, err := item(rest)
		if err != nil {
			return ts, nil, err
		}
		items = append(items, n)
		rest = after

		if rest.Peek().Kind == lexer.KindComma {
			rest = rest[1:]
			continue
		}
		if _, rest, err = p.expect(rest, close); err != nil {
			return ts, nil, err
		}
		return rest, items, nil
	}
}
