package ast_test

import (
	"testing"

	"github.com/agenthands/asa/pkg/compiler/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func num(digits string) *ast.Number      { return &ast.Number{Digits: digits} }

func TestDump(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"nil", nil, "<nil>"},
		{"leaves", &ast.Program{Children: []ast.Node{
			num("12"), &ast.String{Value: "hi \"x\""}, &ast.Bool{Value: true}, ident("a"),
			&ast.Null{}, &ast.Break{}, &ast.Continue{},
		}}, `Program[Number(12), String("hi \"x\""), Bool(true), Identifier(a), Null, Break, Continue]`},
		{"variable define", &ast.VariableDefine{
			Name: ident("a"),
			Value: &ast.Expression{Child: &ast.BinaryExpression{
				Op: "+", Left: num("1"), Right: num("1"),
			}},
		}, `VariableDefine[Identifier(a), Expression[BinaryExpression("+", Number(1), Number(1))]]`},
		{"unary", &ast.UnaryExpression{Op: "!", Operand: &ast.Bool{}}, `UnaryExpression("!", Bool(false))`},
		{"function define", &ast.FunctionDefine{
			Name: "greet",
			Args: &ast.FunctionArguments{Children: []ast.Node{
				&ast.ArgumentDefine{Name: ident("a")},
				&ast.ArgumentDefine{Name: ident("b"), Default: &ast.Expression{Child: num("2")}},
			}},
			Body: &ast.FunctionStatements{Children: []ast.Node{
				&ast.FunctionReturn{Value: &ast.Expression{Child: ident("a")}},
			}},
		}, "FunctionDefine(greet)[FunctionArguments[ArgumentDefine[Identifier(a)], " +
			"ArgumentDefine[Identifier(b), Expression[Number(2)]]], " +
			"FunctionStatements[FunctionReturn[Expression[Identifier(a)]]]]"},
		{"call without args", &ast.FunctionCall{Name: "foo", Args: &ast.FunctionArguments{}},
			"FunctionCall(foo)[FunctionArguments[]]"},
		{"method call", &ast.MethodCall{Name: "push", Object: ident("xs"), Args: []ast.Node{num("1")}},
			"MethodCall(push)[Identifier(xs), Number(1)]"},
		{"index and property", &ast.Assignment{
			Target: &ast.IndexAccess{Object: ident("xs"), Index: num("0")},
			Value:  &ast.PropertyAccess{Object: ident("s"), Property: ident("length")},
		}, "Assignment[IndexAccess[Identifier(xs), Number(0)], PropertyAccess[Identifier(s), Identifier(length)]]"},
		{"if and while", &ast.Block{Children: []ast.Node{
			&ast.IfExpression{Children: []ast.Node{&ast.Bool{Value: true}, &ast.Block{}, &ast.Block{}}},
			&ast.WhileLoop{Cond: &ast.Bool{}, Body: &ast.Block{}},
		}}, "Block[IfExpression[Bool(true), Block[], Block[]], WhileLoop[Bool(false), Block[]]]"},
		{"array literal", &ast.ArrayLiteral{Elements: []ast.Node{num("1"), num("2")}},
			"ArrayLiteral[Number(1), Number(2)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.Dump(tt.node); got != tt.want {
				t.Errorf("Dump() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestEqualIgnoresPositions(t *testing.T) {
	a := &ast.Number{Digits: "7"}
	b := &ast.Number{Digits: "7"}
	b.Token.StartLine = 9
	if !ast.Equal(a, b) {
		t.Errorf("nodes differing only in position should be equal")
	}
	if ast.Equal(a, &ast.Number{Digits: "8"}) {
		t.Errorf("different digits should not be equal")
	}
}

func TestTree(t *testing.T) {
	n := &ast.BinaryExpression{Op: "+", Left: num("1"), Right: ident("x")}
	n.Token.StartLine, n.Token.StartCol = 2, 5

	tree := ast.Tree(n)
	if tree.Kind != "BinaryExpression" || tree.Value != "+" || tree.Line != 2 || tree.Col != 5 {
		t.Fatalf("unexpected root %+v", tree)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Children))
	}
	if c := tree.Children[1]; c.Kind != "Identifier" || c.Value != "x" {
		t.Errorf("unexpected right child %+v", c)
	}
	if ast.Tree(nil) != nil {
		t.Errorf("Tree(nil) should be nil")
	}
}
