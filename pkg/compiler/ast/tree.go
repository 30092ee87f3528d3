package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeNode is a serializable view of a Node used by the ast command.
type TreeNode struct {
	Kind     string      `yaml:"kind"`
	Value    string      `yaml:"value,omitempty"`
	Line     int         `yaml:"line"`
	Col      int         `yaml:"col"`
	Children []*TreeNode `yaml:"children,omitempty"`
}

// Tree converts n into its serializable view. A nil node yields nil.
func Tree(n Node) *TreeNode {
	if n == nil {
		return nil
	}
	tok := n.Pos()
	t := &TreeNode{Kind: kindName(n), Line: tok.StartLine, Col: tok.StartCol}

	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				t.Children = append(t.Children, Tree(c))
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		add(n.Children...)
	case *Block:
		add(n.Children...)
	case *Statement:
		add(n.Children...)
	case *Expression:
		add(n.Child)
	case *UnaryExpression:
		t.Value = n.Op
		add(n.Operand)
	case *BinaryExpression:
		t.Value = n.Op
		add(n.Left, n.Right)
	case *VariableDefine:
		add(n.Name, n.Value)
	case *Assignment:
		add(n.Target, n.Value)
	case *IfExpression:
		add(n.Children...)
	case *WhileLoop:
		add(n.Cond, n.Body)
	case *FunctionDefine:
		t.Value = n.Name
		add(n.Args, n.Body)
	case *ArgumentDefine:
		add(n.Name, n.Default)
	case *FunctionArguments:
		add(n.Children...)
	case *FunctionStatements:
		add(n.Children...)
	case *FunctionCall:
		t.Value = n.Name
		add(n.Args)
	case *FunctionReturn:
		add(n.Value)
	case *ArrayLiteral:
		add(n.Elements...)
	case *IndexAccess:
		add(n.Object, n.Index)
	case *PropertyAccess:
		add(n.Object, n.Property)
	case *MethodCall:
		t.Value = n.Name
		add(n.Object)
		add(n.Args...)
	case *Number:
		t.Value = n.Digits
	case *String:
		t.Value = strconv.Quote(n.Value)
	case *Bool:
		t.Value = strconv.FormatBool(n.Value)
	case *Identifier:
		t.Value = n.Name
	}
	return t
}

func kindName(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
