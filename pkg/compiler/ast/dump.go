package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as a compact one-line tree, e.g.
//
//	VariableDefine[Identifier(a), Expression[BinaryExpression("+", Number(1), Number(1))]]
//
// Positions are not included, so two trees with the same shape dump equally.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

// Equal reports whether two trees have the same shape and contents.
func Equal(a, b Node) bool {
	return Dump(a) == Dump(b)
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Program:
		list(b, "Program", n.Children)
	case *Block:
		list(b, "Block", n.Children)
	case *Statement:
		list(b, "Statement", n.Children)
	case *Expression:
		list(b, "Expression", []Node{n.Child})
	case *UnaryExpression:
		fmt.Fprintf(b, "UnaryExpression(%q, ", n.Op)
		dump(b, n.Operand)
		b.WriteByte(')')
	case *BinaryExpression:
		fmt.Fprintf(b, "BinaryExpression(%q, ", n.Op)
		dump(b, n.Left)
		b.WriteString(", ")
		dump(b, n.Right)
		b.WriteByte(')')
	case *VariableDefine:
		list(b, "VariableDefine", []Node{n.Name, n.Value})
	case *Assignment:
		list(b, "Assignment", []Node{n.Target, n.Value})
	case *IfExpression:
		list(b, "IfExpression", n.Children)
	case *WhileLoop:
		list(b, "WhileLoop", []Node{n.Cond, n.Body})
	case *FunctionDefine:
		list(b, "FunctionDefine("+n.Name+")", []Node{n.Args, n.Body})
	case *ArgumentDefine:
		if n.Default == nil {
			list(b, "ArgumentDefine", []Node{n.Name})
		} else {
			list(b, "ArgumentDefine", []Node{n.Name, n.Default})
		}
	case *FunctionArguments:
		list(b, "FunctionArguments", n.Children)
	case *FunctionStatements:
		list(b, "FunctionStatements", n.Children)
	case *FunctionCall:
		list(b, "FunctionCall("+n.Name+")", []Node{n.Args})
	case *FunctionReturn:
		list(b, "FunctionReturn", []Node{n.Value})
	case *ArrayLiteral:
		list(b, "ArrayLiteral", n.Elements)
	case *IndexAccess:
		list(b, "IndexAccess", []Node{n.Object, n.Index})
	case *PropertyAccess:
		list(b, "PropertyAccess", []Node{n.Object, n.Property})
	case *MethodCall:
		list(b, "MethodCall("+n.Name+")", append([]Node{n.Object}, n.Args...))
	case *Number:
		fmt.Fprintf(b, "Number(%s)", n.Digits)
	case *String:
		fmt.Fprintf(b, "String(%s)", strconv.Quote(n.Value))
	case *Bool:
		fmt.Fprintf(b, "Bool(%t)", n.Value)
	case *Identifier:
		fmt.Fprintf(b, "Identifier(%s)", n.Name)
	case *Null:
		b.WriteString("Null")
	case *Break:
		b.WriteString("Break")
	case *Continue:
		b.WriteString("Continue")
	default:
		fmt.Fprintf(b, "%T", n)
	}
}

func list(b *strings.Builder, head string, children []Node) {
	b.WriteString(head)
	b.WriteByte('[')
	for i, c := range children {
		if i > 0 {
			b.WriteString(", ")
		}
		dump(b, c)
	}
	b.WriteByte(']')
}
