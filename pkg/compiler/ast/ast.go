package ast

import "github.com/agenthands/asa/pkg/compiler/lexer"

// Node represents any node in the Abstract Syntax Tree.
// The set of implementations is closed to this package.
type Node interface {
	Pos() lexer.Token
	astNode()
}

// Program is the root node.
type Program struct {
	Token    lexer.Token
	Children []Node
}

// Block is a brace-delimited statement list of an if or while.
type Block struct {
	Token    lexer.Token
	Children []Node
}

// Statement groups nodes evaluated in order. The parser does not produce it
// but the interpreter accepts it.
type Statement struct {
	Token    lexer.Token
	Children []Node
}

// Expression is a transparent wrapper around exactly one child.
type Expression struct {
	Token lexer.Token
	Child Node
}

// UnaryExpression: OP OPERAND
type UnaryExpression struct {
	Token   lexer.Token
	Op      string
	Operand Node
}

// BinaryExpression: LEFT OP RIGHT
type BinaryExpression struct {
	Token lexer.Token
	Op    string
	Left  Node
	Right Node
}

// VariableDefine: let NAME = VALUE
type VariableDefine struct {
	Token lexer.Token
	Name  *Identifier
	Value Node
}

// Assignment: TARGET = VALUE, where TARGET is an Identifier, IndexAccess or
// PropertyAccess.
type Assignment struct {
	Token  lexer.Token
	Target Node
	Value  Node
}

// IfExpression holds condition/block pairs from index 0. An odd number of
// children means the last one is the else block.
type IfExpression struct {
	Token    lexer.Token
	Children []Node
}

// WhileLoop: while COND { BODY }
type WhileLoop struct {
	Token lexer.Token
	Cond  Node
	Body  Node
}

// FunctionDefine: fn NAME ( ARGS ) { BODY }
type FunctionDefine struct {
	Token lexer.Token
	Name  string
	Args  *FunctionArguments
	Body  *FunctionStatements
}

// ArgumentDefine is one declared parameter. Default is nil when the caller
// must supply the argument.
type ArgumentDefine struct {
	Token   lexer.Token
	Name    *Identifier
	Default Node
}

// FunctionArguments lists ArgumentDefine nodes in a definition or argument
// expressions in a call.
type FunctionArguments struct {
	Token    lexer.Token
	Children []Node
}

// FunctionStatements is the body of a function.
type FunctionStatements struct {
	Token    lexer.Token
	Children []Node
}

// FunctionCall: NAME ( ARGS )
type FunctionCall struct {
	Token lexer.Token
	Name  string
	Args  *FunctionArguments
}

// FunctionReturn: return VALUE
type FunctionReturn struct {
	Token lexer.Token
	Value Node
}

// ArrayLiteral: [ ELEMENTS ]
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Node
}

// IndexAccess: OBJECT [ INDEX ]
type IndexAccess struct {
	Token  lexer.Token
	Object Node
	Index  Node
}

// PropertyAccess: OBJECT . PROPERTY
type PropertyAccess struct {
	Token    lexer.Token
	Object   Node
	Property *Identifier
}

// MethodCall: OBJECT . NAME ( ARGS )
type MethodCall struct {
	Token  lexer.Token
	Name   string
	Object Node
	Args   []Node
}

// Literal values
type Number struct {
	Token  lexer.Token
	Digits string
}

type String struct {
	Token lexer.Token
	Value string
}

type Bool struct {
	Token lexer.Token
	Value bool
}

type Identifier struct {
	Token lexer.Token
	Name  string
}

// Null is what a comment parses to; evaluating it is a no-op.
type Null struct {
	Token lexer.Token
}

type Break struct {
	Token lexer.Token
}

type Continue struct {
	Token lexer.Token
}

func (n *Program) Pos() lexer.Token            { return n.Token }
func (n *Block) Pos() lexer.Token              { return n.Token }
func (n *Statement) Pos() lexer.Token          { return n.Token }
func (n *Expression) Pos() lexer.Token         { return n.Token }
func (n *UnaryExpression) Pos() lexer.Token    { return n.Token }
func (n *BinaryExpression) Pos() lexer.Token   { return n.Token }
func (n *VariableDefine) Pos() lexer.Token     { return n.Token }
func (n *Assignment) Pos() lexer.Token         { return n.Token }
func (n *IfExpression) Pos() lexer.Token       { return n.Token }
func (n *WhileLoop) Pos() lexer.Token          { return n.Token }
func (n *FunctionDefine) Pos() lexer.Token     { return n.Token }
func (n *ArgumentDefine) Pos() lexer.Token     { return n.Token }
func (n *FunctionArguments) Pos() lexer.Token  { return n.Token }
func (n *FunctionStatements) Pos() lexer.Token { return n.Token }
func (n *FunctionCall) Pos() lexer.Token       { return n.Token }
func (n *FunctionReturn) Pos() lexer.Token     { return n.Token }
func (n *ArrayLiteral) Pos() lexer.Token       { return n.Token }
func (n *IndexAccess) Pos() lexer.Token        { return n.Token }
func (n *PropertyAccess) Pos() lexer.Token     { return n.Token }
func (n *MethodCall) Pos() lexer.Token         { return n.Token }
func (n *Number) Pos() lexer.Token             { return n.Token }
func (n *String) Pos() lexer.Token             { return n.Token }
func (n *Bool) Pos() lexer.Token               { return n.Token }
func (n *Identifier) Pos() lexer.Token         { return n.Token }
func (n *Null) Pos() lexer.Token               { return n.Token }
func (n *Break) Pos() lexer.Token              { return n.Token }
func (n *Continue) Pos() lexer.Token           { return n.Token }

func (*Program) astNode()            {}
func (*Block) astNode()              {}
func (*Statement) astNode()          {}
func (*Expression) astNode()         {}
func (*UnaryExpression) astNode()    {}
func (*BinaryExpression) astNode()   {}
func (*VariableDefine) astNode()     {}
func (*Assignment) astNode()         {}
func (*IfExpression) astNode()       {}
func (*WhileLoop) astNode()          {}
func (*FunctionDefine) astNode()     {}
func (*ArgumentDefine) astNode()     {}
func (*FunctionArguments) astNode()  {}
func (*FunctionStatements) astNode() {}
func (*FunctionCall) astNode()       {}
func (*FunctionReturn) astNode()     {}
func (*ArrayLiteral) astNode()       {}
func (*IndexAccess) astNode()        {}
func (*PropertyAccess) astNode()     {}
func (*MethodCall) astNode()         {}
func (*Number) astNode()             {}
func (*String) astNode()             {}
func (*Bool) astNode()               {}
func (*Identifier) astNode()         {}
func (*Null) astNode()               {}
func (*Break) astNode()              {}
func (*Continue) astNode()           {}
