package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agenthands/asa/pkg/compiler/ast"
	"github.com/agenthands/asa/pkg/compiler/lexer"
	"github.com/agenthands/asa/pkg/compiler/parser"
)

func TestRules(t *testing.T) {
	p := parser.NewParser()
	tests := []struct {
		name string
		src  string
		rule parser.Rule
		want string
	}{
		{"identifier", "hello", p.Identifier, "Identifier(hello)"},
		{"identifier with digits", "x12", p.Identifier, "Identifier(x12)"},
		{"identifier containing keyword", "diff", p.Identifier, "Identifier(diff)"},
		{"identifier starting with keyword", "letter", p.Identifier, "Identifier(letter)"},
		{"keyword prefix in statement", "iffy = truely;", p.Statement,
			"Assignment[Identifier(iffy), Expression[Identifier(truely)]]"},
		{"keyword prefix in definition", "let returns = 1;", p.Statement,
			"VariableDefine[Identifier(returns), Expression[Number(1)]]"},
		{"number", "123", p.Number, "Number(123)"},
		{"boolean", "true", p.Boolean, "Bool(true)"},
		{"string", `"hello"`, p.String, `String("hello")`},
		{"call without args", "foo()", p.FunctionCall, "FunctionCall(foo)[FunctionArguments[]]"},
		{"call with one arg", "foo(a)", p.FunctionCall,
			"FunctionCall(foo)[FunctionArguments[Expression[Identifier(a)]]]"},
		{"define number", "let a = 123", p.VariableDefine,
			"VariableDefine[Identifier(a), Expression[Number(123)]]"},
		{"define bool", "let a = true", p.VariableDefine,
			"VariableDefine[Identifier(a), Expression[Bool(true)]]"},
		{"addition", "1+1", p.Addition, `BinaryExpression("+", Number(1), Number(1))`},
		{"define sum", "let a = 1 + 1", p.VariableDefine,
			`VariableDefine[Identifier(a), Expression[BinaryExpression("+", Number(1), Number(1))]]`},
		{"define call", "let a = foo()", p.VariableDefine,
			"VariableDefine[Identifier(a), Expression[FunctionCall(foo)[FunctionArguments[]]]]"},
		{"function define", "fn a(){return 1;}", p.FunctionDefine,
			"FunctionDefine(a)[FunctionArguments[], FunctionStatements[FunctionReturn[Expression[Number(1)]]]]"},
		{"function define statements", "fn add(a,b){let x=a+b;return x;}", p.FunctionDefine,
			"FunctionDefine(add)[FunctionArguments[ArgumentDefine[Identifier(a)], ArgumentDefine[Identifier(b)]], " +
				`FunctionStatements[VariableDefine[Identifier(x), Expression[BinaryExpression("+", Identifier(a), Identifier(b))]], ` +
				"FunctionReturn[Expression[Identifier(x)]]]]"},
		{"default argument", `fn greet(name="World"){}`, p.FunctionDefine,
			`FunctionDefine(greet)[FunctionArguments[ArgumentDefine[Identifier(name), Expression[String("World")]]], FunctionStatements[]]`},
		{"precedence", "1 + 2 * 3", p.Expression,
			`Expression[BinaryExpression("+", Number(1), BinaryExpression("*", Number(2), Number(3)))]`},
		{"left fold", "8 - 4 - 2", p.Expression,
			`Expression[BinaryExpression("-", BinaryExpression("-", Number(8), Number(4)), Number(2))]`},
		{"exponent folds left", "2 ^ 3 ^ 2", p.Expression,
			`Expression[BinaryExpression("^", BinaryExpression("^", Number(2), Number(3)), Number(2))]`},
		{"modulo binds like addition", "1 % 2 * 3", p.Expression,
			`Expression[BinaryExpression("%", Number(1), BinaryExpression("*", Number(2), Number(3)))]`},
		{"logical levels", "a || b && c == d", p.Expression,
			`Expression[BinaryExpression("||", Identifier(a), BinaryExpression("&&", Identifier(b), ` +
				`BinaryExpression("==", Identifier(c), Identifier(d))))]`},
		{"comparison below addition", "a + 1 <= b", p.Expression,
			`Expression[BinaryExpression("<=", BinaryExpression("+", Identifier(a), Number(1)), Identifier(b))]`},
		{"nested unary", "- -x", p.Expression,
			`Expression[UnaryExpression("-", UnaryExpression("-", Identifier(x)))]`},
		{"not", "!(1 > 0)", p.Expression,
			`Expression[UnaryExpression("!", BinaryExpression(">", Number(1), Number(0)))]`},
		{"grouping adds no node", "((2 + 3))", p.Expression,
			`Expression[BinaryExpression("+", Number(2), Number(3))]`},
		{"array literal", "[1, x, \"s\"]", p.Expression,
			`Expression[ArrayLiteral[Expression[Number(1)], Expression[Identifier(x)], Expression[String("s")]]]`},
		{"empty array", "[]", p.Expression, "Expression[ArrayLiteral[]]"},
		{"index and property", "xs[0].length", p.Expression,
			"Expression[PropertyAccess[IndexAccess[Identifier(xs), Expression[Number(0)]], Identifier(length)]]"},
		{"method call", "xs.insert(0, 9)", p.Expression,
			"Expression[MethodCall(insert)[Identifier(xs), Expression[Number(0)], Expression[Number(9)]]]"},
		{"if else chain", "if a { 1; } else if (b) { 2; } else { 3; }", p.IfExpression,
			"IfExpression[Expression[Identifier(a)], Block[Expression[Number(1)]], " +
				"Expression[Identifier(b)], Block[Expression[Number(2)]], Block[Expression[Number(3)]]]"},
		{"if as expression", "let x = if true { return 1; }", p.VariableDefine,
			"VariableDefine[Identifier(x), Expression[IfExpression[Expression[Bool(true)], " +
				"Block[FunctionReturn[Expression[Number(1)]]]]]]"},
		{"while", "while (x > 0) { x = x - 1; break; }", p.WhileLoop,
			`WhileLoop[Expression[BinaryExpression(">", Identifier(x), Number(0))], ` +
				`Block[Assignment[Identifier(x), Expression[BinaryExpression("-", Identifier(x), Number(1))]], Break]]`},
		{"index assignment", "xs[1] = 2;", p.Statement,
			"Assignment[IndexAccess[Identifier(xs), Expression[Number(1)]], Expression[Number(2)]]"},
		{"expression statement", "print(x);", p.Statement,
			"Expression[FunctionCall(print)[FunctionArguments[Expression[Identifier(x)]]]]"},
		{"continue", "continue;", p.Statement, "Continue"},
		{"comment", "// let x = 1;", p.Comment, "Null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, node, err := tt.rule(lexer.Lex([]byte(tt.src)))
			if err != nil {
				t.Fatalf("parse %q: %v", tt.src, err)
			}
			if !rest.IsDone() {
				t.Errorf("parse %q left %v unconsumed", tt.src, rest.Kinds())
			}
			if got := ast.Dump(node); got != tt.want {
				t.Errorf("parse %q =\n  %s\nwant\n  %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "Program[]"},
		{"whitespace only", " \n\t", "Program[]"},
		{"bare expression", "2^3", `Program[Expression[BinaryExpression("^", Number(2), Number(3))]]`},
		{"statements", "let x = 5;\nreturn x;",
			"Program[VariableDefine[Identifier(x), Expression[Number(5)]], FunctionReturn[Expression[Identifier(x)]]]"},
		{"comments", "// header\nlet a = 1; // trailing\n// footer",
			"Program[Null, VariableDefine[Identifier(a), Expression[Number(1)]], Null, Null]"},
		{"function and call", "fn main() { return 1; }\nmain();",
			"Program[FunctionDefine(main)[FunctionArguments[], FunctionStatements[FunctionReturn[Expression[Number(1)]]]], " +
				"Expression[FunctionCall(main)[FunctionArguments[]]]]"},
		{"if statement with trailing semicolon", "if true { } ;",
			"Program[IfExpression[Expression[Bool(true)], Block[]]]"},
		{"slash is division", "4 / 2;", `Program[Expression[BinaryExpression("/", Number(4), Number(2))]]`},
		{"function named with a keyword prefix", "fn fnord() { } fnords();",
			"Program[FunctionDefine(fnord)[FunctionArguments[], FunctionStatements[]], " +
				"Expression[FunctionCall(fnords)[FunctionArguments[]]]]"},
		{"else prefix after if", "if true { } elsewhere = 1;",
			"Program[IfExpression[Expression[Bool(true)], Block[]], Assignment[Identifier(elsewhere), Expression[Number(1)]]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := ast.Dump(prog); got != tt.want {
				t.Errorf("Parse(%q) =\n  %s\nwant\n  %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		line, col  int
		msg        string
		incomplete bool
	}{
		{"missing semicolon", "let x = 1 let y = 2;", 1, 11, `expected ";"`, false},
		{"unclosed function", "fn f() {\n  return 1;\n", 3, 1, `expected "}"`, true},
		{"dangling operator", "let x = 1 +", 1, 12, "expected expression", true},
		{"stray character", "let x = 1;\nlet y = @;", 2, 9, "unexpected character '@'", false},
		{"non ascii", "let \xc3\xa9 = 1;", 1, 5, "unexpected non-ASCII byte 0xc3", false},
		{"unterminated string", "let s = \"abc\n;", 1, 9, "unterminated string literal", false},
		{"invalid utf8 in string", "let s = \"\xff\";", 1, 9, "string literal is not valid UTF-8", false},
		{"stray closing paren", "x )", 1, 3, `unexpected ")"`, false},
		{"spaced digits", "let x = 1 2;", 1, 11, `expected ";"`, false},
		{"invalid assignment target", "fn f() { 1 = 2; }", 1, 12, "invalid assignment target", false},
		{"call as assignment target", "fn f() { g() = 2; }", 1, 14, "invalid assignment target", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.src))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			var pe *parser.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is %T, want *parser.ParseError", err, err)
			}
			if pe.Line != tt.line || pe.Col != tt.col {
				t.Errorf("error at %d:%d, want %d:%d (%v)", pe.Line, pe.Col, tt.line, tt.col, err)
			}
			if !strings.Contains(pe.Msg, tt.msg) {
				t.Errorf("message %q does not contain %q", pe.Msg, tt.msg)
			}
			if got := parser.IsIncomplete(err); got != tt.incomplete {
				t.Errorf("IsIncomplete() = %v, want %v", got, tt.incomplete)
			}
		})
	}
}

func TestParseNestedIndexStatements(t *testing.T) {
	const depth = 25
	src := "0"
	for i := 0; i < depth; i++ {
		src = "if true { a[" + src + "]; } else { 0; }"
	}
	src = "a[" + src + "];"

	done := make(chan error, 1)
	go func() {
		_, err := parser.Parse([]byte(src))
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("parsing %d nested index statements did not finish in time", depth)
	}
}
