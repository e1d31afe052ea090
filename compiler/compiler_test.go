package compiler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
)

func TestCompiler_Compile(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		ir      string
		symbols string
	}{
		{
			caption: "declaration, assignment, and return",
			src: `int x;
x = 5;
return x;
`,
			ir:      "MOV x, 5\nRET x\n",
			symbols: "x: int\n",
		},
		{
			caption: "arithmetic with temporaries",
			src: `int a;
int b;
int c;
a = 8;
b = 5;
c = 3 - a;
a = b * (c + 2) - 1;
return a + b * c;
`,
			ir: `MOV a, 8
MOV b, 5
SUB $0, 3, a
MOV c, $0
ADD $1, c, 2
MUL $2, b, $1
SUB $2, $2, 1
MOV a, $2
MUL $3, b, c
ADD $4, a, $3
RET $4
`,
			symbols: "a: int\nb: int\nc: int\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := New()
			if err != nil {
				t.Fatal(err)
			}
			res, err := c.Compile(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}

			var b strings.Builder
			_, err = res.Program.WriteTo(&b)
			if err != nil {
				t.Fatal(err)
			}
			if b.String() != tt.ir {
				t.Fatalf("unexpected IR;\nwant:\n%v\ngot:\n%v", tt.ir, b.String())
			}

			b.Reset()
			err = symtab.Dump(&b, res.Symbols)
			if err != nil {
				t.Fatal(err)
			}
			if b.String() != tt.symbols {
				t.Fatalf("unexpected symbols;\nwant:\n%v\ngot:\n%v", tt.symbols, b.String())
			}

			if res.Tokens[len(res.Tokens)-1].Kind != driver.KindEOF {
				t.Fatalf("tokens must end with the end marker")
			}
		})
	}
}

func TestCompiler_Error(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		check   func(err error) bool
	}{
		{
			caption: "a syntax error",
			src:     "int x; x = ; return x;",
			check: func(err error) bool {
				var e *driver.SyntaxError
				return errors.As(err, &e) && e.Row == 0 && e.Col == 11
			},
		},
		{
			caption: "a keyword the grammar doesn't use",
			src:     "print x;",
			check: func(err error) bool {
				var e *driver.SyntaxError
				return errors.As(err, &e) && e.Token.Kind == "print"
			},
		},
		{
			caption: "an invalid character",
			src:     "x = 1 % 2;",
			check: func(err error) bool {
				var e *lexer.InvalidTokenError
				return errors.As(err, &e) && e.Text == "%"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := New()
			if err != nil {
				t.Fatal(err)
			}
			res, err := c.Compile(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("an error must occur")
			}
			if res != nil {
				t.Fatalf("no result must be returned on an error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCompiler_WithGrammar(t *testing.T) {
	tests := []struct {
		caption  string
		compress bool
	}{
		{
			caption: "plain tables",
		},
		{
			caption:  "compressed tables",
			compress: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			cgram, err := grammar.Default()
			if err != nil {
				t.Fatal(err)
			}

			// Round-trip the tables through JSON the way `minic grammar` and `minic compile --grammar` do.
			var buf bytes.Buffer
			err = spec.Write(&buf, cgram)
			if err != nil {
				t.Fatal(err)
			}
			loaded, err := spec.Read(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if tt.compress {
				err := loaded.Syntactic.Compress()
				if err != nil {
					t.Fatal(err)
				}
				buf.Reset()
				err = spec.Write(&buf, loaded)
				if err != nil {
					t.Fatal(err)
				}
				loaded, err = spec.Read(&buf)
				if err != nil {
					t.Fatal(err)
				}
				if loaded.Syntactic.Action != nil || loaded.Syntactic.CompressedAction == nil {
					t.Fatalf("a compressed grammar must hold only compressed tables")
				}
			}

			c, err := New(WithGrammar(loaded))
			if err != nil {
				t.Fatal(err)
			}
			res, err := c.Compile(strings.NewReader("int x; x = (1 + 2) * y; return x - 3;"))
			if err != nil {
				t.Fatal(err)
			}
			expected := []string{"ADD $0, 1, 2", "MUL $0, $0, y", "MOV x, $0", "SUB $1, x, 3", "RET $1"}
			if strings.Join(res.Program.Lines(), "\n") != strings.Join(expected, "\n") {
				t.Fatalf("unexpected IR; want: %v, got: %v", expected, res.Program.Lines())
			}

			_, err = c.Compile(strings.NewReader("return 1 +;"))
			var synErr *driver.SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("unexpected error; want: %T, got: %v", synErr, err)
			}
		})
	}
}

func TestCompiler_WithTrace(t *testing.T) {
	var b strings.Builder
	c, err := New(WithTrace(&b))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Compile(strings.NewReader("return 0;"))
	if err != nil {
		t.Fatal(err)
	}
	expected := `shift return
shift int_const 0
reduce B -> int_const
reduce A -> B
reduce E -> A
reduce S -> return E
shift ;
reduce S_list -> S ;
reduce P -> S_list
accept
`
	if b.String() != expected {
		t.Fatalf("unexpected trace;\nwant:\n%v\ngot:\n%v", expected, b.String())
	}
}

func TestCompiler_Reuse(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		res, err := c.Compile(strings.NewReader("int y; y = 1 + 2; return y;"))
		if err != nil {
			t.Fatal(err)
		}
		// Every compilation has its own symbol table and its own temporary numbering.
		if res.Symbols.Len() != 1 {
			t.Fatalf("unexpected symbol count; want: 1, got: %v", res.Symbols.Len())
		}
		if res.Program.Lines()[0] != "ADD $0, 1, 2" {
			t.Fatalf("unexpected first instruction: %v", res.Program.Lines()[0])
		}
	}
}
