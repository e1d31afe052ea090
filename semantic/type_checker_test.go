package semantic

import (
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
)

func parse(t *testing.T, tab *symtab.Table, toks []*driver.Token) (*TypeChecker, error) {
	t.Helper()

	cgram, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	p, err := driver.NewParser(driver.NewGrammar(cgram), tab, driver.CheckStackDepth())
	if err != nil {
		t.Fatal(err)
	}
	c := NewTypeChecker()
	p.Register(c)
	return c, p.Parse(toks)
}

func genTokens(tab *symtab.Table, notations ...string) []*driver.Token {
	w := tab.Writer()
	toks := make([]*driver.Token, 0, len(notations)+1)
	for _, n := range notations {
		kind, text, _ := strings.Cut(n, ":")
		if kind == "id" {
			w.Add(text)
		}
		toks = append(toks, &driver.Token{
			Kind: kind,
			Text: text,
		})
	}
	return append(toks, driver.NewEOFToken(0, 0))
}

func TestTypeChecker(t *testing.T) {
	tests := []struct {
		caption string
		toks    []string
		dump    string
	}{
		{
			caption: "a declaration sets the type",
			toks:    []string{"int", "id:x", ";", "id:x", "=", "int_const:5", ";", "return", "id:x", ";"},
			dump:    "x: int\n",
		},
		{
			caption: "an identifier without a declaration has no type",
			toks:    []string{"int", "id:a", ";", "id:b", "=", "id:a", "+", "int_const:1", ";"},
			dump:    "a: int\nb: -\n",
		},
		{
			caption: "multiple declarations",
			toks:    []string{"int", "id:a", ";", "int", "id:b", ";", "id:c", "=", "id:a", "*", "id:b", ";"},
			dump:    "a: int\nb: int\nc: -\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tab := symtab.NewTable()
			toks := genTokens(tab, tt.toks...)
			c, err := parse(t, tab, toks)
			if err != nil {
				t.Fatal(err)
			}

			var b strings.Builder
			err = symtab.Dump(&b, tab.Reader())
			if err != nil {
				t.Fatal(err)
			}
			if b.String() != tt.dump {
				t.Fatalf("unexpected symbol table; want: %q, got: %q", tt.dump, b.String())
			}
			if c.StackDepth() != 1 {
				t.Fatalf("unexpected stack depth on accepting; want: 1, got: %v", c.StackDepth())
			}
		})
	}
}

func TestTypeChecker_MissingEntry(t *testing.T) {
	tab := symtab.NewTable()
	toks := []*driver.Token{
		{Kind: "int"},
		{Kind: "id", Text: "x"},
		{Kind: ";"},
		driver.NewEOFToken(0, 0),
	}

	_, err := parse(t, tab, toks)
	var iErr *driver.InternalError
	if !errors.As(err, &iErr) {
		t.Fatalf("unexpected error; want: %T, got: %v", iErr, err)
	}
}

func TestTypeChecker_Reduce(t *testing.T) {
	tab := symtab.NewTable()
	tab.Writer().Add("x")

	c := NewTypeChecker()
	c.BindSymbolTable(tab)

	steps := []func() error{
		func() error { return c.Shift(0, &driver.Token{Kind: "int"}) },
		func() error { return c.Reduce(0, &spec.Production{LHS: "D", RHS: []string{"int"}}) },
		func() error { return c.Shift(0, &driver.Token{Kind: "id", Text: "x"}) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.frames[0].typ != symtab.TypeInt || c.frames[0].tok != nil {
		t.Fatalf("D -> int must leave a frame having the int type and no token; got: %+v", c.frames[0])
	}

	err := c.Reduce(0, &spec.Production{LHS: "S", RHS: []string{"D", "id"}})
	if err != nil {
		t.Fatal(err)
	}
	if c.StackDepth() != 1 {
		t.Fatalf("S -> D id must pop 2 frames and push 1; depth: %v", c.StackDepth())
	}
	e, _ := tab.Reader().Lookup("x")
	if e.Type != symtab.TypeInt {
		t.Fatalf("unexpected type; want: %v, got: %v", symtab.TypeInt, e.Type)
	}

	err = c.Reduce(0, &spec.Production{LHS: "X", RHS: []string{"a", "b"}})
	if err == nil {
		t.Fatalf("reducing more frames than the stack holds must be an error")
	}
}

func TestTypeChecker_ReduceMatchesLHS(t *testing.T) {
	tab := symtab.NewTable()
	c := NewTypeChecker()
	c.BindSymbolTable(tab)

	err := c.Shift(0, &driver.Token{Kind: "int"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.Reduce(0, &spec.Production{LHS: "T", RHS: []string{"int"}})
	if err != nil {
		t.Fatal(err)
	}
	if c.frames[0].typ != symtab.TypeNone {
		t.Fatalf("only D -> int yields the int type; got: %v", c.frames[0].typ)
	}
}
