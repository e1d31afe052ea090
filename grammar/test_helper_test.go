package grammar

import (
	"strings"
	"testing"
)

const testExprGrammar = `
E = E "+" T | T .
T = T "*" F | F .
F = "(" E ")" | id .
id = "x" .
`

func buildTestGrammar(t *testing.T, src string, start string) *Grammar {
	t.Helper()

	b := &GrammarBuilder{
		Source: strings.NewReader(src),
		Name:   "test",
		Start:  start,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbolTable) testSymbolGenerator {
	return func(text string) symbol {
		t.Helper()

		sym, ok := symTab.lookup(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testItemGenerator func(lhs string, dot int, rhs ...string) item

// newTestItemGenerator returns items of the productions registered in a grammar so that they carry their numbers.
func newTestItemGenerator(t *testing.T, gram *Grammar) testItemGenerator {
	genSym := newTestSymbolGenerator(t, gram.symTab)
	return func(lhs string, dot int, rhs ...string) item {
		t.Helper()

		rhsSyms := make([]symbol, len(rhs))
		for i, text := range rhs {
			rhsSyms[i] = genSym(text)
		}
		lhsSym := genSym(lhs)
		for _, p := range gram.prods.alternatives(lhsSym) {
			if p.is(lhsSym, rhsSyms) {
				return item{prod: p, dot: dot}
			}
		}
		t.Fatalf("production was not found: %v -> %v", lhs, rhs)
		return item{}
	}
}

func symbolsToTexts(symTab *symbolTable, syms []symbol) map[string]struct{} {
	texts := map[string]struct{}{}
	for _, sym := range syms {
		texts[symTab.name(sym)] = struct{}{}
	}
	return texts
}

func testTextSet(t *testing.T, expected []string, actual map[string]struct{}) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("unexpected symbol count; want: %v, got: %v", expected, actual)
	}
	for _, e := range expected {
		if _, ok := actual[e]; !ok {
			t.Fatalf("a symbol was not found; want: %v, got: %v", expected, actual)
		}
	}
}
