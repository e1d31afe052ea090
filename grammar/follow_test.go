package grammar

import (
	"testing"
)

func TestGenFollowSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		start   string
		follow  map[string][]string
	}{
		{
			caption: "left-recursive expression grammar",
			src:     testExprGrammar,
			start:   "E",
			follow: map[string][]string{
				"E'": {symbolNameEOF},
				"E":  {"+", ")", symbolNameEOF},
				"T":  {"+", "*", ")", symbolNameEOF},
				"F":  {"+", "*", ")", symbolNameEOF},
			},
		},
		{
			caption: "FOLLOW of a nullable suffix includes FOLLOW of the LHS",
			src: `
S = A B "c" | A .
A = "a" .
B = .
`,
			start: "S",
			follow: map[string][]string{
				"S'": {symbolNameEOF},
				"S":  {symbolNameEOF},
				"A":  {"c", symbolNameEOF},
				"B":  {"c"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := buildTestGrammar(t, tt.src, tt.start)
			genSym := newTestSymbolGenerator(t, gram.symTab)

			fst, err := genFirstSet(gram.prods)
			if err != nil {
				t.Fatal(err)
			}
			flw, err := genFollowSet(gram.prods, fst)
			if err != nil {
				t.Fatal(err)
			}

			for lhs, expected := range tt.follow {
				f, ok := flw[genSym(lhs)]
				if !ok {
					t.Fatalf("an entry of FOLLOW was not found: %v", lhs)
				}
				testTextSet(t, expected, symbolsToTexts(gram.symTab, f.sorted()))
			}
		})
	}
}
