package grammar

import (
	"testing"
)

func TestGenLR0Automaton(t *testing.T) {
	gram := buildTestGrammar(t, testExprGrammar, "E")

	automaton, err := genLR0Automaton(gram.prods)
	if err != nil {
		t.Fatalf("failed to create a LR0 automaton: %v", err)
	}
	if automaton == nil {
		t.Fatalf("genLR0Automaton returns nil without any error")
	}

	genItem := newTestItemGenerator(t, gram)

	expectedKernels := [][]item{
		{
			genItem("E'", 0, "E"),
		},
		{
			genItem("E'", 1, "E"),
			genItem("E", 1, "E", "+", "T"),
		},
		{
			genItem("E", 1, "T"),
			genItem("T", 1, "T", "*", "F"),
		},
		{
			genItem("T", 1, "F"),
		},
		{
			genItem("F", 1, "(", "E", ")"),
		},
		{
			genItem("F", 1, "id"),
		},
		{
			genItem("E", 2, "E", "+", "T"),
		},
		{
			genItem("T", 2, "T", "*", "F"),
		},
		{
			genItem("E", 1, "E", "+", "T"),
			genItem("F", 2, "(", "E", ")"),
		},
		{
			genItem("E", 3, "E", "+", "T"),
			genItem("T", 1, "T", "*", "F"),
		},
		{
			genItem("T", 3, "T", "*", "F"),
		},
		{
			genItem("F", 3, "(", "E", ")"),
		},
	}

	if len(automaton.states) != len(expectedKernels) {
		t.Fatalf("unexpected state count; want: %v, got: %v", len(expectedKernels), len(automaton.states))
	}
	for i, items := range expectedKernels {
		k, err := newKernel(items)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := automaton.key2States[k.key]; !ok {
			t.Fatalf("a kernel was not found: #%v %v", i, k.key)
		}
	}
	for i, s := range automaton.states {
		if s.num != i {
			t.Fatalf("a state number must be its index; want: %v, got: %v", i, s.num)
		}
	}

	initial := automaton.states[stateNumInitial]
	if initial.kernel.key != "1.0" {
		t.Fatalf("unexpected initial kernel; want: 1.0, got: %v", initial.kernel.key)
	}
	for _, s := range automaton.states {
		for sym, next := range s.next {
			if next == stateNumInitial {
				t.Fatalf("the initial state must not be a transition target; state: %v, symbol: %v", s.num, sym)
			}
		}
	}
}

func TestGenLR0Automaton_StableStateNumbers(t *testing.T) {
	numbering := func() map[string]int {
		gram := buildTestGrammar(t, testExprGrammar, "E")
		automaton, err := genLR0Automaton(gram.prods)
		if err != nil {
			t.Fatal(err)
		}
		m := map[string]int{}
		for _, s := range automaton.states {
			m[s.kernel.key] = s.num
		}
		return m
	}

	expected := numbering()
	for i := 0; i < 5; i++ {
		actual := numbering()
		for key, num := range expected {
			if actual[key] != num {
				t.Fatalf("unexpected state number of %v; want: %v, got: %v", key, num, actual[key])
			}
		}
	}
}

func TestNewKernel(t *testing.T) {
	gram := buildTestGrammar(t, testExprGrammar, "E")
	genItem := newTestItemGenerator(t, gram)

	k1, err := newKernel([]item{
		genItem("F", 2, "(", "E", ")"),
		genItem("E", 1, "E", "+", "T"),
		genItem("E", 1, "E", "+", "T"),
	})
	if err != nil {
		t.Fatal(err)
	}
	k2, err := newKernel([]item{
		genItem("E", 1, "E", "+", "T"),
		genItem("F", 2, "(", "E", ")"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if k1.key != k2.key || len(k1.items) != 2 {
		t.Fatalf("kernels must be sorted and deduplicated; got: %v, %v", k1.key, k2.key)
	}

	_, err = newKernel([]item{genItem("E", 0, "T")})
	if err == nil {
		t.Fatalf("an item whose dot is at the head of a non-start production can't be a kernel item")
	}
	_, err = newKernel(nil)
	if err == nil {
		t.Fatalf("an empty kernel must be an error")
	}
}
