package grammar

import "fmt"

// symbolSet is a set of terminals.
type symbolSet map[symbol]struct{}

func (s symbolSet) add(sym symbol) bool {
	if _, ok := s[sym]; ok {
		return false
	}
	s[sym] = struct{}{}
	return true
}

// union adds all symbols of `t` to `s` and reports whether `s` grew.
func (s symbolSet) union(t symbolSet) bool {
	grew := false
	for sym := range t {
		if s.add(sym) {
			grew = true
		}
	}
	return grew
}

func (s symbolSet) sorted() []symbol {
	syms := make([]symbol, 0, len(s))
	for sym := range s {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// firstSet holds FIRST of every non-terminal. A nullable non-terminal derives the empty string.
type firstSet struct {
	first    map[symbol]symbolSet
	nullable map[symbol]bool
}

// genFirstSet iterates over all productions until no FIRST set grows.
func genFirstSet(prods *productionSet) (*firstSet, error) {
	fst := &firstSet{
		first:    map[symbol]symbolSet{},
		nullable: map[symbol]bool{},
	}
	for _, p := range prods.all() {
		fst.first[p.lhs] = symbolSet{}
	}

	for changed := true; changed; {
		changed = false
		for _, p := range prods.all() {
			syms, nullable, err := fst.ofSequence(p.rhs)
			if err != nil {
				return nil, err
			}
			if fst.first[p.lhs].union(syms) {
				changed = true
			}
			if nullable && !fst.nullable[p.lhs] {
				fst.nullable[p.lhs] = true
				changed = true
			}
		}
	}
	return fst, nil
}

// ofSequence returns FIRST of a symbol sequence and whether the sequence derives the empty string.
func (fst *firstSet) ofSequence(syms []symbol) (symbolSet, bool, error) {
	acc := symbolSet{}
	for _, sym := range syms {
		if sym.isTerminal() {
			acc.add(sym)
			return acc, false, nil
		}
		f, ok := fst.first[sym]
		if !ok {
			return nil, false, fmt.Errorf("a non-terminal symbol has no productions: %v", sym)
		}
		acc.union(f)
		if !fst.nullable[sym] {
			return acc, false, nil
		}
	}
	return acc, true, nil
}
