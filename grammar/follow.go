package grammar

// followSet holds FOLLOW of every non-terminal. The end marker is an ordinary member.
type followSet map[symbol]symbolSet

// genFollowSet iterates over all productions until no FOLLOW set grows. FOLLOW of the augmented start symbol is
// the end marker.
func genFollowSet(prods *productionSet, fst *firstSet) (followSet, error) {
	flw := followSet{}
	for _, p := range prods.all() {
		flw[p.lhs] = symbolSet{}
	}
	flw[symbolStart].add(symbolEOF)

	for changed := true; changed; {
		changed = false
		for _, p := range prods.all() {
			for i, sym := range p.rhs {
				if !sym.isNonTerminal() {
					continue
				}
				rest, nullable, err := fst.ofSequence(p.rhs[i+1:])
				if err != nil {
					return nil, err
				}
				if flw[sym].union(rest) {
					changed = true
				}
				if nullable && flw[sym].union(flw[p.lhs]) {
					changed = true
				}
			}
		}
	}
	return flw, nil
}
