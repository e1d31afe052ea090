package grammar

import "fmt"

// parsingTable holds row-major ACTION and GOTO tables. An ACTION entry is `-state` for a shift, a production
// number for a reduce, and 0 for an error. A GOTO entry is a state number, and 0 means no transition.
type parsingTable struct {
	action       []int
	goTo         []int
	stateCount   int
	termCount    int
	nonTermCount int
}

type conflict struct {
	state int
	sym   symbol

	// shift is the state a shift enters. It is 0 for a reduce/reduce conflict.
	shift int

	// prods are the productions competing for the entry.
	prods []int
}

func (c *conflict) describe(symTab *symbolTable) string {
	if c.shift != 0 {
		return fmt.Sprintf("shift/reduce conflict; state: %v, symbol: %v, next state: %v, production: %v", c.state, symTab.name(c.sym), c.shift, c.prods[0])
	}
	return fmt.Sprintf("reduce/reduce conflict; state: %v, symbol: %v, productions: %v and %v", c.state, symTab.name(c.sym), c.prods[0], c.prods[1])
}

// buildParsingTable writes shifts and gotos first and reductions after them. A conflicting entry keeps the shift,
// or the reduction by the earlier production, and the conflict is reported. A table having conflicts is unusable.
func buildParsingTable(a *lr0Automaton, reds [][]*reduction, termCount, nonTermCount int) (*parsingTable, []*conflict) {
	tab := &parsingTable{
		action:       make([]int, len(a.states)*termCount),
		goTo:         make([]int, len(a.states)*nonTermCount),
		stateCount:   len(a.states),
		termCount:    termCount,
		nonTermCount: nonTermCount,
	}

	var conflicts []*conflict
	for _, state := range a.states {
		syms := make([]symbol, 0, len(state.next))
		for sym := range state.next {
			syms = append(syms, sym)
		}
		sortSymbols(syms)
		for _, sym := range syms {
			if sym.isTerminal() {
				tab.action[state.num*termCount+sym.num] = -state.next[sym]
			} else {
				tab.goTo[state.num*nonTermCount+sym.num] = state.next[sym]
			}
		}

		for _, red := range reds[state.num] {
			for _, sym := range red.lookAhead {
				i := state.num*termCount + sym.num
				switch e := tab.action[i]; {
				case e == 0:
					tab.action[i] = red.prod.num
				case e < 0:
					conflicts = append(conflicts, &conflict{
						state: state.num,
						sym:   sym,
						shift: -e,
						prods: []int{red.prod.num},
					})
				case e != red.prod.num:
					conflicts = append(conflicts, &conflict{
						state: state.num,
						sym:   sym,
						prods: []int{e, red.prod.num},
					})
					if red.prod.num < e {
						tab.action[i] = red.prod.num
					}
				}
			}
		}
	}
	return tab, conflicts
}
