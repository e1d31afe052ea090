package grammar

import (
	"fmt"
	"sort"
)

// The initial state is state 0. It is never the target of a transition because no item moves its dot into
// `S' →・S`.
const stateNumInitial = 0

type lrState struct {
	num    int
	kernel *kernel

	// closure is the kernel items followed by the items the closure adds.
	closure []item

	// next maps a symbol to the state a transition on the symbol enters.
	next map[symbol]int
}

// complete returns the items of the state whose dots reached the end, in ascending order of production numbers.
func (s *lrState) complete() []item {
	var items []item
	for _, it := range s.closure {
		if it.complete() {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].less(items[j])
	})
	return items
}

type lr0Automaton struct {
	states     []*lrState
	key2States map[string]*lrState
}

// genLR0Automaton numbers states in the order they are discovered by a breadth-first walk. Transitions of a state
// are walked in the order of their symbols, so the numbering is stable.
func genLR0Automaton(prods *productionSet) (*lr0Automaton, error) {
	starts := prods.alternatives(symbolStart)
	if len(starts) != 1 {
		return nil, fmt.Errorf("the augmented start symbol must have exactly one production; got: %v", len(starts))
	}

	a := &lr0Automaton{
		key2States: map[string]*lrState{},
	}
	k, err := newKernel([]item{{prod: starts[0]}})
	if err != nil {
		return nil, err
	}
	queue := []*lrState{a.addState(k)}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		state.closure = closeItems(state.kernel.items, prods)

		var syms []symbol
		moved := map[symbol][]item{}
		for _, it := range state.closure {
			sym := it.dotted()
			if sym.isNil() {
				continue
			}
			if _, ok := moved[sym]; !ok {
				syms = append(syms, sym)
			}
			moved[sym] = append(moved[sym], it.advance())
		}
		sortSymbols(syms)

		for _, sym := range syms {
			k, err := newKernel(moved[sym])
			if err != nil {
				return nil, err
			}
			target, ok := a.key2States[k.key]
			if !ok {
				target = a.addState(k)
				queue = append(queue, target)
			}
			state.next[sym] = target.num
		}
	}
	return a, nil
}

func (a *lr0Automaton) addState(k *kernel) *lrState {
	s := &lrState{
		num:    len(a.states),
		kernel: k,
		next:   map[symbol]int{},
	}
	a.states = append(a.states, s)
	a.key2States[k.key] = s
	return s
}

// closeItems adds `B →・γ` for every item `A → α・B β` until no item is added.
func closeItems(kernelItems []item, prods *productionSet) []item {
	items := append([]item{}, kernelItems...)
	seen := map[item]struct{}{}
	for _, it := range items {
		seen[it] = struct{}{}
	}
	for i := 0; i < len(items); i++ {
		sym := items[i].dotted()
		if !sym.isNonTerminal() {
			continue
		}
		for _, p := range prods.alternatives(sym) {
			it := item{prod: p}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			items = append(items, it)
		}
	}
	return items
}
