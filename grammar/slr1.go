package grammar

import "fmt"

// reduction is a reduce move of a state. It applies only when the next terminal is one of lookAhead.
type reduction struct {
	prod      *production
	lookAhead []symbol
}

// genSLR1Reductions gives every complete item `A → α・` FOLLOW(A) as its look-ahead. The result is indexed by
// state numbers.
func genSLR1Reductions(a *lr0Automaton, flw followSet) ([][]*reduction, error) {
	reds := make([][]*reduction, len(a.states))
	for _, state := range a.states {
		for _, it := range state.complete() {
			f, ok := flw[it.prod.lhs]
			if !ok {
				return nil, fmt.Errorf("FOLLOW of %v was not found; state: %v", it.prod.lhs, state.num)
			}
			reds[state.num] = append(reds[state.num], &reduction{
				prod:      it.prod,
				lookAhead: f.sorted(),
			})
		}
	}
	return reds, nil
}
