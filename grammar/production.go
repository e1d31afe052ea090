package grammar

import "fmt"

// The augmented start production is always production 1. Production 0 is reserved so that a zero ACTION entry
// means an error.
const productionNumStart = 1

type production struct {
	num int
	lhs symbol
	rhs []symbol
}

func (p *production) is(lhs symbol, rhs []symbol) bool {
	if p.lhs != lhs || len(p.rhs) != len(rhs) {
		return false
	}
	for i, sym := range rhs {
		if p.rhs[i] != sym {
			return false
		}
	}
	return true
}

// productionSet numbers productions in the order they are added.
type productionSet struct {
	num2Prod  []*production
	lhs2Prods map[symbol][]*production
}

func newProductionSet() *productionSet {
	return &productionSet{
		num2Prod:  []*production{nil},
		lhs2Prods: map[symbol][]*production{},
	}
}

// add appends the production `lhs → rhs`. The first production added must be the augmented start production.
func (ps *productionSet) add(lhs symbol, rhs []symbol) (*production, error) {
	if lhs.isNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol")
	}
	if lhs.isStart() != (len(ps.num2Prod) == productionNumStart) {
		return nil, fmt.Errorf("the augmented start production must be the first and only production of %v", lhs)
	}
	for _, p := range ps.lhs2Prods[lhs] {
		if p.is(lhs, rhs) {
			return nil, fmt.Errorf("duplicate alternative")
		}
	}

	prod := &production{
		num: len(ps.num2Prod),
		lhs: lhs,
		rhs: rhs,
	}
	ps.num2Prod = append(ps.num2Prod, prod)
	ps.lhs2Prods[lhs] = append(ps.lhs2Prods[lhs], prod)
	return prod, nil
}

// alternatives returns the productions of `lhs` in ascending order of their numbers.
func (ps *productionSet) alternatives(lhs symbol) []*production {
	return ps.lhs2Prods[lhs]
}

// all returns all productions in ascending order of their numbers.
func (ps *productionSet) all() []*production {
	return ps.num2Prod[1:]
}
