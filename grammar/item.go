package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// item is an LR(0) item, a production with a dot in its RHS.
//
//	E → E + T
//
//	dot | item
//	----+-----------
//	0   | E →・E + T
//	1   | E → E・+ T
//	2   | E → E +・T
//	3   | E → E + T・
type item struct {
	prod *production
	dot  int
}

// dotted returns the symbol right after the dot, or the nil symbol when the item is complete.
func (it item) dotted() symbol {
	if it.dot >= len(it.prod.rhs) {
		return symbolNil
	}
	return it.prod.rhs[it.dot]
}

func (it item) complete() bool {
	return it.dot == len(it.prod.rhs)
}

func (it item) advance() item {
	return item{
		prod: it.prod,
		dot:  it.dot + 1,
	}
}

// isKernel reports whether the item can appear in a kernel: the initial item `S' →・S` or an item whose dot has
// moved.
func (it item) isKernel() bool {
	return it.dot > 0 || it.prod.lhs.isStart()
}

func (it item) less(jt item) bool {
	if it.prod.num != jt.prod.num {
		return it.prod.num < jt.prod.num
	}
	return it.dot < jt.dot
}

func (it item) String() string {
	return fmt.Sprintf("%v.%v", it.prod.num, it.dot)
}

// kernel is a sorted set of kernel items. Two states are the same when their kernels have the same key.
type kernel struct {
	key   string
	items []item
}

func newKernel(items []item) (*kernel, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("a kernel needs at least one item")
	}

	uniq := make([]item, 0, len(items))
	seen := map[item]struct{}{}
	for _, it := range items {
		if !it.isKernel() {
			return nil, fmt.Errorf("not a kernel item: %v", it)
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		uniq = append(uniq, it)
	}
	sort.Slice(uniq, func(i, j int) bool {
		return uniq[i].less(uniq[j])
	})

	keys := make([]string, len(uniq))
	for i, it := range uniq {
		keys[i] = it.String()
	}
	return &kernel{
		key:   strings.Join(keys, ","),
		items: uniq,
	}, nil
}
