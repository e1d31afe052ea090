package grammar

import (
	"fmt"
	"sort"
)

// symbol identifies a terminal or a non-terminal. The two kinds are numbered separately, and each number is the
// column of the symbol in the ACTION or GOTO table. Number 0 of both kinds is reserved. Terminal 1 is the end
// marker, and non-terminal 1 is the augmented start symbol.
type symbol struct {
	terminal bool
	num      int
}

// The name contains `<` and `>` so that it never conflicts with names defined in a grammar.
const symbolNameEOF = "<eof>"

var (
	symbolNil   = symbol{}
	symbolStart = symbol{num: 1}
	symbolEOF   = symbol{terminal: true, num: 1}
)

func (s symbol) isNil() bool {
	return s.num == 0
}

func (s symbol) isStart() bool {
	return s == symbolStart
}

func (s symbol) isTerminal() bool {
	return !s.isNil() && s.terminal
}

func (s symbol) isNonTerminal() bool {
	return !s.isNil() && !s.terminal
}

// less orders terminals before non-terminals and then by number.
func (s symbol) less(t symbol) bool {
	if s.terminal != t.terminal {
		return s.terminal
	}
	return s.num < t.num
}

func (s symbol) String() string {
	if s.terminal {
		return fmt.Sprintf("t%v", s.num)
	}
	return fmt.Sprintf("n%v", s.num)
}

func sortSymbols(syms []symbol) {
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].less(syms[j])
	})
}

// symbolTable interns symbol names. The names of each kind are listed in the order of their numbers, which is
// the order the compiled grammar exposes them in.
type symbolTable struct {
	name2Sym     map[string]symbol
	termNames    []string
	nonTermNames []string
}

func newSymbolTable(startName string) *symbolTable {
	return &symbolTable{
		name2Sym: map[string]symbol{
			symbolNameEOF: symbolEOF,
			startName:     symbolStart,
		},
		termNames:    []string{"", symbolNameEOF},
		nonTermNames: []string{"", startName},
	}
}

// intern returns the symbol named `name`, registering it when it is unknown. A name can't denote both a terminal
// and a non-terminal.
func (t *symbolTable) intern(name string, terminal bool) (symbol, error) {
	if sym, ok := t.name2Sym[name]; ok {
		if sym.terminal != terminal {
			return symbolNil, fmt.Errorf("a symbol is used as both a terminal and a non-terminal: %v", name)
		}
		return sym, nil
	}

	var sym symbol
	if terminal {
		sym = symbol{terminal: true, num: len(t.termNames)}
		t.termNames = append(t.termNames, name)
	} else {
		sym = symbol{num: len(t.nonTermNames)}
		t.nonTermNames = append(t.nonTermNames, name)
	}
	t.name2Sym[name] = sym
	return sym, nil
}

func (t *symbolTable) lookup(name string) (symbol, bool) {
	sym, ok := t.name2Sym[name]
	return sym, ok
}

func (t *symbolTable) name(sym symbol) string {
	if sym.terminal {
		return t.termNames[sym.num]
	}
	return t.nonTermNames[sym.num]
}

func (t *symbolTable) terminalCount() int {
	return len(t.termNames)
}

func (t *symbolTable) nonTerminalCount() int {
	return len(t.nonTermNames)
}
