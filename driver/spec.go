package driver

import "github.com/nihei9/minic/spec"

type Grammar interface {
	// InitialState returns the initial state of a parser.
	InitialState() int

	// StartProduction returns the start production of grammar. Reducing it means accepting an input.
	StartProduction() int

	// Action returns an ACTION entry corresponding to a (state, terminal symbol) pair.
	Action(state int, terminal int) int

	// GoTo returns a GOTO entry corresponding to a (state, non-terminal symbol) pair.
	GoTo(state int, lhs int) int

	// AlternativeSymbolCount returns a symbol count of p production.
	AlternativeSymbolCount(prod int) int

	// TerminalCount returns a terminal symbol count of grammar.
	TerminalCount() int

	// LHS returns a LHS symbol of a production.
	LHS(prod int) int

	// EOF returns the EOF symbol.
	EOF() int

	// Terminal return a string representation of a terminal symbol.
	Terminal(terminal int) string

	// TerminalID returns the terminal symbol named `kind`.
	TerminalID(kind string) (int, bool)

	// Production returns a production in a readable form.
	Production(prod int) *spec.Production
}

var _ Grammar = &grammarImpl{}

type grammarImpl struct {
	g         *spec.CompiledGrammar
	kind2Term map[string]int
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	kind2Term := make(map[string]int, len(g.Syntactic.Terminals))
	for term, name := range g.Syntactic.Terminals {
		if name == "" {
			continue
		}
		kind2Term[name] = term
	}
	return &grammarImpl{
		g:         g,
		kind2Term: kind2Term,
	}
}

func (g *grammarImpl) InitialState() int {
	return g.g.Syntactic.InitialState
}

func (g *grammarImpl) StartProduction() int {
	return g.g.Syntactic.StartProduction
}

func (g *grammarImpl) Action(state int, terminal int) int {
	return g.g.Syntactic.ActionEntry(state, terminal)
}

func (g *grammarImpl) GoTo(state int, lhs int) int {
	return g.g.Syntactic.GoToEntry(state, lhs)
}

func (g *grammarImpl) AlternativeSymbolCount(prod int) int {
	return g.g.Syntactic.AlternativeSymbolCounts[prod]
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.Syntactic.LHSSymbols[prod]
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) TerminalID(kind string) (int, bool) {
	term, ok := g.kind2Term[kind]
	return term, ok
}

func (g *grammarImpl) Production(prod int) *spec.Production {
	return g.g.Syntactic.Productions[prod]
}
