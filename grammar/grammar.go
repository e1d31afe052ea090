// Package grammar builds SLR(1) parsing tables from a grammar written in EBNF.
//
// Productions whose names begin with an upper-case letter are syntactic, and each of their bodies must be
// alternatives of plain sequences. Productions whose names begin with a lower-case letter are lexical; the parser
// sees them as terminals named after the production. Quoted tokens are terminals named by their text.
package grammar

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/nihei9/minic/spec"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("minic.grammar")

type Grammar struct {
	name   string
	prods  *productionSet
	symTab *symbolTable
}

type GrammarBuilder struct {
	Source io.Reader

	// Name is used as the file name in error messages and as the name of the compiled grammar.
	Name string

	// Start is the name of the start production.
	Start string
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.Start == "" {
		return nil, fmt.Errorf("a start production must be specified")
	}

	egram, err := ebnf.Parse(b.Name, b.Source)
	if err != nil {
		return nil, err
	}
	err = ebnf.Verify(egram, b.Start)
	if err != nil {
		return nil, err
	}
	if !isSyntacticName(b.Start) {
		return nil, fmt.Errorf("the start production must be syntactic: %v", b.Start)
	}

	// Go maps have no order, so productions are numbered in the order they appear in the source.
	var eprods []*ebnf.Production
	for _, p := range egram {
		if !isSyntacticName(p.Name.String) {
			continue
		}
		eprods = append(eprods, p)
	}
	sort.Slice(eprods, func(i, j int) bool {
		return eprods[i].Name.Pos().Offset < eprods[j].Name.Pos().Offset
	})

	symTab := newSymbolTable(b.Start + "'")
	for _, p := range eprods {
		_, err := symTab.intern(p.Name.String, false)
		if err != nil {
			return nil, err
		}
	}

	prods := newProductionSet()
	{
		sym, _ := symTab.lookup(b.Start)
		_, err := prods.add(symbolStart, []symbol{sym})
		if err != nil {
			return nil, err
		}
	}
	for _, ep := range eprods {
		lhs, _ := symTab.lookup(ep.Name.String)
		alts, err := flattenAlternatives(ep)
		if err != nil {
			return nil, err
		}
		for _, alt := range alts {
			rhs, err := genRHS(symTab, alt)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", ep.Name.String, err)
			}
			_, err = prods.add(lhs, rhs)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", ep.Name.String, err)
			}
		}
	}

	return &Grammar{
		name:   b.Name,
		prods:  prods,
		symTab: symTab,
	}, nil
}

func isSyntacticName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// flattenAlternatives returns the alternatives of a syntactic production as sequences of names and tokens.
func flattenAlternatives(p *ebnf.Production) ([]ebnf.Sequence, error) {
	var exprs []ebnf.Expression
	if alt, ok := p.Expr.(ebnf.Alternative); ok {
		exprs = alt
	} else {
		exprs = []ebnf.Expression{p.Expr}
	}

	alts := make([]ebnf.Sequence, 0, len(exprs))
	for _, e := range exprs {
		switch x := e.(type) {
		case nil:
			alts = append(alts, nil)
		case ebnf.Sequence:
			alts = append(alts, x)
		case *ebnf.Name, *ebnf.Token:
			alts = append(alts, ebnf.Sequence{x})
		default:
			return nil, fmt.Errorf("%v: a syntactic production can contain only names and tokens; found: %T", p.Name.String, e)
		}
	}
	return alts, nil
}

func genRHS(symTab *symbolTable, seq ebnf.Sequence) ([]symbol, error) {
	rhs := make([]symbol, 0, len(seq))
	for _, e := range seq {
		var sym symbol
		var err error
		switch x := e.(type) {
		case *ebnf.Name:
			if isSyntacticName(x.String) {
				s, ok := symTab.lookup(x.String)
				if !ok {
					return nil, fmt.Errorf("undefined production: %v", x.String)
				}
				sym = s
			} else {
				sym, err = symTab.intern(x.String, true)
			}
		case *ebnf.Token:
			sym, err = symTab.intern(x.String, true)
		default:
			return nil, fmt.Errorf("a syntactic production can contain only names and tokens; found: %T", e)
		}
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, sym)
	}
	return rhs, nil
}

// ConflictError reports that a grammar is not SLR(1).
type ConflictError struct {
	Conflicts []string
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v conflicts", len(e.Conflicts))
	for _, c := range e.Conflicts {
		b.WriteString("\n")
		b.WriteString(c)
	}
	return b.String()
}

func Compile(gram *Grammar) (*spec.CompiledGrammar, error) {
	fst, err := genFirstSet(gram.prods)
	if err != nil {
		return nil, err
	}
	flw, err := genFollowSet(gram.prods, fst)
	if err != nil {
		return nil, err
	}
	lr0, err := genLR0Automaton(gram.prods)
	if err != nil {
		return nil, err
	}
	reds, err := genSLR1Reductions(lr0, flw)
	if err != nil {
		return nil, err
	}

	tab, conflicts := buildParsingTable(lr0, reds, gram.symTab.terminalCount(), gram.symTab.nonTerminalCount())
	if len(conflicts) > 0 {
		cs := make([]string, len(conflicts))
		for i, c := range conflicts {
			cs[i] = c.describe(gram.symTab)
		}
		return nil, &ConflictError{
			Conflicts: cs,
		}
	}

	allProds := gram.prods.all()
	lhsSyms := make([]int, len(allProds)+1)
	altSymCounts := make([]int, len(allProds)+1)
	prods := make([]*spec.Production, len(allProds)+1)
	for _, p := range allProds {
		lhsSyms[p.num] = p.lhs.num
		altSymCounts[p.num] = len(p.rhs)

		rhs := make([]string, len(p.rhs))
		for i, sym := range p.rhs {
			rhs[i] = gram.symTab.name(sym)
		}
		prods[p.num] = &spec.Production{
			Num: p.num,
			LHS: gram.symTab.name(p.lhs),
			RHS: rhs,
		}
	}

	log.Debugf("compiled %v: %v states, %v terminals, %v non-terminals, %v productions", gram.name, tab.stateCount, tab.termCount, tab.nonTermCount, len(allProds))

	return &spec.CompiledGrammar{
		Name: gram.name,
		Syntactic: &spec.SyntacticSpec{
			Action:                  tab.action,
			GoTo:                    tab.goTo,
			StateCount:              tab.stateCount,
			InitialState:            stateNumInitial,
			StartProduction:         productionNumStart,
			LHSSymbols:              lhsSyms,
			AlternativeSymbolCounts: altSymCounts,
			Productions:             prods,
			Terminals:               append([]string{}, gram.symTab.termNames...),
			TerminalCount:           tab.termCount,
			NonTerminals:            append([]string{}, gram.symTab.nonTermNames...),
			NonTerminalCount:        tab.nonTermCount,
			EOFSymbol:               symbolEOF.num,
		},
	}, nil
}
