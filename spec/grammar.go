// Package spec defines the portable form of a compiled grammar. A compiled grammar can be serialized to JSON and
// loaded later as precomputed parsing tables.
package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/minic/compressor"
)

type CompiledGrammar struct {
	Name      string         `json:"name"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// SyntacticSpec holds the LR parsing tables.
//
// Action and GoTo are row-major matrices. An entry of Action is encoded as follows.
//
//	entry < 0:  shift, and the next state is `-entry`
//	entry > 0:  reduce by production `entry`; reducing by StartProduction means accept
//	entry == 0: error
//
// An entry of GoTo is the next state, and 0 means no transition. The initial state is never a goto target because
// no transition enters it.
//
// A compressed spec holds CompressedAction and CompressedGoTo instead of Action and GoTo.
type SyntacticSpec struct {
	Action                  []int             `json:"action,omitempty"`
	GoTo                    []int             `json:"goto,omitempty"`
	CompressedAction        *compressor.Table `json:"compressed_action,omitempty"`
	CompressedGoTo          *compressor.Table `json:"compressed_goto,omitempty"`
	StateCount              int               `json:"state_count"`
	InitialState            int               `json:"initial_state"`
	StartProduction         int               `json:"start_production"`
	LHSSymbols              []int             `json:"lhs_symbols"`
	AlternativeSymbolCounts []int             `json:"alternative_symbol_counts"`
	Productions             []*Production     `json:"productions"`
	Terminals               []string          `json:"terminals"`
	TerminalCount           int               `json:"terminal_count"`
	NonTerminals            []string          `json:"non_terminals"`
	NonTerminalCount        int               `json:"non_terminal_count"`
	EOFSymbol               int               `json:"eof_symbol"`
}

// ActionEntry returns an ACTION entry. Out-of-range indexes of a compressed table read as an error entry.
func (s *SyntacticSpec) ActionEntry(state, terminal int) int {
	if s.CompressedAction != nil {
		e, _ := s.CompressedAction.Lookup(state, terminal)
		return e
	}
	return s.Action[state*s.TerminalCount+terminal]
}

// GoToEntry returns a GOTO entry. Out-of-range indexes of a compressed table read as no transition.
func (s *SyntacticSpec) GoToEntry(state, nonTerminal int) int {
	if s.CompressedGoTo != nil {
		e, _ := s.CompressedGoTo.Lookup(state, nonTerminal)
		return e
	}
	return s.GoTo[state*s.NonTerminalCount+nonTerminal]
}

// Compress replaces Action and GoTo with their compressed forms. Compressing a compressed spec is a no-op.
func (s *SyntacticSpec) Compress() error {
	if s.CompressedAction != nil && s.CompressedGoTo != nil {
		return nil
	}
	action, err := compressor.Compress(s.Action, s.TerminalCount)
	if err != nil {
		return fmt.Errorf("failed to compress the ACTION table: %w", err)
	}
	goTo, err := compressor.Compress(s.GoTo, s.NonTerminalCount)
	if err != nil {
		return fmt.Errorf("failed to compress the GOTO table: %w", err)
	}
	s.CompressedAction = action
	s.CompressedGoTo = goTo
	s.Action = nil
	s.GoTo = nil
	return nil
}

// Production is a production in a readable form. Productions[0] is always nil because the production number 0
// is reserved.
type Production struct {
	Num int      `json:"num"`
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

// Is reports whether p rewrites `lhs` into `rhs`.
func (p *Production) Is(lhs string, rhs ...string) bool {
	if p.LHS != lhs || len(p.RHS) != len(rhs) {
		return false
	}
	for i, sym := range rhs {
		if p.RHS[i] != sym {
			return false
		}
	}
	return true
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS)
	b.WriteString(" ->")
	if len(p.RHS) == 0 {
		b.WriteString(" ε")
		return b.String()
	}
	for _, sym := range p.RHS {
		b.WriteString(" ")
		b.WriteString(sym)
	}
	return b.String()
}

func Write(w io.Writer, cgram *CompiledGrammar) error {
	b, err := json.Marshal(cgram)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func Read(r io.Reader) (*CompiledGrammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cgram := &CompiledGrammar{}
	err = json.Unmarshal(data, cgram)
	if err != nil {
		return nil, err
	}
	return cgram, nil
}
