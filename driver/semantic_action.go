package driver

import (
	"fmt"
	"io"

	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
)

// SemanticActionSet observes the parsing steps of a Parser. An implementation keeps its own stack of attributes
// in lockstep with the state stack: it pushes one frame per Shift, and per Reduce of a production whose body has
// n symbols it pops n frames and pushes one.
type SemanticActionSet interface {
	// BindSymbolTable runs once when the set is registered to a parser.
	BindSymbolTable(tab *symtab.Table)

	// Shift runs before the driver pushes a state corresponding to `tok`. `state` is the top state before
	// the shift.
	Shift(state int, tok *Token) error

	// Reduce runs before the driver pops the states corresponding to the body of `prod`. `state` is the top
	// state before the reduction.
	Reduce(state int, prod *spec.Production) error

	// Accept runs when the driver accepts an input.
	Accept(state int) error
}

// StackDepthReporter is implemented by semantic action sets whose stack depth a parser can verify.
type StackDepthReporter interface {
	StackDepth() int
}

var (
	_ SemanticActionSet  = &TraceActionSet{}
	_ StackDepthReporter = &TraceActionSet{}
)

// TraceActionSet writes one line per notification.
type TraceActionSet struct {
	w     io.Writer
	depth int
}

func NewTraceActionSet(w io.Writer) *TraceActionSet {
	return &TraceActionSet{
		w: w,
	}
}

func (a *TraceActionSet) BindSymbolTable(tab *symtab.Table) {
}

func (a *TraceActionSet) Shift(state int, tok *Token) error {
	a.depth++
	if tok.Text != "" {
		_, err := fmt.Fprintf(a.w, "shift %v %v\n", tok.Kind, tok.Text)
		return err
	}
	_, err := fmt.Fprintf(a.w, "shift %v\n", tok.Kind)
	return err
}

func (a *TraceActionSet) Reduce(state int, prod *spec.Production) error {
	a.depth = a.depth - len(prod.RHS) + 1
	_, err := fmt.Fprintf(a.w, "reduce %v\n", prod)
	return err
}

func (a *TraceActionSet) Accept(state int) error {
	_, err := fmt.Fprintln(a.w, "accept")
	return err
}

func (a *TraceActionSet) StackDepth() int {
	return a.depth
}
