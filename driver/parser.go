package driver

import (
	"errors"
	"fmt"

	"github.com/nihei9/minic/symtab"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minic.driver")

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// Action is a decoded ACTION entry. State is meaningful only for a shift, and Production only for a reduce.
type Action struct {
	Type       ActionType
	State      int
	Production int
}

func (a Action) String() string {
	switch a.Type {
	case ActionTypeShift:
		return fmt.Sprintf("shift %v", a.State)
	case ActionTypeReduce:
		return fmt.Sprintf("reduce %v", a.Production)
	default:
		return string(a.Type)
	}
}

type ParserOption func(p *Parser) error

// CheckStackDepth makes a parser compare the stack depth of every semantic action set implementing
// StackDepthReporter with its own after every shift and reduction.
func CheckStackDepth() ParserOption {
	return func(p *Parser) error {
		p.checkDepth = true
		return nil
	}
}

type Parser struct {
	gram       Grammar
	tab        *symtab.Table
	semActs    []SemanticActionSet
	checkDepth bool

	stateStack []int
	toks       []*Token
	pos        int
	seq        int
}

func NewParser(gram Grammar, tab *symtab.Table, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram: gram,
		tab:  tab,
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Register adds semantic action sets. They are notified in the order they are registered.
func (p *Parser) Register(acts ...SemanticActionSet) {
	for _, a := range acts {
		a.BindSymbolTable(p.tab)
		p.semActs = append(p.semActs, a)
	}
}

// Parse runs the LR parsing loop over a token sequence ending with the end marker.
func (p *Parser) Parse(toks []*Token) error {
	p.stateStack = []int{p.gram.InitialState()}
	p.toks = toks
	p.pos = 0
	p.seq = 0

	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		state := p.top()
		act := p.lookupAction(state, tok)
		log.Debugf("state: %v, token: %v, action: %v", state, tok, act)

		switch act.Type {
		case ActionTypeShift:
			err := p.shift(state, tok, act.State)
			if err != nil {
				return err
			}
		case ActionTypeReduce:
			err := p.reduce(state, act.Production)
			if err != nil {
				return err
			}
		case ActionTypeAccept:
			return p.accept(state)
		default:
			return &SyntaxError{
				Row:               tok.Row,
				Col:               tok.Col,
				Token:             tok,
				ExpectedTerminals: p.searchLookahead(state),
			}
		}
	}

	return &InternalError{
		Cause: errors.New("the tokens ran out before the input was accepted"),
	}
}

func (p *Parser) lookupAction(state int, tok *Token) Action {
	term, ok := p.gram.TerminalID(tok.Kind)
	if !ok {
		return Action{
			Type: ActionTypeError,
		}
	}

	act := p.gram.Action(state, term)
	switch {
	case act < 0:
		return Action{
			Type:  ActionTypeShift,
			State: act * -1,
		}
	case act == p.gram.StartProduction():
		return Action{
			Type:       ActionTypeAccept,
			Production: act,
		}
	case act > 0:
		return Action{
			Type:       ActionTypeReduce,
			Production: act,
		}
	default:
		return Action{
			Type: ActionTypeError,
		}
	}
}

func (p *Parser) shift(state int, tok *Token, nextState int) error {
	p.seq++
	for _, a := range p.semActs {
		err := a.Shift(state, tok)
		if err != nil {
			return p.toInternalError(err)
		}
	}

	p.push(nextState)
	p.pos++

	return p.checkStackDepth()
}

func (p *Parser) reduce(state int, prodNum int) error {
	prod := p.gram.Production(prodNum)
	if prod == nil {
		return &InternalError{
			Cause: fmt.Errorf("production not found: %v", prodNum),
		}
	}

	p.seq++
	for _, a := range p.semActs {
		err := a.Reduce(state, prod)
		if err != nil {
			return p.toInternalError(err)
		}
	}

	n := p.gram.AlternativeSymbolCount(prodNum)
	if n >= len(p.stateStack) {
		return &InternalError{
			Seq:   p.seq,
			Cause: fmt.Errorf("the state stack is too shallow to reduce %v; depth: %v", prod, len(p.stateStack)),
		}
	}
	p.pop(n)
	nextState := p.gram.GoTo(p.top(), p.gram.LHS(prodNum))
	if nextState == 0 {
		return &InternalError{
			Seq:   p.seq,
			Cause: fmt.Errorf("GOTO entry not found; state: %v, production: %v", p.top(), prod),
		}
	}
	p.push(nextState)

	return p.checkStackDepth()
}

func (p *Parser) accept(state int) error {
	p.seq++
	for _, a := range p.semActs {
		err := a.Accept(state)
		if err != nil {
			return p.toInternalError(err)
		}
	}

	if len(p.stateStack) != 2 {
		return &InternalError{
			Seq:   p.seq,
			Cause: fmt.Errorf("the state stack must have exactly 2 entries on accepting; got: %v", len(p.stateStack)),
		}
	}
	if rest := len(p.toks) - p.pos; rest != 1 {
		return &InternalError{
			Seq:   p.seq,
			Cause: fmt.Errorf("exactly 1 token must remain on accepting; got: %v", rest),
		}
	}

	return nil
}

func (p *Parser) checkStackDepth() error {
	if !p.checkDepth {
		return nil
	}

	want := len(p.stateStack) - 1
	for _, a := range p.semActs {
		r, ok := a.(StackDepthReporter)
		if !ok {
			continue
		}
		if got := r.StackDepth(); got != want {
			return &InternalError{
				Seq:   p.seq,
				Cause: fmt.Errorf("the stack depth of %T diverged; want: %v, got: %v", a, want, got),
			}
		}
	}
	return nil
}

func (p *Parser) toInternalError(err error) error {
	var iErr *InternalError
	if errors.As(err, &iErr) {
		if iErr.Seq == 0 {
			iErr.Seq = p.seq
		}
		return err
	}
	return &InternalError{
		Seq:   p.seq,
		Cause: err,
	}
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *Parser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
}

func (p *Parser) searchLookahead(state int) []string {
	kinds := []string{}
	termCount := p.gram.TerminalCount()
	for term := 0; term < termCount; term++ {
		if p.gram.Action(state, term) == 0 {
			continue
		}

		kinds = append(kinds, p.gram.Terminal(term))
	}

	return kinds
}
