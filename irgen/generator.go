// Package irgen synthesizes three-address code while a parser runs.
package irgen

import (
	"fmt"
	"strconv"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/ir"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minic.irgen")

var (
	_ driver.SemanticActionSet  = &Generator{}
	_ driver.StackDepthReporter = &Generator{}
)

type binaryOp struct {
	lhs    string
	rhs    []string
	opcode ir.Opcode
}

var binaryOps = []binaryOp{
	{lhs: "E", rhs: []string{"E", "+", "A"}, opcode: ir.OpAdd},
	{lhs: "E", rhs: []string{"E", "-", "A"}, opcode: ir.OpSubtract},
	{lhs: "A", rhs: []string{"A", "*", "B"}, opcode: ir.OpMultiply},
}

func findBinaryOp(prod *spec.Production) (ir.Opcode, bool) {
	for _, op := range binaryOps {
		if prod.Is(op.lhs, op.rhs...) {
			return op.opcode, true
		}
	}
	return "", false
}

// Generator keeps a stack of values parallel to the state stack. A frame is nil when the symbol has no value.
type Generator struct {
	r         *symtab.TableReader
	values    []ir.Value
	prog      *ir.Program
	nextTemp  int
	finalized bool
}

func NewGenerator() *Generator {
	return &Generator{
		prog: &ir.Program{},
	}
}

func (g *Generator) BindSymbolTable(tab *symtab.Table) {
	g.r = tab.Reader()
}

func (g *Generator) Shift(state int, tok *driver.Token) error {
	switch tok.Kind {
	case driver.KindID:
		if g.r != nil && !g.r.Has(tok.Text) {
			return &driver.InternalError{
				Cause: fmt.Errorf("an identifier is not registered in the symbol table: %v", tok.Text),
			}
		}
		g.push(ir.Variable{
			Name: tok.Text,
		})
	case driver.KindIntConst:
		v, err := strconv.Atoi(tok.Text)
		if err != nil {
			return &driver.InternalError{
				Cause: fmt.Errorf("an integer literal is out of range: %w", err),
			}
		}
		g.push(ir.Immediate{
			Value: v,
		})
	default:
		g.push(nil)
	}
	return nil
}

func (g *Generator) Reduce(state int, prod *spec.Production) error {
	n := len(prod.RHS)
	if n > len(g.values) {
		return &driver.InternalError{
			Cause: fmt.Errorf("the value stack is too shallow to reduce %v; depth: %v", prod, len(g.values)),
		}
	}

	if opcode, ok := findBinaryOp(prod); ok {
		lhs := g.peek(2)
		rhs := g.peek(0)
		if lhs == nil || rhs == nil {
			return &driver.InternalError{
				Cause: fmt.Errorf("an operand of %v has no value", prod),
			}
		}
		var dest ir.Value
		switch chooseDestination(lhs) {
		case destinationReuseTemp:
			dest = lhs
		default:
			dest = g.newTemp()
		}
		g.emit(ir.NewBinary(opcode, dest, lhs, rhs))
		g.pop(n)
		g.push(dest)
		return nil
	}

	switch {
	case prod.Is("E", "A"), prod.Is("A", "B"), prod.Is("B", driver.KindID), prod.Is("B", driver.KindIntConst):
		v := g.peek(0)
		g.pop(n)
		g.push(v)
	case prod.Is("B", "(", "E", ")"):
		v := g.peek(1)
		g.pop(n)
		g.push(v)
	case prod.Is("S", driver.KindID, "=", "E"):
		dest, ok := g.peek(2).(ir.Variable)
		if !ok {
			return &driver.InternalError{
				Cause: fmt.Errorf("the destination of an assignment must be a variable; got: %v", g.peek(2)),
			}
		}
		src := g.peek(0)
		if src == nil {
			return &driver.InternalError{
				Cause: fmt.Errorf("an assignment has no source value"),
			}
		}
		g.emit(ir.NewMove(dest, src))
		g.pop(n)
		g.push(nil)
	case prod.Is("S", "return", "E"):
		src := g.peek(0)
		if src == nil {
			return &driver.InternalError{
				Cause: fmt.Errorf("a return has no value"),
			}
		}
		g.emit(ir.NewReturn(src))
		g.pop(n)
		g.push(nil)
	default:
		g.pop(n)
		g.push(nil)
	}
	return nil
}

func (g *Generator) Accept(state int) error {
	g.finalized = true
	log.Debugf("%v instructions, %v temporaries", g.prog.Len(), g.nextTemp)
	return nil
}

// Program returns the instructions emitted so far. The program is complete only when Finalized returns true.
func (g *Generator) Program() *ir.Program {
	return g.prog
}

func (g *Generator) Finalized() bool {
	return g.finalized
}

func (g *Generator) StackDepth() int {
	return len(g.values)
}

func (g *Generator) emit(inst *ir.Instruction) {
	g.prog.Append(inst)
}

func (g *Generator) newTemp() ir.Temporary {
	t := ir.Temporary{
		Seq: g.nextTemp,
	}
	g.nextTemp++
	return t
}

// peek returns the n-th value from the top. peek(0) is the top.
func (g *Generator) peek(n int) ir.Value {
	return g.values[len(g.values)-1-n]
}

func (g *Generator) push(v ir.Value) {
	g.values = append(g.values, v)
}

func (g *Generator) pop(n int) {
	g.values = g.values[:len(g.values)-n]
}
