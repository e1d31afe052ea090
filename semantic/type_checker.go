// Package semantic checks declarations while a parser runs and records declared types in the symbol table.
package semantic

import (
	"fmt"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minic.semantic")

var (
	_ driver.SemanticActionSet  = &TypeChecker{}
	_ driver.StackDepthReporter = &TypeChecker{}
)

type typeFrame struct {
	tok *driver.Token
	typ symtab.Type
}

// TypeChecker keeps a stack of (token, type) frames. A declaration `int x` sets the type of `x` when
// `S -> D id` is reduced.
type TypeChecker struct {
	w      *symtab.TableWriter
	frames []*typeFrame
}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{}
}

func (c *TypeChecker) BindSymbolTable(tab *symtab.Table) {
	c.w = tab.Writer()
}

func (c *TypeChecker) Shift(state int, tok *driver.Token) error {
	typ := symtab.TypeNone
	if tok.Kind == "int" {
		typ = symtab.TypeInt
	}
	c.push(&typeFrame{
		tok: tok,
		typ: typ,
	})
	return nil
}

func (c *TypeChecker) Reduce(state int, prod *spec.Production) error {
	n := len(prod.RHS)
	if n > len(c.frames) {
		return &driver.InternalError{
			Cause: fmt.Errorf("the type stack is too shallow to reduce %v; depth: %v", prod, len(c.frames)),
		}
	}

	switch {
	case prod.Is("D", "int"):
		c.pop(n)
		c.push(&typeFrame{
			typ: symtab.TypeInt,
		})
	case prod.Is("S", "D", driver.KindID):
		id := c.frames[len(c.frames)-1]
		d := c.frames[len(c.frames)-2]
		if c.w == nil {
			return &driver.InternalError{
				Cause: fmt.Errorf("no symbol table is bound"),
			}
		}
		err := c.w.SetType(id.tok.Text, d.typ)
		if err != nil {
			return &driver.InternalError{
				Cause: err,
			}
		}
		log.Debugf("%v: %v", id.tok.Text, d.typ)
		c.pop(n)
		c.push(&typeFrame{})
	default:
		c.pop(n)
		c.push(&typeFrame{})
	}
	return nil
}

func (c *TypeChecker) Accept(state int) error {
	return nil
}

func (c *TypeChecker) StackDepth() int {
	return len(c.frames)
}

func (c *TypeChecker) push(f *typeFrame) {
	c.frames = append(c.frames, f)
}

func (c *TypeChecker) pop(n int) {
	c.frames = c.frames[:len(c.frames)-n]
}
