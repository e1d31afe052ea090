// Package ir defines the three-address intermediate representation emitted while parsing.
package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Value is an operand of an instruction. Variable, Temporary, and Immediate implement Value, and they are
// comparable with `==`.
type Value interface {
	fmt.Stringer
	value()
}

var (
	_ Value = Variable{}
	_ Value = Temporary{}
	_ Value = Immediate{}
)

// Variable is a user-declared named variable.
type Variable struct {
	Name string
}

func (Variable) value() {}

func (v Variable) String() string {
	return v.Name
}

// Temporary is a compiler-generated intermediate value. Seq is unique within a program.
type Temporary struct {
	Seq int
}

func (Temporary) value() {}

func (t Temporary) String() string {
	return "$" + strconv.Itoa(t.Seq)
}

// Immediate is an integer literal.
type Immediate struct {
	Value int
}

func (Immediate) value() {}

func (i Immediate) String() string {
	return strconv.Itoa(i.Value)
}

type Opcode string

const (
	OpMove     = Opcode("MOV")
	OpAdd      = Opcode("ADD")
	OpSubtract = Opcode("SUB")
	OpMultiply = Opcode("MUL")
	OpReturn   = Opcode("RET")
)

func (o Opcode) String() string {
	return string(o)
}

type Instruction struct {
	Op Opcode

	// Dest is nil when Op is OpReturn.
	Dest Value

	// Src has one operand for OpMove and OpReturn, and two operands for arithmetic operations.
	Src []Value
}

func NewMove(dest Value, src Value) *Instruction {
	return &Instruction{
		Op:   OpMove,
		Dest: dest,
		Src:  []Value{src},
	}
}

func NewReturn(src Value) *Instruction {
	return &Instruction{
		Op:  OpReturn,
		Src: []Value{src},
	}
}

func NewBinary(op Opcode, dest Value, lhs Value, rhs Value) *Instruction {
	return &Instruction{
		Op:   op,
		Dest: dest,
		Src:  []Value{lhs, rhs},
	}
}

func (i *Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Op.String())
	sep := " "
	if i.Dest != nil {
		fmt.Fprintf(&b, "%v%v", sep, i.Dest)
		sep = ", "
	}
	for _, s := range i.Src {
		fmt.Fprintf(&b, "%v%v", sep, s)
		sep = ", "
	}
	return b.String()
}

// Program is a sequence of instructions in emission order.
type Program struct {
	Instructions []*Instruction
}

func (p *Program) Append(inst *Instruction) {
	p.Instructions = append(p.Instructions, inst)
}

func (p *Program) Len() int {
	return len(p.Instructions)
}

// Lines returns the textual form of each instruction.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instructions))
	for i, inst := range p.Instructions {
		lines[i] = inst.String()
	}
	return lines
}

// WriteTo writes one instruction per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, inst := range p.Instructions {
		c, err := fmt.Fprintln(w, inst)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
