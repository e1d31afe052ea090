package ir

import (
	"strings"
	"testing"
)

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		inst     *Instruction
		expected string
	}{
		{
			inst:     NewMove(Variable{Name: "x"}, Immediate{Value: 5}),
			expected: "MOV x, 5",
		},
		{
			inst:     NewBinary(OpAdd, Temporary{Seq: 0}, Variable{Name: "a"}, Variable{Name: "b"}),
			expected: "ADD $0, a, b",
		},
		{
			inst:     NewBinary(OpSubtract, Temporary{Seq: 1}, Temporary{Seq: 1}, Immediate{Value: 10}),
			expected: "SUB $1, $1, 10",
		},
		{
			inst:     NewBinary(OpMultiply, Temporary{Seq: 2}, Immediate{Value: 2}, Variable{Name: "y"}),
			expected: "MUL $2, 2, y",
		},
		{
			inst:     NewReturn(Temporary{Seq: 0}),
			expected: "RET $0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.inst.String() != tt.expected {
				t.Fatalf("unexpected instruction; want: %v, got: %v", tt.expected, tt.inst)
			}
		})
	}
}

func TestValue_Equality(t *testing.T) {
	var a, b Value
	a = Variable{Name: "x"}
	b = Variable{Name: "x"}
	if a != b {
		t.Fatalf("variables having the same name must be equal")
	}
	a = Temporary{Seq: 3}
	b = Temporary{Seq: 3}
	if a != b {
		t.Fatalf("temporaries having the same sequence number must be equal")
	}
	if Value(Temporary{Seq: 0}) == Value(Immediate{Value: 0}) {
		t.Fatalf("values of different kinds must not be equal")
	}
}

func TestProgram_WriteTo(t *testing.T) {
	p := &Program{}
	p.Append(NewMove(Variable{Name: "x"}, Immediate{Value: 1}))
	p.Append(NewReturn(Variable{Name: "x"}))

	var b strings.Builder
	_, err := p.WriteTo(&b)
	if err != nil {
		t.Fatal(err)
	}
	expected := "MOV x, 1\nRET x\n"
	if b.String() != expected {
		t.Fatalf("unexpected output; want: %q, got: %q", expected, b.String())
	}
}
