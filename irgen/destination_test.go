package irgen

import (
	"testing"

	"github.com/nihei9/minic/ir"
)

func TestChooseDestination(t *testing.T) {
	tests := []struct {
		left     ir.Value
		expected destination
	}{
		{
			left:     ir.Immediate{Value: 1},
			expected: destinationNewTemp,
		},
		{
			left:     ir.Variable{Name: "a"},
			expected: destinationNewTemp,
		},
		{
			left:     ir.Temporary{Seq: 0},
			expected: destinationReuseTemp,
		},
		{
			left:     ir.Temporary{Seq: 7},
			expected: destinationReuseTemp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.left.String(), func(t *testing.T) {
			d := chooseDestination(tt.left)
			if d != tt.expected {
				t.Fatalf("unexpected destination; want: %v, got: %v", tt.expected, d)
			}
		})
	}
}
