package irgen

import "github.com/nihei9/minic/ir"

type destination int

const (
	destinationNewTemp destination = iota
	destinationReuseTemp
)

func (d destination) String() string {
	if d == destinationReuseTemp {
		return "reuse"
	}
	return "new"
}

// chooseDestination decides where the result of a binary operation goes. The result overwrites a temporary left
// operand. Any other left operand gets a fresh temporary.
func chooseDestination(left ir.Value) destination {
	if _, ok := left.(ir.Temporary); ok {
		return destinationReuseTemp
	}
	return destinationNewTemp
}
