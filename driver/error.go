package driver

import (
	"fmt"
	"strings"
)

// SyntaxError reports that no action exists for a lookahead token. Parsing stops at the first syntax error.
type SyntaxError struct {
	Row               int
	Col               int
	Token             *Token
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Token.EOF() {
		b.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&b, "unexpected token: %v", e.Token)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

// InternalError reports a broken invariant of the parser or of a semantic action set. It never results from
// a wrong input alone.
type InternalError struct {
	// Seq is the sequence number of the notification during which the error occurred. It is 0 when the error
	// occurred outside notifications.
	Seq   int
	Cause error
}

func (e *InternalError) Error() string {
	if e.Seq > 0 {
		return fmt.Sprintf("internal error at notification #%v: %v", e.Seq, e.Cause)
	}
	return fmt.Sprintf("internal error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}
