package driver

import "fmt"

// KindEOF is the kind of the end marker. It matches the name of the EOF symbol in a compiled grammar.
const KindEOF = "<eof>"

// Kinds of the tokens carrying text.
const (
	KindID       = "id"
	KindIntConst = "int_const"
)

// Token is a terminal produced by a scanner. Kind is a terminal name of a grammar. Text holds the name of an
// identifier or the digits of an integer literal and is empty for the other kinds. Row and Col are 0-based.
type Token struct {
	Kind string
	Text string
	Row  int
	Col  int
}

func NewEOFToken(row, col int) *Token {
	return &Token{
		Kind: KindEOF,
		Row:  row,
		Col:  col,
	}
}

func (t *Token) EOF() bool {
	return t.Kind == KindEOF
}

func (t *Token) String() string {
	if t.Text == "" {
		return t.Kind
	}
	return fmt.Sprintf("%v %#v", t.Kind, t.Text)
}
