package error

import (
	"errors"
	"testing"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
)

func TestSourceError(t *testing.T) {
	src := []byte("int x;\nx = ;\nreturn x;\n")

	tests := []struct {
		caption  string
		err      error
		expected string
	}{
		{
			caption: "a syntax error shows the line and a caret",
			err: &driver.SyntaxError{
				Row: 1,
				Col: 4,
				Token: &driver.Token{
					Kind: ";",
					Row:  1,
					Col:  4,
				},
			},
			expected: "test.mc: 2:5: error: unexpected token: ;\n    x = ;\n        ^",
		},
		{
			caption: "an invalid token",
			err: &lexer.InvalidTokenError{
				Row:  0,
				Col:  0,
				Text: "#",
			},
			expected: "test.mc: 1:1: error: invalid token: \"#\"\n    int x;\n    ^",
		},
		{
			caption:  "an error without a position",
			err:      errors.New("something went wrong"),
			expected: "test.mc: error: something went wrong",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			sErr := Locate(tt.err, "test.mc", "", src)
			if sErr.Error() != tt.expected {
				t.Fatalf("unexpected message;\nwant:\n%v\ngot:\n%v", tt.expected, sErr.Error())
			}
			if !errors.Is(sErr, tt.err) {
				t.Fatalf("a source error must wrap its cause")
			}
		})
	}
}
