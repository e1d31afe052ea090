package error

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
)

// SourceError decorates an error with the place in the source where it occurred. Row and Col are 1-based, and
// 0 means unknown.
type SourceError struct {
	Cause      error
	FilePath   string
	SourceName string
	Row        int
	Col        int

	// Source is used to show the offending line. When it is nil, the line is read from FilePath.
	Source []byte
}

// Locate wraps an error having a position in a SourceError. Errors without positions are wrapped as they are.
func Locate(err error, sourceName string, filePath string, src []byte) *SourceError {
	sErr := &SourceError{
		Cause:      err,
		FilePath:   filePath,
		SourceName: sourceName,
		Source:     src,
	}

	var synErr *driver.SyntaxError
	var tokErr *lexer.InvalidTokenError
	switch {
	case errors.As(err, &synErr):
		sErr.Row = synErr.Row + 1
		sErr.Col = synErr.Col + 1
	case errors.As(err, &tokErr):
		sErr.Row = tokErr.Row + 1
		sErr.Col = tokErr.Col + 1
	}

	return sErr
}

func (e *SourceError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		if e.Col != 0 {
			fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
		} else {
			fmt.Fprintf(&b, "%v: ", e.Row)
		}
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	line, ok := e.readLine()
	if ok {
		fmt.Fprintf(&b, "\n    %v", line)
		if e.Col > 0 {
			fmt.Fprintf(&b, "\n    %v^", strings.Repeat(" ", len([]rune(line[:caretOffset(line, e.Col)]))))
		}
	}

	return b.String()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

func (e *SourceError) readLine() (string, bool) {
	if e.Row <= 0 {
		return "", false
	}

	var r io.Reader
	if e.Source != nil {
		r = bytes.NewReader(e.Source)
	} else {
		if e.FilePath == "" {
			return "", false
		}
		f, err := os.Open(e.FilePath)
		if err != nil {
			return "", false
		}
		defer f.Close()
		r = f
	}

	i := 1
	s := bufio.NewScanner(r)
	for s.Scan() {
		if i == e.Row {
			return s.Text(), true
		}
		i++
	}

	return "", false
}

// caretOffset returns the byte offset of the col-th code point in line.
func caretOffset(line string, col int) int {
	n := 1
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}
