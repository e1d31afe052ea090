// Package tester runs golden test cases against the compiler. A test file is a YAML list of cases:
//
//	- name: sum
//	  source: |
//	    int a;
//	    return a + 1;
//	  ir: |
//	    ADD $0, a, 1
//	    RET $0
//	  symbols: |
//	    a: int
//
// `ir` and `symbols` are compared line by line with the output of a compilation. `error` expects a compilation to
// fail, and its value is either `syntax` or `lexical`.
package tester

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/nihei9/minic/compiler"
	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
	"gopkg.in/yaml.v3"
)

var errOutputMismatch = errors.New("output mismatch")

type ErrorKind string

const (
	ErrorKindSyntax  = ErrorKind("syntax")
	ErrorKindLexical = ErrorKind("lexical")
)

type TestCase struct {
	Name    string    `yaml:"name"`
	Source  string    `yaml:"source"`
	IR      *string   `yaml:"ir"`
	Symbols *string   `yaml:"symbols"`
	Error   ErrorKind `yaml:"error"`
}

func (c *TestCase) validate() error {
	if c.Name == "" {
		return fmt.Errorf("a test case must have a name")
	}
	switch c.Error {
	case "":
		if c.IR == nil && c.Symbols == nil {
			return fmt.Errorf("%v: a test case must have at least one of `ir`, `symbols`, or `error`", c.Name)
		}
	case ErrorKindSyntax, ErrorKindLexical:
		if c.IR != nil || c.Symbols != nil {
			return fmt.Errorf("%v: a test case expecting an error cannot have `ir` or `symbols`", c.Name)
		}
	default:
		return fmt.Errorf("%v: unknown error kind: %v", c.Name, c.Error)
	}
	return nil
}

// Diff is a mismatch of a line between an expected output and an actual one. A missing line is an empty string.
type Diff struct {
	Section  string
	Line     int
	Expected string
	Actual   string
}

type TestResult struct {
	TestCasePath string
	TestCaseName string
	Error        error
	Diffs        []*Diff
}

func (r *TestResult) String() string {
	name := r.TestCasePath
	if r.TestCaseName != "" {
		name = fmt.Sprintf("%v#%v", r.TestCasePath, r.TestCaseName)
	}
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", name, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, fmt.Sprintf("%v line %v:", diff.Section, diff.Line))
			diffLines = append(diffLines, fmt.Sprintf("%vexpected: %v", indent1, diff.Expected))
			diffLines = append(diffLines, fmt.Sprintf("%vactual:   %v", indent1, diff.Actual))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", name)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases reads test cases from a file, or from all `.yaml` and `.yml` files under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		return parseTestFile(testPath)
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		if !e.IsDir() {
			ext := filepath.Ext(e.Name())
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
		}
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestFile(testCasePath string) []*TestCaseWithMetadata {
	f, err := os.Open(testCasePath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testCasePath,
				Error:    err,
			},
		}
	}
	defer f.Close()

	cs, err := ParseTestCases(f)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testCasePath,
				Error:    err,
			},
		}
	}
	cases := make([]*TestCaseWithMetadata, len(cs))
	for i, c := range cs {
		cases[i] = &TestCaseWithMetadata{
			TestCase: c,
			FilePath: testCasePath,
		}
	}
	return cases
}

func ParseTestCases(r io.Reader) ([]*TestCase, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cs []*TestCase
	err := dec.Decode(&cs)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("a test file contains no test cases")
		}
		return nil, err
	}
	for _, c := range cs {
		err := c.validate()
		if err != nil {
			return nil, err
		}
	}
	return cs, nil
}

type Tester struct {
	// Grammar is optional. When it is nil, the built-in grammar is used.
	Grammar *spec.CompiledGrammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var opts []compiler.Option
	if t.Grammar != nil {
		opts = append(opts, compiler.WithGrammar(t.Grammar))
	}
	c, err := compiler.New(opts...)
	if err != nil {
		return []*TestResult{
			{
				Error: err,
			},
		}
	}

	var rs []*TestResult
	for _, tc := range t.Cases {
		rs = append(rs, runTest(c, tc))
	}
	return rs
}

func runTest(c *compiler.Compiler, tc *TestCaseWithMetadata) (result *TestResult) {
	if tc.Error != nil {
		return &TestResult{
			TestCasePath: tc.FilePath,
			Error:        tc.Error,
		}
	}

	result = &TestResult{
		TestCasePath: tc.FilePath,
		TestCaseName: tc.TestCase.Name,
	}
	defer func() {
		if v := recover(); v != nil {
			result.Error = fmt.Errorf("compilation panicked: %v\n%v", v, string(debug.Stack()))
		}
	}()

	res, err := c.Compile(strings.NewReader(tc.TestCase.Source))
	if tc.TestCase.Error != "" {
		result.Error = checkError(tc.TestCase.Error, err)
		return result
	}
	if err != nil {
		result.Error = err
		return result
	}

	if tc.TestCase.IR != nil {
		result.Diffs = append(result.Diffs, diffLines("ir", *tc.TestCase.IR, res.Program.Lines())...)
	}
	if tc.TestCase.Symbols != nil {
		var b bytes.Buffer
		err := symtab.Dump(&b, res.Symbols)
		if err != nil {
			result.Error = err
			return result
		}
		result.Diffs = append(result.Diffs, diffLines("symbols", *tc.TestCase.Symbols, splitLines(b.String()))...)
	}
	if len(result.Diffs) > 0 {
		result.Error = errOutputMismatch
	}
	return result
}

func checkError(expected ErrorKind, err error) error {
	if err == nil {
		return fmt.Errorf("expected a %v error, but the compilation succeeded", expected)
	}
	var synErr *driver.SyntaxError
	var lexErr *lexer.InvalidTokenError
	var actual ErrorKind
	switch {
	case errors.As(err, &synErr):
		actual = ErrorKindSyntax
	case errors.As(err, &lexErr):
		actual = ErrorKindLexical
	default:
		return fmt.Errorf("expected a %v error, but an unexpected error occurred: %w", expected, err)
	}
	if actual != expected {
		return fmt.Errorf("expected a %v error, but a %v error occurred: %w", expected, actual, err)
	}
	return nil
}

func diffLines(section string, expected string, actual []string) []*Diff {
	exp := splitLines(expected)
	n := len(exp)
	if len(actual) > n {
		n = len(actual)
	}
	var diffs []*Diff
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(exp) {
			e = exp[i]
		}
		if i < len(actual) {
			a = actual[i]
		}
		if e != a {
			diffs = append(diffs, &Diff{
				Section:  section,
				Line:     i + 1,
				Expected: e,
				Actual:   a,
			})
		}
	}
	return diffs
}

// splitLines drops surrounding spaces of each line and empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
