package lexer

import (
	"fmt"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

const specName = "minic"

const (
	kindWhiteSpace = "white_space"
	kindIdentifier = "identifier"
	kindIntConst   = "int_const"
)

var keywords = map[string]struct{}{
	"int":    {},
	"return": {},
	"input":  {},
	"print":  {},
	"ifeqz":  {},
	"ifgtz":  {},
	"goto":   {},
}

// punctuations maps lexical kind names to terminal names.
var punctuations = []struct {
	kind string
	text string
}{
	{kind: "equal", text: "="},
	{kind: "comma", text: ","},
	{kind: "semicolon", text: ";"},
	{kind: "plus", text: "+"},
	{kind: "colon", text: ":"},
	{kind: "minus", text: "-"},
	{kind: "asterisk", text: "*"},
	{kind: "slash", text: "/"},
	{kind: "l_paren", text: "("},
	{kind: "r_paren", text: ")"},
}

func genLexSpec() *mlspec.LexSpec {
	entries := []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName(kindWhiteSpace),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
		},
		{
			Kind:    mlspec.LexKindName(kindIdentifier),
			Pattern: mlspec.LexPattern(`\f{letter}(\f{letter}|\f{digit})*`),
		},
		{
			Kind:    mlspec.LexKindName(kindIntConst),
			Pattern: mlspec.LexPattern(`\f{digit}+`),
		},
	}
	for _, p := range punctuations {
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(p.kind),
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(p.text)),
		})
	}
	entries = append(entries,
		&mlspec.LexEntry{
			Fragment: true,
			Kind:     mlspec.LexKindName("letter"),
			Pattern:  mlspec.LexPattern(`[A-Za-z_]`),
		},
		&mlspec.LexEntry{
			Fragment: true,
			Kind:     mlspec.LexKindName("digit"),
			Pattern:  mlspec.LexPattern(`[0-9]`),
		},
	)
	return &mlspec.LexSpec{
		Name:    specName,
		Entries: entries,
	}
}

var (
	compileOnce  sync.Once
	compiledSpec *mlspec.CompiledLexSpec
	compileErr   error
)

// compiledLexSpec compiles the lexical specification into a DFA on the first call.
func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(genLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileErr = fmt.Errorf("%v", b.String())
				return
			}
			compileErr = err
			return
		}
		compiledSpec = clspec
	})
	return compiledSpec, compileErr
}

func writeCompileError(w *strings.Builder, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
