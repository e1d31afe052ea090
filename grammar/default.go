package grammar

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/nihei9/minic/spec"
)

//go:embed minic.ebnf
var defaultSource string

var (
	defaultOnce  sync.Once
	defaultGram  *spec.CompiledGrammar
	defaultError error
)

// Default returns the compiled grammar of the minic language. The grammar is compiled on the first call.
func Default() (*spec.CompiledGrammar, error) {
	defaultOnce.Do(func() {
		b := &GrammarBuilder{
			Source: strings.NewReader(defaultSource),
			Name:   "minic",
			Start:  "P",
		}
		gram, err := b.Build()
		if err != nil {
			defaultError = err
			return
		}
		defaultGram, defaultError = Compile(gram)
	})
	return defaultGram, defaultError
}
