// Package compiler runs a whole compilation: scanning, parsing, type checking, and IR synthesis.
package compiler

import (
	"fmt"
	"io"

	"github.com/nihei9/minic/driver"
	"github.com/nihei9/minic/driver/lexer"
	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/ir"
	"github.com/nihei9/minic/irgen"
	"github.com/nihei9/minic/semantic"
	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/symtab"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("minic.compiler")

type Result struct {
	Tokens  []*driver.Token
	Symbols *symtab.TableReader
	Program *ir.Program
}

type compilerConfig struct {
	cgram *spec.CompiledGrammar
	trace io.Writer
}

type Option func(c *compilerConfig)

// WithGrammar makes a compiler use precomputed parsing tables instead of the built-in grammar.
func WithGrammar(cgram *spec.CompiledGrammar) Option {
	return func(c *compilerConfig) {
		c.cgram = cgram
	}
}

// WithTrace makes a compiler write every parsing action to `w`.
func WithTrace(w io.Writer) Option {
	return func(c *compilerConfig) {
		c.trace = w
	}
}

// Compiler holds what compilations can share. Each compilation owns its symbol table, parser, and semantic
// action sets, so a Compiler can run compilations one after another.
type Compiler struct {
	gram    driver.Grammar
	scanner *lexer.Scanner
	trace   io.Writer
}

func New(opts ...Option) (*Compiler, error) {
	config := &compilerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	cgram := config.cgram
	if cgram == nil {
		var err error
		cgram, err = grammar.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to compile the built-in grammar: %w", err)
		}
	}
	if cgram.Syntactic == nil {
		return nil, fmt.Errorf("a compiled grammar has no parsing table")
	}

	s, err := lexer.NewScanner()
	if err != nil {
		return nil, err
	}

	return &Compiler{
		gram:    driver.NewGrammar(cgram),
		scanner: s,
		trace:   config.trace,
	}, nil
}

// Compile returns tokens, symbols, and a program. When an error occurs, no result is returned.
func (c *Compiler) Compile(src io.Reader) (*Result, error) {
	tab := symtab.NewTable()

	toks, err := c.scanner.Scan(src, tab.Writer())
	if err != nil {
		return nil, err
	}
	log.Infof("scanned %v tokens, %v identifiers", len(toks), tab.Reader().Len())

	p, err := driver.NewParser(c.gram, tab, driver.CheckStackDepth())
	if err != nil {
		return nil, err
	}
	checker := semantic.NewTypeChecker()
	gen := irgen.NewGenerator()
	p.Register(checker, gen)
	if c.trace != nil {
		p.Register(driver.NewTraceActionSet(c.trace))
	}

	err = p.Parse(toks)
	if err != nil {
		return nil, err
	}
	if !gen.Finalized() {
		return nil, &driver.InternalError{
			Cause: fmt.Errorf("the parser returned without accepting"),
		}
	}
	log.Infof("generated %v instructions", gen.Program().Len())

	return &Result{
		Tokens:  toks,
		Symbols: tab.Reader(),
		Program: gen.Program(),
	}, nil
}
