package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/minic/grammar"
	"github.com/nihei9/minic/spec"
	"github.com/spf13/cobra"
)

var grammarFlags = struct {
	output   *string
	start    *string
	name     *string
	compress *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "grammar [EBNF file path]",
		Short: "Generate parsing tables from a grammar",
		Long: `grammar generates SLR(1) parsing tables and writes them as JSON.
Without a file, the tables of the built-in grammar are generated.`,
		Example: `  minic grammar -o minic.json
  minic grammar --start P my.ebnf`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGrammar,
	}
	grammarFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	grammarFlags.start = cmd.Flags().String("start", "P", "start production name")
	grammarFlags.name = cmd.Flags().String("name", "", "grammar name (default file name)")
	grammarFlags.compress = cmd.Flags().Bool("compress", false, "write compressed parsing tables")
	rootCmd.AddCommand(cmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	var cgram *spec.CompiledGrammar
	if len(args) == 0 {
		var err error
		cgram, err = grammar.Default()
		if err != nil {
			return err
		}
	} else {
		var err error
		cgram, err = compileGrammarFile(args[0], *grammarFlags.name, *grammarFlags.start)
		if err != nil {
			return err
		}
	}

	if *grammarFlags.compress {
		// The built-in grammar is shared, so compress a copy.
		syn := *cgram.Syntactic
		cgram = &spec.CompiledGrammar{
			Name:      cgram.Name,
			Syntactic: &syn,
		}
		err := cgram.Syntactic.Compress()
		if err != nil {
			return err
		}
	}

	var w io.Writer = os.Stdout
	if *grammarFlags.output != "" {
		f, err := os.OpenFile(*grammarFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	err := spec.Write(w, cgram)
	if err != nil {
		return fmt.Errorf("Cannot write a compiled grammar: %w", err)
	}
	return nil
}

func compileGrammarFile(path, name, start string) (*spec.CompiledGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	if name == "" {
		name = path
	}
	b := &grammar.GrammarBuilder{
		Source: f,
		Name:   name,
		Start:  start,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, err
	}
	return grammar.Compile(gram)
}
