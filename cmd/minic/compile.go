package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/nihei9/minic/compiler"
	verr "github.com/nihei9/minic/error"
	"github.com/nihei9/minic/symtab"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	grammar *string
	output  *string
	symbols *bool
	trace   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [source file path]",
		Short: "Compile a program into three-address code",
		Example: `  minic compile main.mc
  cat main.mc | minic compile --symbols`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "compiled grammar file path (default built-in grammar)")
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.symbols = cmd.Flags().Bool("symbols", false, "print the symbol table after the program")
	compileFlags.trace = cmd.Flags().Bool("trace", false, "print parsing actions to stderr")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("an unexpected error occurred: %v", v)
		}
		fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
		retErr = err
	}()

	src, err := readSource(args)
	if err != nil {
		return err
	}

	c, err := newCompiler(*compileFlags.grammar, *compileFlags.trace)
	if err != nil {
		return err
	}

	res, err := c.Compile(bytes.NewReader(src.text))
	if err != nil {
		return verr.Locate(err, src.name, src.path, src.text)
	}

	var w io.Writer = os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	_, err = res.Program.WriteTo(w)
	if err != nil {
		return fmt.Errorf("Cannot write the program: %w", err)
	}
	if *compileFlags.symbols {
		fmt.Fprintln(w)
		err = symtab.Dump(w, res.Symbols)
		if err != nil {
			return fmt.Errorf("Cannot write the symbol table: %w", err)
		}
	}

	return nil
}

func newCompiler(grammarPath string, trace bool) (*compiler.Compiler, error) {
	var opts []compiler.Option
	if grammarPath != "" {
		cgram, err := readCompiledGrammar(grammarPath)
		if err != nil {
			return nil, fmt.Errorf("Cannot read a compiled grammar: %w", err)
		}
		opts = append(opts, compiler.WithGrammar(cgram))
	}
	if trace {
		opts = append(opts, compiler.WithTrace(os.Stderr))
	}
	return compiler.New(opts...)
}
