package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/minic/spec"
)

type source struct {
	name string
	path string
	text []byte
}

// readSource reads a file named by the first argument, or stdin when no argument is given.
func readSource(args []string) (*source, error) {
	if len(args) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return &source{
			name: "stdin",
			text: text,
		}, nil
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("Cannot read the source file %s: %w", args[0], err)
	}
	return &source{
		name: args[0],
		path: args[0],
		text: text,
	}, nil
}

func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spec.Read(f)
}
