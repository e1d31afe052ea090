package main

import (
	"bytes"
	"os"

	"github.com/nihei9/minic/driver/lexer"
	verr "github.com/nihei9/minic/error"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "scan [source file path]",
		Short:   "Print tokens of a program",
		Example: `  minic scan main.mc`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runScan,
	}
	rootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	s, err := lexer.NewScanner()
	if err != nil {
		return err
	}
	toks, err := s.Scan(bytes.NewReader(src.text), nil)
	if err != nil {
		return verr.Locate(err, src.name, src.path, src.text)
	}

	return lexer.Dump(os.Stdout, toks)
}
