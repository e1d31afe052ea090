package main

import (
	"github.com/nihei9/minic/lsp"
	"github.com/spf13/cobra"
)

var lspFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	lspFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "compiled grammar file path (default built-in grammar)")
	rootCmd.AddCommand(cmd)
}

func runLSP(cmd *cobra.Command, args []string) error {
	c, err := newCompiler(*lspFlags.grammar, false)
	if err != nil {
		return err
	}
	return lsp.NewServer(version, c).RunStdio()
}
