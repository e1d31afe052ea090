package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/minic/spec"
	"github.com/nihei9/minic/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Run golden tests",
		Example: `  minic test testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	testFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "compiled grammar file path (default built-in grammar)")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	var cg *spec.CompiledGrammar
	if *testFlags.grammar != "" {
		var err error
		cg, err = readCompiledGrammar(*testFlags.grammar)
		if err != nil {
			return fmt.Errorf("Cannot read a compiled grammar: %w", err)
		}
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: cg,
		Cases:   cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
